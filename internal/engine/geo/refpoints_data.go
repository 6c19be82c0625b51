package geo

// referencePointTable holds one representative point per country as
// {longitude, latitude}. Antarctica and the French Southern Territories have
// no entry; flights to or from them are refused.
var referencePointTable = map[string][2]float64{
	"AD": {1.601554, 42.546245},
	"AE": {53.847818, 23.424076},
	"AF": {67.709953, 33.93911},
	"AG": {-61.796428, 17.060816},
	"AL": {20.168331, 41.153332},
	"AM": {45.038189, 40.069099},
	"AO": {17.873887, -11.202692},
	"AR": {-63.616672, -38.416097},
	"AT": {14.550072, 47.516231},
	"AU": {133.775136, -25.274398},
	"AZ": {47.576927, 40.143105},
	"BA": {17.679076, 43.915886},
	"BB": {-59.543198, 13.193887},
	"BD": {90.356331, 23.684994},
	"BE": {4.469936, 50.503887},
	"BF": {-1.561593, 12.238333},
	"BG": {25.48583, 42.733883},
	"BH": {50.637772, 25.930414},
	"BI": {29.918886, -3.373056},
	"BJ": {2.315834, 9.30769},
	"BN": {114.727669, 4.535277},
	"BO": {-63.588653, -16.290154},
	"BR": {-51.92528, -14.235004},
	"BS": {-77.39628, 25.03428},
	"BT": {90.433601, 27.514162},
	"BW": {24.684866, -22.328474},
	"BY": {27.953389, 53.709807},
	"BZ": {-88.49765, 17.189877},
	"CA": {-106.346771, 56.130366},
	"CD": {21.758664, -4.038333},
	"CF": {20.939444, 6.611111},
	"CG": {15.827659, -0.228021},
	"CH": {8.227512, 46.818188},
	"CI": {-5.54708, 7.539989},
	"CL": {-71.542969, -35.675147},
	"CM": {12.354722, 7.369722},
	"CN": {104.195397, 35.86166},
	"CO": {-74.297333, 4.570868},
	"CR": {-83.753428, 9.748917},
	"CU": {-77.781167, 21.521757},
	"CV": {-24.013197, 16.002082},
	"CY": {33.429859, 35.126413},
	"CZ": {15.472962, 49.817492},
	"DE": {10.451526, 51.165691},
	"DJ": {42.590275, 11.825138},
	"DK": {9.501785, 56.26392},
	"DM": {-61.370976, 15.414999},
	"DO": {-70.162651, 18.735693},
	"DZ": {1.659626, 28.033886},
	"EC": {-78.183406, -1.831239},
	"EE": {25.013607, 58.595272},
	"EG": {30.802498, 26.820553},
	"EH": {-12.885834, 24.215527},
	"ER": {39.782334, 15.179384},
	"ES": {-3.74922, 40.463667},
	"ET": {40.489673, 9.145},
	"FI": {25.748151, 61.92411},
	"FJ": {179.414413, -16.578193},
	"FK": {-59.523613, -51.796253},
	"FM": {150.550812, 7.425554},
	"FR": {2.213749, 46.227638},
	"GA": {11.609444, -0.803689},
	"GB": {-3.435973, 55.378051},
	"GD": {-61.604171, 12.262776},
	"GE": {43.356892, 42.315407},
	"GH": {-1.023194, 7.946527},
	"GL": {-42.604303, 71.706936},
	"GM": {-15.310139, 13.443182},
	"GN": {-9.696645, 9.945587},
	"GQ": {10.267895, 1.650801},
	"GR": {21.824312, 39.074208},
	"GT": {-90.230759, 15.783471},
	"GW": {-15.180413, 11.803749},
	"GY": {-58.93018, 4.860416},
	"HN": {-86.241905, 15.199999},
	"HR": {15.2, 45.1},
	"HT": {-72.285215, 18.971187},
	"HU": {19.503304, 47.162494},
	"ID": {113.921327, -0.789275},
	"IE": {-8.24389, 53.41291},
	"IL": {34.851612, 31.046051},
	"IN": {78.96288, 20.593684},
	"IQ": {43.679291, 33.223191},
	"IR": {53.688046, 32.427908},
	"IS": {-19.020835, 64.963051},
	"IT": {12.56738, 41.87194},
	"JM": {-77.297508, 18.109581},
	"JO": {36.238414, 30.585164},
	"JP": {138.252924, 36.204824},
	"KE": {37.906193, -0.023559},
	"KG": {74.766098, 41.20438},
	"KH": {104.990963, 12.565679},
	"KI": {-168.734039, -3.370417},
	"KM": {43.872219, -11.875001},
	"KN": {-62.782998, 17.357822},
	"KP": {127.510093, 40.339852},
	"KR": {127.766922, 35.907757},
	"KW": {47.481766, 29.31166},
	"KZ": {66.923684, 48.019573},
	"LA": {102.495496, 19.85627},
	"LB": {35.862285, 33.854721},
	"LC": {-60.978893, 13.909444},
	"LI": {9.555373, 47.166},
	"LK": {80.771797, 7.873054},
	"LR": {-9.429499, 6.428055},
	"LS": {28.233608, -29.609988},
	"LT": {23.881275, 55.169438},
	"LU": {6.129583, 49.815273},
	"LV": {24.603189, 56.879635},
	"LY": {17.228331, 26.3351},
	"MA": {-7.09262, 31.791702},
	"MC": {7.412841, 43.750298},
	"MD": {28.369885, 47.411631},
	"ME": {19.37439, 42.708678},
	"MG": {46.869107, -18.766947},
	"MH": {171.184478, 7.131474},
	"MK": {21.745275, 41.608635},
	"ML": {-3.996166, 17.570692},
	"MM": {95.956223, 21.913965},
	"MN": {103.846656, 46.862496},
	"MR": {-10.940835, 21.00789},
	"MT": {14.375416, 35.937496},
	"MU": {57.552152, -20.348404},
	"MV": {73.22068, 3.202778},
	"MW": {34.301525, -13.254308},
	"MX": {-102.552784, 23.634501},
	"MY": {101.975766, 4.210484},
	"MZ": {35.529562, -18.665695},
	"NA": {18.49041, -22.95764},
	"NC": {165.618042, -20.904305},
	"NE": {8.081666, 17.607789},
	"NG": {8.675277, 9.081999},
	"NI": {-85.207229, 12.865416},
	"NL": {5.291266, 52.132633},
	"NO": {8.468946, 60.472024},
	"NP": {84.124008, 28.394857},
	"NR": {166.931503, -0.522778},
	"NZ": {174.885971, -40.900557},
	"OM": {55.923255, 21.512583},
	"PA": {-80.782127, 8.537981},
	"PE": {-75.015152, -9.189967},
	"PG": {143.95555, -6.314993},
	"PH": {121.774017, 12.879721},
	"PK": {69.345116, 30.375321},
	"PL": {19.145136, 51.919438},
	"PR": {-66.590149, 18.220833},
	"PS": {35.233154, 31.952162},
	"PT": {-8.224454, 39.399872},
	"PW": {134.58252, 7.51498},
	"PY": {-58.443832, -23.442503},
	"QA": {51.183884, 25.354826},
	"RO": {24.96676, 45.943161},
	"RS": {21.005859, 44.016521},
	"RU": {105.318756, 61.52401},
	"RW": {29.873888, -1.940278},
	"SA": {45.079162, 23.885942},
	"SB": {160.156194, -9.64571},
	"SC": {55.491977, -4.679574},
	"SD": {30.217636, 12.862807},
	"SE": {18.643501, 60.128161},
	"SG": {103.819836, 1.352083},
	"SI": {14.995463, 46.151241},
	"SK": {19.699024, 48.669026},
	"SL": {-11.779889, 8.460555},
	"SM": {12.457777, 43.94236},
	"SN": {-14.452362, 14.497401},
	"SO": {46.199616, 5.152149},
	"SR": {-56.027783, 3.919305},
	"SS": {29.69, 7.86},
	"ST": {6.613081, 0.18636},
	"SV": {-88.89653, 13.794185},
	"SY": {38.996815, 34.802075},
	"SZ": {31.465866, -26.522503},
	"TD": {18.732207, 15.454166},
	"TG": {0.824782, 8.619543},
	"TH": {100.992541, 15.870032},
	"TJ": {71.276093, 38.861034},
	"TL": {125.727539, -8.874217},
	"TM": {59.556278, 38.969719},
	"TN": {9.537499, 33.886917},
	"TO": {-175.198242, -21.178986},
	"TR": {35.243322, 38.963745},
	"TT": {-61.222503, 10.691803},
	"TV": {177.64933, -7.109535},
	"TW": {120.960515, 23.69781},
	"TZ": {34.888822, -6.369028},
	"UA": {31.16558, 48.379433},
	"UG": {32.290275, 1.373333},
	"US": {-95.712891, 37.09024},
	"UY": {-55.765835, -32.522779},
	"UZ": {64.585262, 41.377491},
	"VA": {12.453389, 41.902916},
	"VC": {-61.287228, 12.984305},
	"VE": {-66.58973, 6.42375},
	"VN": {108.277199, 14.058324},
	"VU": {166.959158, -15.376706},
	"WS": {-172.104629, -13.759029},
	"XK": {20.902977, 42.602636},
	"YE": {48.516388, 15.552727},
	"ZA": {22.937506, -30.559482},
	"ZM": {27.849332, -13.133897},
	"ZW": {29.154857, -19.015438},
}
