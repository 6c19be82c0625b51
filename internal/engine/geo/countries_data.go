package geo

// countryRecords is the canonical country list. ISO2, ISO3 and Name are
// indexed automatically; the trailing strings are extra aliases.
var countryRecords = []CountryRecord{
	rec("AD", "AND", "Andorra"),
	rec("AE", "ARE", "United Arab Emirates", "uae", "emirates", "the emirates", "al imarat"),
	rec("AF", "AFG", "Afghanistan", "afghanestan"),
	rec("AG", "ATG", "Antigua and Barbuda", "antigua"),
	rec("AL", "ALB", "Albania", "shqiperia"),
	rec("AM", "ARM", "Armenia", "hayastan"),
	rec("AO", "AGO", "Angola"),
	rec("AQ", "ATA", "Antarctica"),
	rec("AR", "ARG", "Argentina"),
	rec("AT", "AUT", "Austria", "osterreich", "österreich"),
	rec("AU", "AUS", "Australia", "oz"),
	rec("AZ", "AZE", "Azerbaijan", "azerbaycan"),
	rec("BA", "BIH", "Bosnia and Herzegovina", "bosnia", "bosnia & herzegovina", "bih"),
	rec("BB", "BRB", "Barbados"),
	rec("BD", "BGD", "Bangladesh"),
	rec("BE", "BEL", "Belgium", "belgique", "belgie", "belgië"),
	rec("BF", "BFA", "Burkina Faso"),
	rec("BG", "BGR", "Bulgaria", "balgariya"),
	rec("BH", "BHR", "Bahrain", "al bahrain"),
	rec("BI", "BDI", "Burundi"),
	rec("BJ", "BEN", "Benin"),
	rec("BN", "BRN", "Brunei", "brunei darussalam"),
	rec("BO", "BOL", "Bolivia", "plurinational state of bolivia"),
	rec("BR", "BRA", "Brazil", "brasil"),
	rec("BS", "BHS", "Bahamas", "the bahamas"),
	rec("BT", "BTN", "Bhutan", "druk yul"),
	rec("BW", "BWA", "Botswana"),
	rec("BY", "BLR", "Belarus", "byelorussia", "belarus'"),
	rec("BZ", "BLZ", "Belize"),
	rec("CA", "CAN", "Canada"),
	rec("CD", "COD", "Democratic Republic of the Congo", "dr congo", "drc", "congo-kinshasa", "congo (kinshasa)", "zaire"),
	rec("CF", "CAF", "Central African Republic", "car", "centrafrique"),
	rec("CG", "COG", "Republic of the Congo", "congo-brazzaville", "congo (brazzaville)", "congo republic"),
	rec("CH", "CHE", "Switzerland", "schweiz", "suisse", "svizzera", "helvetia"),
	rec("CI", "CIV", "Côte d'Ivoire", "ivory coast", "cote divoire"),
	rec("CL", "CHL", "Chile"),
	rec("CM", "CMR", "Cameroon", "cameroun"),
	rec("CN", "CHN", "China", "prc", "people's republic of china", "zhongguo"),
	rec("CO", "COL", "Colombia"),
	rec("CR", "CRI", "Costa Rica"),
	rec("CU", "CUB", "Cuba"),
	rec("CV", "CPV", "Cabo Verde", "cape verde"),
	rec("CY", "CYP", "Cyprus", "kypros"),
	rec("CZ", "CZE", "Czechia", "czech republic", "cesko", "česko"),
	rec("DE", "DEU", "Germany", "deutschland", "allemagne"),
	rec("DJ", "DJI", "Djibouti"),
	rec("DK", "DNK", "Denmark", "danmark"),
	rec("DM", "DMA", "Dominica"),
	rec("DO", "DOM", "Dominican Republic", "republica dominicana"),
	rec("DZ", "DZA", "Algeria", "algerie", "al jazair"),
	rec("EC", "ECU", "Ecuador"),
	rec("EE", "EST", "Estonia", "eesti"),
	rec("EG", "EGY", "Egypt", "misr"),
	rec("EH", "ESH", "Western Sahara"),
	rec("ER", "ERI", "Eritrea"),
	rec("ES", "ESP", "Spain", "espana", "españa"),
	rec("ET", "ETH", "Ethiopia"),
	rec("FI", "FIN", "Finland", "suomi"),
	rec("FJ", "FJI", "Fiji"),
	rec("FK", "FLK", "Falkland Islands", "falklands", "islas malvinas"),
	rec("FM", "FSM", "Micronesia", "federated states of micronesia"),
	rec("FR", "FRA", "France", "french republic"),
	rec("GA", "GAB", "Gabon"),
	rec("GB", "GBR", "United Kingdom", "uk", "u.k.", "great britain", "britain", "england", "scotland", "wales"),
	rec("GD", "GRD", "Grenada"),
	rec("GE", "GEO", "Georgia", "sakartvelo"),
	rec("GH", "GHA", "Ghana"),
	rec("GL", "GRL", "Greenland", "kalaallit nunaat"),
	rec("GM", "GMB", "Gambia", "the gambia"),
	rec("GN", "GIN", "Guinea", "guinee"),
	rec("GQ", "GNQ", "Equatorial Guinea"),
	rec("GR", "GRC", "Greece", "hellas", "ellada"),
	rec("GT", "GTM", "Guatemala"),
	rec("GW", "GNB", "Guinea-Bissau", "guinea bissau"),
	rec("GY", "GUY", "Guyana"),
	rec("HN", "HND", "Honduras"),
	rec("HR", "HRV", "Croatia", "hrvatska"),
	rec("HT", "HTI", "Haiti"),
	rec("HU", "HUN", "Hungary", "magyarorszag", "magyarország"),
	rec("ID", "IDN", "Indonesia"),
	rec("IE", "IRL", "Ireland", "eire", "éire"),
	rec("IL", "ISR", "Israel"),
	rec("IN", "IND", "India", "bharat", "hindustan"),
	rec("IQ", "IRQ", "Iraq"),
	rec("IR", "IRN", "Iran", "persia", "islamic republic of iran"),
	rec("IS", "ISL", "Iceland", "island"),
	rec("IT", "ITA", "Italy", "italia"),
	rec("JM", "JAM", "Jamaica"),
	rec("JO", "JOR", "Jordan"),
	rec("JP", "JPN", "Japan", "nippon", "nihon"),
	rec("KE", "KEN", "Kenya"),
	rec("KG", "KGZ", "Kyrgyzstan", "kyrgyz republic", "kirghizia"),
	rec("KH", "KHM", "Cambodia", "kampuchea"),
	rec("KI", "KIR", "Kiribati"),
	rec("KM", "COM", "Comoros"),
	rec("KN", "KNA", "Saint Kitts and Nevis", "st kitts and nevis"),
	rec("KP", "PRK", "North Korea", "dprk", "democratic people's republic of korea"),
	rec("KR", "KOR", "South Korea", "korea", "republic of korea", "rok"),
	rec("KW", "KWT", "Kuwait"),
	rec("KZ", "KAZ", "Kazakhstan", "qazaqstan"),
	rec("LA", "LAO", "Laos", "lao pdr", "lao people's democratic republic"),
	rec("LB", "LBN", "Lebanon", "liban"),
	rec("LC", "LCA", "Saint Lucia", "st lucia"),
	rec("LI", "LIE", "Liechtenstein"),
	rec("LK", "LKA", "Sri Lanka", "ceylon"),
	rec("LR", "LBR", "Liberia"),
	rec("LS", "LSO", "Lesotho"),
	rec("LT", "LTU", "Lithuania", "lietuva"),
	rec("LU", "LUX", "Luxembourg", "letzebuerg"),
	rec("LV", "LVA", "Latvia", "latvija"),
	rec("LY", "LBY", "Libya"),
	rec("MA", "MAR", "Morocco", "maroc", "al maghrib"),
	rec("MC", "MCO", "Monaco"),
	rec("MD", "MDA", "Moldova", "republic of moldova"),
	rec("ME", "MNE", "Montenegro", "crna gora"),
	rec("MG", "MDG", "Madagascar"),
	rec("MH", "MHL", "Marshall Islands"),
	rec("MK", "MKD", "North Macedonia", "macedonia", "fyrom"),
	rec("ML", "MLI", "Mali"),
	rec("MM", "MMR", "Myanmar", "burma"),
	rec("MN", "MNG", "Mongolia", "mongol uls"),
	rec("MR", "MRT", "Mauritania"),
	rec("MT", "MLT", "Malta"),
	rec("MU", "MUS", "Mauritius"),
	rec("MV", "MDV", "Maldives"),
	rec("MW", "MWI", "Malawi"),
	rec("MX", "MEX", "Mexico", "méxico", "estados unidos mexicanos"),
	rec("MY", "MYS", "Malaysia"),
	rec("MZ", "MOZ", "Mozambique", "mocambique"),
	rec("NA", "NAM", "Namibia"),
	rec("NC", "NCL", "New Caledonia", "nouvelle-caledonie"),
	rec("NE", "NER", "Niger"),
	rec("NG", "NGA", "Nigeria"),
	rec("NI", "NIC", "Nicaragua"),
	rec("NL", "NLD", "Netherlands", "holland", "the netherlands", "nederland"),
	rec("NO", "NOR", "Norway", "norge", "noreg"),
	rec("NP", "NPL", "Nepal"),
	rec("NR", "NRU", "Nauru"),
	rec("NZ", "NZL", "New Zealand", "aotearoa"),
	rec("OM", "OMN", "Oman", "sultanate of oman"),
	rec("PA", "PAN", "Panama", "panamá"),
	rec("PE", "PER", "Peru", "perú"),
	rec("PG", "PNG", "Papua New Guinea"),
	rec("PH", "PHL", "Philippines", "pilipinas"),
	rec("PK", "PAK", "Pakistan"),
	rec("PL", "POL", "Poland", "polska"),
	rec("PR", "PRI", "Puerto Rico"),
	rec("PS", "PSE", "Palestine", "state of palestine", "palestinian territories"),
	rec("PT", "PRT", "Portugal"),
	rec("PW", "PLW", "Palau"),
	rec("PY", "PRY", "Paraguay"),
	rec("QA", "QAT", "Qatar"),
	rec("RO", "ROU", "Romania", "românia"),
	rec("RS", "SRB", "Serbia", "srbija"),
	rec("RU", "RUS", "Russia", "russian federation", "rossiya"),
	rec("RW", "RWA", "Rwanda"),
	rec("SA", "SAU", "Saudi Arabia", "ksa", "saudi"),
	rec("SB", "SLB", "Solomon Islands"),
	rec("SC", "SYC", "Seychelles"),
	rec("SD", "SDN", "Sudan"),
	rec("SE", "SWE", "Sweden", "sverige"),
	rec("SG", "SGP", "Singapore", "singapura"),
	rec("SI", "SVN", "Slovenia", "slovenija"),
	rec("SK", "SVK", "Slovakia", "slovensko", "slovak republic"),
	rec("SL", "SLE", "Sierra Leone"),
	rec("SM", "SMR", "San Marino"),
	rec("SN", "SEN", "Senegal", "sénégal"),
	rec("SO", "SOM", "Somalia", "soomaaliya"),
	rec("SR", "SUR", "Suriname", "surinam"),
	rec("SS", "SSD", "South Sudan"),
	rec("ST", "STP", "Sao Tome and Principe", "são tomé and príncipe"),
	rec("SV", "SLV", "El Salvador"),
	rec("SY", "SYR", "Syria", "syrian arab republic"),
	rec("SZ", "SWZ", "Eswatini", "swaziland"),
	rec("TD", "TCD", "Chad", "tchad"),
	rec("TF", "ATF", "French Southern Territories", "french southern and antarctic lands"),
	rec("TG", "TGO", "Togo"),
	rec("TH", "THA", "Thailand", "siam", "prathet thai"),
	rec("TJ", "TJK", "Tajikistan", "tojikiston"),
	rec("TL", "TLS", "Timor-Leste", "east timor", "timor leste"),
	rec("TM", "TKM", "Turkmenistan"),
	rec("TN", "TUN", "Tunisia", "tunisie"),
	rec("TO", "TON", "Tonga"),
	rec("TR", "TUR", "Türkiye", "turkey", "turkiye"),
	rec("TT", "TTO", "Trinidad and Tobago", "trinidad"),
	rec("TV", "TUV", "Tuvalu"),
	rec("TW", "TWN", "Taiwan", "republic of china", "roc"),
	rec("TZ", "TZA", "Tanzania", "united republic of tanzania"),
	rec("UA", "UKR", "Ukraine", "ukraina"),
	rec("UG", "UGA", "Uganda"),
	rec("US", "USA", "United States", "united states of america", "america", "u.s.", "u.s.a.", "the states"),
	rec("UY", "URY", "Uruguay"),
	rec("UZ", "UZB", "Uzbekistan", "ozbekiston"),
	rec("VA", "VAT", "Vatican City", "holy see", "vatican"),
	rec("VC", "VCT", "Saint Vincent and the Grenadines", "st vincent"),
	rec("VE", "VEN", "Venezuela"),
	rec("VN", "VNM", "Vietnam", "viet nam"),
	rec("VU", "VUT", "Vanuatu"),
	rec("WS", "WSM", "Samoa"),
	rec("XK", "XKX", "Kosovo", "kosova"),
	rec("YE", "YEM", "Yemen"),
	rec("ZA", "ZAF", "South Africa", "rsa", "suid-afrika"),
	rec("ZM", "ZMB", "Zambia"),
	rec("ZW", "ZWE", "Zimbabwe"),
}

func rec(iso2, iso3, name string, aliases ...string) CountryRecord {
	return CountryRecord{ISO2: iso2, ISO3: iso3, Name: name, Aliases: aliases}
}
