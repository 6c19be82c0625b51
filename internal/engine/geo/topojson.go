package geo

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type topology struct {
	Type      string                  `json:"type"`
	Objects   map[string]topoGeometry `json:"objects"`
	Arcs      [][][]float64           `json:"arcs"`
	Transform *topoTransform          `json:"transform"`
}

type topoTransform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type topoGeometry struct {
	Type       string          `json:"type"`
	ID         any             `json:"id"`
	Properties map[string]any  `json:"properties"`
	Arcs       json.RawMessage `json:"arcs"`
	Geometries []topoGeometry  `json:"geometries"`
}

// DecodeDataset decodes a boundary dataset, either TopoJSON or a GeoJSON
// FeatureCollection. For TopoJSON the "countries" object is used, or the
// first object by name when there is none.
func DecodeDataset(data []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}
	switch head.Type {
	case "Topology":
		return DecodeTopoJSON(data, "")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parsing geojson: %w", err)
		}
		return fc, nil
	}
	return nil, fmt.Errorf("unsupported dataset type %q", head.Type)
}

// DecodeTopoJSON converts one object of a topology into features. Quantized
// arcs are delta-decoded through the topology transform.
func DecodeTopoJSON(data []byte, object string) (*geojson.FeatureCollection, error) {
	var topo topology
	if err := json.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("parsing topojson: %w", err)
	}
	if topo.Type != "Topology" {
		return nil, fmt.Errorf("parsing topojson: type %q is not Topology", topo.Type)
	}

	if object == "" {
		object = "countries"
		if _, ok := topo.Objects[object]; !ok {
			names := make([]string, 0, len(topo.Objects))
			for name := range topo.Objects {
				names = append(names, name)
			}
			sort.Strings(names)
			if len(names) == 0 {
				return nil, fmt.Errorf("parsing topojson: no objects")
			}
			object = names[0]
		}
	}
	coll, ok := topo.Objects[object]
	if !ok {
		return nil, fmt.Errorf("parsing topojson: object %q not found", object)
	}

	arcs := decodeArcs(topo.Arcs, topo.Transform)
	fc := geojson.NewFeatureCollection()

	geoms := coll.Geometries
	if coll.Type != "GeometryCollection" {
		geoms = []topoGeometry{coll}
	}

	for i, g := range geoms {
		geom, err := g.decode(arcs)
		if err != nil {
			return nil, fmt.Errorf("geometry %d (id %v): %w", i, g.ID, err)
		}
		if geom == nil {
			continue
		}
		f := geojson.NewFeature(geom)
		f.ID = g.ID
		for k, v := range g.Properties {
			f.Properties[k] = v
		}
		fc.Append(f)
	}
	return fc, nil
}

func decodeArcs(raw [][][]float64, tr *topoTransform) []orb.LineString {
	arcs := make([]orb.LineString, len(raw))
	for i, arc := range raw {
		ls := make(orb.LineString, 0, len(arc))
		var x, y float64
		for _, pos := range arc {
			if len(pos) < 2 {
				continue
			}
			if tr != nil {
				x += pos[0]
				y += pos[1]
				ls = append(ls, orb.Point{x*tr.Scale[0] + tr.Translate[0], y*tr.Scale[1] + tr.Translate[1]})
			} else {
				ls = append(ls, orb.Point{pos[0], pos[1]})
			}
		}
		arcs[i] = ls
	}
	return arcs
}

func (g topoGeometry) decode(arcs []orb.LineString) (orb.Geometry, error) {
	switch g.Type {
	case "", "null":
		return nil, nil
	case "Polygon":
		var idx [][]int
		if err := json.Unmarshal(g.Arcs, &idx); err != nil {
			return nil, fmt.Errorf("polygon arcs: %w", err)
		}
		poly, err := polygonFromArcs(idx, arcs)
		if err != nil {
			return nil, err
		}
		return poly, nil
	case "MultiPolygon":
		var idx [][][]int
		if err := json.Unmarshal(g.Arcs, &idx); err != nil {
			return nil, fmt.Errorf("multipolygon arcs: %w", err)
		}
		mp := make(orb.MultiPolygon, 0, len(idx))
		for _, p := range idx {
			poly, err := polygonFromArcs(p, arcs)
			if err != nil {
				return nil, err
			}
			mp = append(mp, poly)
		}
		return mp, nil
	case "LineString":
		var idx []int
		if err := json.Unmarshal(g.Arcs, &idx); err != nil {
			return nil, fmt.Errorf("linestring arcs: %w", err)
		}
		return stitch(idx, arcs)
	case "MultiLineString":
		var idx [][]int
		if err := json.Unmarshal(g.Arcs, &idx); err != nil {
			return nil, fmt.Errorf("multilinestring arcs: %w", err)
		}
		mls := make(orb.MultiLineString, 0, len(idx))
		for _, line := range idx {
			ls, err := stitch(line, arcs)
			if err != nil {
				return nil, err
			}
			mls = append(mls, ls)
		}
		return mls, nil
	}
	return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
}

func polygonFromArcs(rings [][]int, arcs []orb.LineString) (orb.Polygon, error) {
	poly := make(orb.Polygon, 0, len(rings))
	for _, r := range rings {
		ls, err := stitch(r, arcs)
		if err != nil {
			return nil, err
		}
		poly = append(poly, orb.Ring(ls))
	}
	return poly, nil
}

// stitch joins arcs into one line. A negative index i means arc ^i reversed.
// The first point of every arc after the first repeats the previous end and
// is dropped.
func stitch(indexes []int, arcs []orb.LineString) (orb.LineString, error) {
	var out orb.LineString
	for n, i := range indexes {
		reversed := i < 0
		if reversed {
			i = ^i
		}
		if i >= len(arcs) {
			return nil, fmt.Errorf("arc index %d out of range (%d arcs)", i, len(arcs))
		}
		arc := arcs[i]
		pts := make(orb.LineString, len(arc))
		copy(pts, arc)
		if reversed {
			pts.Reverse()
		}
		if n > 0 && len(pts) > 0 {
			pts = pts[1:]
		}
		out = append(out, pts...)
	}
	return out, nil
}
