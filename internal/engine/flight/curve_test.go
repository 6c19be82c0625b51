package flight

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func dist(a, b orb.Point) float64 { return math.Hypot(a[0]-b[0], a[1]-b[1]) }

func TestCurveControlPoint(t *testing.T) {
	c := NewCurve(orb.Point{0, 100}, orb.Point{100, 100})
	if want := (orb.Point{50, 65}); dist(c.Control, want) > 1e-9 {
		t.Errorf("control = %v, want %v", c.Control, want)
	}
	if c.Length() <= 100 || !c.Valid() {
		t.Errorf("length = %f", c.Length())
	}

	pairs := [][2]orb.Point{
		{{0, 0}, {100, 40}},
		{{300, 200}, {20, 250}},
		{{10, 10}, {10, 200}},
	}
	for _, pr := range pairs {
		c := NewCurve(pr[0], pr[1])
		mid := orb.Point{(pr[0][0] + pr[1][0]) / 2, (pr[0][1] + pr[1][1]) / 2}
		if c.Control[1] > mid[1] {
			t.Errorf("%v: control %v below midpoint", pr, c.Control)
		}
		if off, want := dist(c.Control, mid), ArcHeight*dist(pr[0], pr[1]); math.Abs(off-want) > 1e-9 {
			t.Errorf("%v: offset %f, want %f", pr, off, want)
		}
	}
}

func TestCurveArcLengthSampling(t *testing.T) {
	c := NewCurve(orb.Point{0, 300}, orb.Point{600, 200})
	if p := c.PointAt(0); dist(p, c.Start) > 1e-9 {
		t.Errorf("PointAt(0) = %v", p)
	}
	if p := c.PointAt(1); dist(p, c.End) > 1e-9 {
		t.Errorf("PointAt(1) = %v", p)
	}
	const n = 20
	step := c.Length() / n
	prev := c.PointAt(0)
	for i := 1; i <= n; i++ {
		p := c.PointAt(float64(i) / n)
		if d := dist(prev, p); math.Abs(d-step)/step > 0.01 {
			t.Errorf("step %d: chord %f, want about %f", i, d, step)
		}
		prev = p
	}
}

func TestCurveDegenerate(t *testing.T) {
	c := NewCurve(orb.Point{5, 5}, orb.Point{5, 5})
	if c.Valid() {
		t.Error("zero-length curve reported valid")
	}
	// projected coordinates leave rounding residue in the arc length
	p := orb.Point{487.3291, 131.0573}
	if c := NewCurve(p, p); c.Valid() {
		t.Errorf("same endpoints reported valid, length %g", c.Length())
	}
	bad := NewCurve(orb.Point{math.NaN(), 0}, orb.Point{10, 10})
	if bad.Valid() {
		t.Error("NaN curve reported valid")
	}
}

func TestHeading(t *testing.T) {
	c := NewCurve(orb.Point{0, 100}, orb.Point{200, 100})
	mid, ok := c.HeadingAt(0.5)
	if !ok || math.Abs(mid) > 2 {
		t.Errorf("heading at apex = %f,%v, want about 0", mid, ok)
	}
	start, _ := c.HeadingAt(0)
	if start >= 0 {
		t.Errorf("heading at start = %f, want climbing (negative)", start)
	}
	end, ok := c.HeadingAt(1)
	if !ok || end <= 0 {
		t.Errorf("heading at end = %f,%v, want descending (positive)", end, ok)
	}
}

func TestPolyline(t *testing.T) {
	c := NewCurve(orb.Point{0, 0}, orb.Point{100, 0})
	pts := c.Polyline(0.5, 10)
	if len(pts) != 11 {
		t.Fatalf("len = %d", len(pts))
	}
	if dist(pts[10], c.PointAt(0.5)) > 1e-9 {
		t.Errorf("last point = %v", pts[10])
	}
}

func TestCamera(t *testing.T) {
	zooms := []struct{ p, want float64 }{
		{0, 1.0}, {0.1, 1.15}, {0.2, 1.3}, {0.5, 1.0}, {0.8, 0.7}, {0.9, 0.95}, {1, 1.2},
	}
	for _, z := range zooms {
		if got := ZoomAt(z.p); math.Abs(got-z.want) > 1e-9 {
			t.Errorf("ZoomAt(%.2f) = %f, want %f", z.p, got, z.want)
		}
	}

	origin := Anchor{orb.Point{100, 50}, true}
	plane := Anchor{orb.Point{300, 80}, true}
	dest := Anchor{orb.Point{700, 90}, true}
	checks := []struct {
		p     float64
		focus orb.Point
		phase Phase
	}{
		{0.1, origin.Point, Takeoff},
		{0.5, plane.Point, Cruise},
		{0.95, dest.Point, Landing},
	}
	for _, c := range checks {
		if PhaseAt(c.p) != c.phase {
			t.Errorf("PhaseAt(%.2f) = %v", c.p, PhaseAt(c.p))
		}
		tr := CameraAt(c.p, origin, plane, dest, 960, 500)
		x, y := tr.Apply(c.focus[0], c.focus[1])
		if math.Abs(x-480) > 1e-9 || math.Abs(y-250) > 1e-9 {
			t.Errorf("p=%.2f: focus maps to %f,%f", c.p, x, y)
		}
	}

	missing := Anchor{}
	if tr := CameraAt(0.1, missing, plane, dest, 960, 500); tr.Scale != 1 || tr.TranslateX != 0 || tr.TranslateY != 0 {
		t.Errorf("missing origin camera = %+v", tr)
	}
	if tr := CameraAt(0.9, origin, plane, missing, 960, 500); tr.Scale != 1 {
		t.Errorf("missing destination camera = %+v", tr)
	}
}

func TestThemeByID(t *testing.T) {
	if th := ThemeByID("NEON"); th.ID != "neon" {
		t.Errorf("ThemeByID(NEON) = %s", th.ID)
	}
	if th := ThemeByID("disco"); th.ID != DefaultTheme {
		t.Errorf("unknown theme = %s", th.ID)
	}
}
