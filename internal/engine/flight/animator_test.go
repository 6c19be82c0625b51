package flight

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"github.com/rendis/geopaint/internal/engine/geo"
)

func testContext() geo.ProjectionContext {
	return geo.NewProjectionContext(geo.NewProjection(960, 500), geo.DefaultReferencePoints())
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAdvanceProgress(t *testing.T) {
	a, err := Plan(testContext(), "FR", "JP", time.Second, ThemeByID(""))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	steps := []struct {
		at   time.Duration
		want float64
		out  Outcome
	}{
		{0, 0, Continue},
		{250 * time.Millisecond, 0.25, Continue},
		{200 * time.Millisecond, 0.25, Continue}, // clock went backwards
		{500 * time.Millisecond, 0.5, Continue},
		{time.Second, 1, Finished},
		{2 * time.Second, 1, Finished},
	}
	for i, s := range steps {
		var f Frame
		var out Outcome
		a, f, out = Advance(a, epoch.Add(s.at))
		if out != s.out || f.Progress != s.want {
			t.Errorf("step %d: progress %f outcome %v, want %f %v", i, f.Progress, out, s.want, s.out)
		}
	}
}

func TestAdvanceAbortsWhenEndpointDisappears(t *testing.T) {
	ctx := testContext()
	a, err := Plan(ctx, "FR", "JP", time.Second, ThemeByID(""))
	if err != nil {
		t.Fatal(err)
	}
	a, _, _ = Advance(a, epoch)

	pts := geo.ReferencePoints{"FR": ctx.Points["FR"]}
	a.Context = geo.NewProjectionContext(ctx.Projection, pts)
	a, _, out := Advance(a, epoch.Add(100*time.Millisecond))
	if out != Aborted || !errors.Is(a.Err, ErrMissingReference) {
		t.Errorf("outcome %v err %v", out, a.Err)
	}
}

func TestPlanFailures(t *testing.T) {
	ctx := testContext()
	if _, err := Plan(ctx, "FR", "AQ", time.Second, Theme{}); !errors.Is(err, ErrMissingReference) {
		t.Errorf("missing reference err = %v", err)
	}
	if _, err := Plan(ctx, "FR", "FR", time.Second, Theme{}); !errors.Is(err, ErrDegeneratePath) {
		t.Errorf("same endpoints err = %v", err)
	}
	if _, err := Plan(geo.ProjectionContext{}, "FR", "JP", time.Second, Theme{}); !errors.Is(err, ErrMissingReference) {
		t.Errorf("empty context err = %v", err)
	}
}

type recorder struct {
	frames    []Frame
	completes int
	stops     []error
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnFrame:    func(f Frame) { r.frames = append(r.frames, f) },
		OnComplete: func() { r.completes++ },
		OnStop:     func(err error) { r.stops = append(r.stops, err) },
	}
}

func TestPlayerRunsToCompletion(t *testing.T) {
	sched := NewManualScheduler(epoch)
	p := NewPlayer(sched, testContext(), nil)
	var rec recorder
	if err := p.Play("BR", "IN", 200*time.Millisecond, ThemeByID("neon"), rec.callbacks()); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if p.State() != Playing {
		t.Fatalf("state = %v", p.State())
	}

	for i := 0; i < 100 && sched.Pending() > 0; i++ {
		sched.Advance(16 * time.Millisecond)
	}

	if p.State() != Completed || rec.completes != 1 || len(rec.stops) != 0 {
		t.Fatalf("state %v completes %d stops %v", p.State(), rec.completes, rec.stops)
	}
	if len(rec.frames) < 10 {
		t.Fatalf("only %d frames", len(rec.frames))
	}
	for i := 1; i < len(rec.frames); i++ {
		if rec.frames[i].Progress < rec.frames[i-1].Progress {
			t.Errorf("progress went back at frame %d", i)
		}
	}
	if last := rec.frames[len(rec.frames)-1]; last.Progress != 1 || last.Theme.ID != "neon" {
		t.Errorf("last frame = %+v", last)
	}
	if rec.frames[0].Progress != 0 {
		t.Errorf("first progress = %f", rec.frames[0].Progress)
	}
}

func TestPlayerMissingReferenceNeverStarts(t *testing.T) {
	sched := NewManualScheduler(epoch)
	p := NewPlayer(sched, testContext(), nil)
	var rec recorder
	err := p.Play("FR", "AQ", time.Second, ThemeByID(""), rec.callbacks())
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("err = %v", err)
	}
	if len(rec.stops) != 1 || !errors.Is(rec.stops[0], ErrMissingReference) {
		t.Errorf("stops = %v", rec.stops)
	}
	if len(rec.frames) != 0 || sched.Pending() != 0 || p.State() != Stopped {
		t.Errorf("frames %d pending %d state %v", len(rec.frames), sched.Pending(), p.State())
	}

	completed := 0
	err = p.Play("AQ", "FR", time.Second, ThemeByID(""), Callbacks{OnComplete: func() { completed++ }})
	if err == nil || completed != 1 {
		t.Errorf("complete fallback: err %v completed %d", err, completed)
	}
}

func TestPlayerStop(t *testing.T) {
	sched := NewManualScheduler(epoch)
	p := NewPlayer(sched, testContext(), nil)
	var rec recorder
	if err := p.Play("US", "GB", time.Second, ThemeByID(""), rec.callbacks()); err != nil {
		t.Fatal(err)
	}
	sched.Advance(16 * time.Millisecond)
	sched.Advance(100 * time.Millisecond)

	if !p.Stop() {
		t.Fatal("Stop returned false while playing")
	}
	if p.State() != Stopped || sched.Pending() != 0 {
		t.Fatalf("state %v pending %d", p.State(), sched.Pending())
	}
	if len(rec.stops) != 1 || rec.stops[0] != nil {
		t.Errorf("stops = %v", rec.stops)
	}
	n := len(rec.frames)
	sched.Advance(time.Second)
	if len(rec.frames) != n {
		t.Error("frame delivered after Stop")
	}
	if p.Stop() {
		t.Error("second Stop returned true")
	}

	var again recorder
	if err := p.Play("US", "GB", time.Second, ThemeByID(""), again.callbacks()); err != nil {
		t.Fatal(err)
	}
	sched.Advance(16 * time.Millisecond)
	if len(again.frames) != 1 || again.frames[0].Progress != 0 {
		t.Errorf("replay did not start at zero: %+v", again.frames)
	}
}

func TestPlayerRejectsSecondPlay(t *testing.T) {
	sched := NewManualScheduler(epoch)
	p := NewPlayer(sched, testContext(), nil)
	if err := p.Play("US", "MX", time.Second, ThemeByID(""), Callbacks{}); err != nil {
		t.Fatal(err)
	}
	if err := p.Play("US", "CA", time.Second, ThemeByID(""), Callbacks{}); !errors.Is(err, ErrAlreadyPlaying) {
		t.Errorf("err = %v", err)
	}
}

func TestPlayerContextSwapAborts(t *testing.T) {
	sched := NewManualScheduler(epoch)
	ctx := testContext()
	p := NewPlayer(sched, ctx, nil)
	var rec recorder
	if err := p.Play("DE", "ZA", time.Second, ThemeByID(""), rec.callbacks()); err != nil {
		t.Fatal(err)
	}
	sched.Advance(16 * time.Millisecond)

	p.UpdateContext(geo.NewProjectionContext(ctx.Projection, geo.ReferencePoints{"DE": ctx.Points["DE"]}))
	sched.Advance(16 * time.Millisecond)

	if p.State() != Stopped || len(rec.stops) != 1 || !errors.Is(rec.stops[0], ErrMissingReference) {
		t.Errorf("state %v stops %v", p.State(), rec.stops)
	}
	if sched.Pending() != 0 {
		t.Error("frame still pending after abort")
	}
}

func TestPlayerZeroDurationCompletesOnFirstFrame(t *testing.T) {
	sched := NewManualScheduler(epoch)
	p := NewPlayer(sched, testContext(), nil)
	var rec recorder
	if err := p.Play("AR", "CL", 0, ThemeByID(""), rec.callbacks()); err != nil {
		t.Fatal(err)
	}
	sched.Advance(16 * time.Millisecond)
	if p.State() != Completed || rec.completes != 1 || len(rec.frames) != 1 {
		t.Errorf("state %v completes %d frames %d", p.State(), rec.completes, len(rec.frames))
	}
}

func TestTickerSchedulerCancel(t *testing.T) {
	s := NewTickerScheduler(5 * time.Millisecond)
	fired := make(chan struct{}, 2)
	h := s.RequestFrame(func(time.Time) { fired <- struct{}{} })
	s.CancelFrame(h)
	s.RequestFrame(func(time.Time) { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("frame never fired")
	}
	select {
	case <-fired:
		t.Fatal("cancelled frame fired")
	case <-time.After(30 * time.Millisecond):
	}
}

func TestPlayerSameCountryNeverStarts(t *testing.T) {
	sched := NewManualScheduler(epoch)
	p := NewPlayer(sched, testContext(), nil)
	var rec recorder
	err := p.Play("FR", "FR", time.Second, ThemeByID(""), rec.callbacks())
	if !errors.Is(err, ErrDegeneratePath) {
		t.Fatalf("err = %v", err)
	}
	if len(rec.stops) != 1 || len(rec.frames) != 0 || rec.completes != 0 {
		t.Errorf("stops %v frames %d completes %d", rec.stops, len(rec.frames), rec.completes)
	}
	if sched.Pending() != 0 || p.State() != Stopped {
		t.Errorf("pending %d state %v", sched.Pending(), p.State())
	}
}

func TestAdvanceAbortsOnNonFiniteSample(t *testing.T) {
	a, err := Plan(testContext(), "FR", "JP", time.Second, ThemeByID(""))
	if err != nil {
		t.Fatal(err)
	}
	a, _, _ = Advance(a, epoch)
	a.curve.Control = orb.Point{math.NaN(), math.NaN()}

	a, f, out := Advance(a, epoch.Add(300*time.Millisecond))
	if out != Aborted || !errors.Is(a.Err, ErrNonFinite) {
		t.Fatalf("outcome %v err %v", out, a.Err)
	}
	if f.Path.Valid() || f.Progress != 0 {
		t.Errorf("aborted advance returned a frame: progress %f", f.Progress)
	}
	if a.Progress() != 0 {
		t.Errorf("progress moved to %f", a.Progress())
	}
}

func TestPlayerNonFiniteAbort(t *testing.T) {
	tests := []struct {
		name          string
		withStop      bool
		wantStops     int
		wantCompletes int
	}{
		{"stop callback", true, 1, 0},
		{"complete fallback", false, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sched := NewManualScheduler(epoch)
			p := NewPlayer(sched, testContext(), nil)
			var rec recorder
			cb := rec.callbacks()
			if !tc.withStop {
				cb.OnStop = nil
			}
			if err := p.Play("CA", "AU", time.Second, ThemeByID(""), cb); err != nil {
				t.Fatal(err)
			}
			sched.Advance(16 * time.Millisecond)

			p.mu.Lock()
			p.anim.curve.Control = orb.Point{math.NaN(), 0}
			p.mu.Unlock()
			sched.Advance(16 * time.Millisecond)

			if p.State() != Stopped || sched.Pending() != 0 {
				t.Fatalf("state %v pending %d", p.State(), sched.Pending())
			}
			if len(rec.stops) != tc.wantStops || rec.completes != tc.wantCompletes {
				t.Fatalf("stops %v completes %d", rec.stops, rec.completes)
			}
			if tc.withStop && !errors.Is(rec.stops[0], ErrNonFinite) {
				t.Errorf("stop reason = %v", rec.stops[0])
			}
			if !errors.Is(p.Animation().Err, ErrNonFinite) {
				t.Errorf("animation err = %v", p.Animation().Err)
			}
			if len(rec.frames) != 1 {
				t.Errorf("frames = %d, want only the one before the abort", len(rec.frames))
			}
		})
	}
}
