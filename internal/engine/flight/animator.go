package flight

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sync"
	"time"

	"github.com/paulmach/orb"

	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/model"
)

var (
	ErrMissingReference = errors.New("flight endpoint has no projectable reference point")
	ErrDegeneratePath   = errors.New("flight path has no usable length")
	ErrNonFinite        = errors.New("flight sample is not finite")
	ErrAlreadyPlaying   = errors.New("flight already playing")
)

// State is the lifecycle of one flight run.
type State int

const (
	Idle State = iota
	Playing
	Completed
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Completed:
		return "completed"
	default:
		return "stopped"
	}
}

// Outcome is what a single Advance step decided.
type Outcome int

const (
	Continue Outcome = iota
	Finished
	Aborted
)

// Animation is the full state of a flight between frames. It is a value:
// Advance returns a new one.
type Animation struct {
	Origin      model.CountryCode
	Destination model.CountryCode
	Duration    time.Duration
	Theme       Theme
	Context     geo.ProjectionContext

	// Err explains an Aborted outcome.
	Err error

	curve    Curve
	start    time.Time
	progress float64
}

// Progress is the last sampled progress in [0, 1].
func (a Animation) Progress() float64 { return a.progress }

// Curve is the path the animation follows.
func (a Animation) Curve() Curve { return a.curve }

// Frame is everything a renderer needs for one tick.
type Frame struct {
	Progress float64
	Point    orb.Point
	Heading  float64
	Phase    Phase
	Camera   model.ViewportTransform
	Path     Curve
	Theme    Theme
}

// Plan validates the endpoints and builds the curve. It fails with
// ErrMissingReference when either endpoint does not project and with
// ErrDegeneratePath when the curve has no length.
func Plan(ctx geo.ProjectionContext, origin, dest model.CountryCode, d time.Duration, theme Theme) (Animation, error) {
	a := Animation{Origin: origin, Destination: dest, Duration: d, Theme: theme, Context: ctx}
	o, ok1 := ctx.ProjectCode(origin)
	t, ok2 := ctx.ProjectCode(dest)
	if !ok1 || !ok2 {
		return a, fmt.Errorf("%s -> %s: %w", origin, dest, ErrMissingReference)
	}
	a.curve = NewCurve(o, t)
	if !a.curve.Valid() {
		return a, fmt.Errorf("%s -> %s: %w", origin, dest, ErrDegeneratePath)
	}
	return a, nil
}

// Advance samples the animation at now. The first call fixes the start
// time. Endpoints are re-resolved through a.Context on every call so a
// context swap moves the path, and an endpoint that stops resolving aborts.
func Advance(a Animation, now time.Time) (Animation, Frame, Outcome) {
	o, ok1 := a.Context.ProjectCode(a.Origin)
	d, ok2 := a.Context.ProjectCode(a.Destination)
	if !ok1 || !ok2 {
		a.Err = ErrMissingReference
		return a, Frame{}, Aborted
	}
	if o != a.curve.Start || d != a.curve.End {
		a.curve = NewCurve(o, d)
	}
	if !a.curve.Valid() {
		a.Err = ErrDegeneratePath
		return a, Frame{}, Aborted
	}

	if a.start.IsZero() {
		a.start = now
	}
	p := 1.0
	if a.Duration > 0 {
		p = math.Min(float64(now.Sub(a.start))/float64(a.Duration), 1)
	}
	if p < a.progress {
		p = a.progress
	}

	pt := a.curve.PointAt(p)
	heading, ok := a.curve.HeadingAt(p)
	if !ok || !finitePoint(pt) {
		a.Err = ErrNonFinite
		return a, Frame{}, Aborted
	}
	a.progress = p

	w, h := 0.0, 0.0
	if a.Context.Projection != nil {
		w, h = a.Context.Projection.Width(), a.Context.Projection.Height()
	}
	frame := Frame{
		Progress: p,
		Point:    pt,
		Heading:  heading,
		Phase:    PhaseAt(p),
		Camera:   CameraAt(p, Anchor{o, true}, Anchor{pt, true}, Anchor{d, true}, w, h),
		Path:     a.curve,
		Theme:    a.Theme,
	}
	if p >= 1 {
		return a, frame, Finished
	}
	return a, frame, Continue
}

// Callbacks receive player events. All are optional and are called without
// the player lock held.
type Callbacks struct {
	OnFrame    func(Frame)
	OnComplete func()
	// OnStop receives nil for a caller Stop and the reason for an abort.
	OnStop func(error)
}

// abort reports a failed run: OnStop when set, otherwise OnComplete.
func (cb Callbacks) abort(err error) {
	switch {
	case cb.OnStop != nil:
		cb.OnStop(err)
	case cb.OnComplete != nil:
		cb.OnComplete()
	}
}

// Player drives Advance from a Scheduler and owns the state machine
// Idle -> Playing -> Completed | Stopped.
type Player struct {
	sched  Scheduler
	logger *log.Logger

	mu      sync.Mutex
	state   State
	anim    Animation
	ctx     geo.ProjectionContext
	cb      Callbacks
	run     uint64
	pending FrameHandle
	hasPend bool
}

func NewPlayer(sched Scheduler, ctx geo.ProjectionContext, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Player{sched: sched, ctx: ctx, logger: logger}
}

// State returns the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Animation returns a copy of the current run.
func (p *Player) Animation() Animation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.anim
}

// UpdateContext swaps the projection context, for example after a resize.
// A running flight picks it up on its next frame.
func (p *Player) UpdateContext(ctx geo.ProjectionContext) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ctx = ctx
	p.anim.Context = ctx
}

// Play starts a flight. If the endpoints cannot be resolved or the path is
// degenerate the run never starts: the stop callback (or the complete
// callback when there is none) fires before Play returns the error.
func (p *Player) Play(origin, dest model.CountryCode, d time.Duration, theme Theme, cb Callbacks) error {
	p.mu.Lock()
	if p.state == Playing {
		p.mu.Unlock()
		return ErrAlreadyPlaying
	}

	anim, err := Plan(p.ctx, origin, dest, d, theme)
	if err != nil {
		p.state = Stopped
		p.anim = anim
		p.anim.Err = err
		p.cb = Callbacks{}
		p.mu.Unlock()
		p.logger.Printf("FLIGHT_ABORT origin=%s dest=%s reason=%q", origin, dest, err)
		cb.abort(err)
		return err
	}

	p.run++
	p.state = Playing
	p.anim = anim
	p.cb = cb
	p.schedule(p.run)
	p.mu.Unlock()
	p.logger.Printf("FLIGHT_START origin=%s dest=%s duration=%s length_px=%.1f", origin, dest, d, anim.curve.Length())
	return nil
}

// Stop ends a playing flight. Pending frames are cancelled and the timing
// state cleared, so the next Play starts from zero. It reports whether a
// flight was playing.
func (p *Player) Stop() bool {
	p.mu.Lock()
	if p.state != Playing {
		p.mu.Unlock()
		return false
	}
	p.state = Stopped
	p.cancelPending()
	p.anim.start = time.Time{}
	origin, dest := p.anim.Origin, p.anim.Destination
	cb := p.cb
	p.cb = Callbacks{}
	p.mu.Unlock()

	p.logger.Printf("FLIGHT_STOP origin=%s dest=%s", origin, dest)
	if cb.OnStop != nil {
		cb.OnStop(nil)
	}
	return true
}

// must hold p.mu
func (p *Player) schedule(run uint64) {
	p.pending = p.sched.RequestFrame(func(now time.Time) { p.tick(run, now) })
	p.hasPend = true
}

// must hold p.mu
func (p *Player) cancelPending() {
	if p.hasPend {
		p.sched.CancelFrame(p.pending)
		p.hasPend = false
	}
}

func (p *Player) tick(run uint64, now time.Time) {
	p.mu.Lock()
	if p.state != Playing || run != p.run {
		p.mu.Unlock()
		return
	}
	p.hasPend = false

	next, frame, outcome := Advance(p.anim, now)
	p.anim = next
	cb := p.cb
	switch outcome {
	case Continue:
		p.schedule(run)
	case Finished:
		p.state = Completed
		p.cb = Callbacks{}
	case Aborted:
		p.state = Stopped
		p.cb = Callbacks{}
	}
	p.mu.Unlock()

	switch outcome {
	case Continue:
		if cb.OnFrame != nil {
			cb.OnFrame(frame)
		}
	case Finished:
		if cb.OnFrame != nil {
			cb.OnFrame(frame)
		}
		p.logger.Printf("FLIGHT_DONE origin=%s dest=%s", next.Origin, next.Destination)
		if cb.OnComplete != nil {
			cb.OnComplete()
		}
	case Aborted:
		p.logger.Printf("FLIGHT_ABORT origin=%s dest=%s progress=%.3f reason=%q",
			next.Origin, next.Destination, next.progress, next.Err)
		cb.abort(next.Err)
	}
}
