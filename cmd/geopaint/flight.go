package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/rendis/geopaint/internal/engine/flight"
	"github.com/rendis/geopaint/internal/engine/render"
	"github.com/rendis/geopaint/internal/session"
)

// maxGIFFrames bounds one animation; a 60s flight at 30 fps is 1800 frames.
const maxGIFFrames = 1800

func runFlight(args []string) error {
	var mf mapFlags
	var from, to, theme, output string
	var duration time.Duration
	var fps, width int

	fs := flag.NewFlagSet("flight", flag.ExitOnError)
	mf.register(fs)
	fs.StringVar(&from, "from", "", "Origin country (required)")
	fs.StringVar(&to, "to", "", "Destination country (required)")
	fs.DurationVar(&duration, "duration", 0, "Flight duration (default: settings)")
	fs.StringVar(&theme, "theme", "", "Flight theme: classic, neon, sunset, mono (default: settings)")
	fs.IntVar(&fps, "fps", 20, "Frames per second")
	fs.IntVar(&width, "width", 640, "GIF width in pixels")
	fs.StringVar(&output, "output", "", "Output GIF path (default: output dir)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: geopaint flight [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  geopaint flight -from Spain -to Japan -group \"ES, JP\"\n")
		fmt.Fprintf(os.Stderr, "  geopaint flight -from BR -to PT -theme neon -duration 6s -output trip.gif\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if from == "" || to == "" {
		return fmt.Errorf("-from and -to are required")
	}
	if fps < 1 || fps > 60 {
		return fmt.Errorf("-fps must be between 1 and 60")
	}
	if width < 64 {
		return fmt.Errorf("-width must be at least 64")
	}

	e, err := setup(mf.dataset)
	if err != nil {
		return err
	}
	defer e.Close()

	if duration <= 0 {
		duration = e.settings.FlightDuration()
	}
	if theme == "" {
		theme = e.settings.FlightTheme
	}
	if output == "" {
		output = filepath.Join(e.settings.OutputDir,
			fmt.Sprintf("geopaint_flight_%s.gif", time.Now().Format("20060102_150405")))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sched := flight.NewManualScheduler(time.Now())
	s := e.newSession(session.Options{Scheduler: sched})
	if err := mf.build(ctx, e, s); err != nil {
		return err
	}

	var stopErr error
	if err := s.PlayFlight(from, to, duration, theme, session.FlightCallbacks{
		OnStop: func(err error) { stopErr = err },
	}); err != nil {
		return fmt.Errorf("flight %s → %s: %w", from, to, err)
	}

	step := time.Second / time.Duration(fps)
	anim := &gif.GIF{}
	delay := 100 / fps
	for i := 0; s.FlightState() == flight.Playing && i < maxGIFFrames; i++ {
		sched.Advance(step)
		anim.Image = append(anim.Image, gifFrame(s, width))
		anim.Delay = append(anim.Delay, delay)
	}
	if stopErr != nil {
		return fmt.Errorf("flight %s → %s: %w", from, to, stopErr)
	}
	if len(anim.Image) == 0 {
		return fmt.Errorf("flight %s → %s produced no frames", from, to)
	}
	// hold the landing
	anim.Delay[len(anim.Delay)-1] = 150

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	e.logger.Printf("FLIGHT_GIF from=%s to=%s frames=%d path=%s", from, to, len(anim.Image), output)
	if km, ok := s.FlightDistanceKm(from, to); ok {
		fmt.Fprintf(os.Stderr, "%s → %s: %.0f km, ", from, to, km)
	}
	fmt.Fprintf(os.Stderr, "%d frames, %s\n", len(anim.Image), duration)
	fmt.Println(output)
	return nil
}

// gifFrame draws the live surface with the current flight camera and
// scales it to width, dithered onto the web-safe palette.
func gifFrame(s *session.Session, width int) *image.Paletted {
	snap := s.Snapshot()
	w, h := int(snap.Surface.Width), int(snap.Surface.Height)

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	scene := render.SceneFromConfig(snap.Config, snap.Boundaries)
	scene.Flight = snap.Flight
	render.Draw(dc, scene, snap.Context.Projection, snap.View, 1)

	height := width * h / w
	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), dc.Image(), dc.Image().Bounds(), draw.Src, nil)

	out := image.NewPaletted(scaled.Bounds(), palette.WebSafe)
	draw.FloydSteinberg.Draw(out, out.Bounds(), scaled, image.Point{})
	return out
}
