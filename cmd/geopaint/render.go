package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rendis/geopaint/internal/engine/render"
	"github.com/rendis/geopaint/internal/model"
	"github.com/rendis/geopaint/internal/session"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, " | ") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// mapFlags are the map description shared by render and flight.
type mapFlags struct {
	groups  multiFlag
	preset  string
	project string
	mode    string
	dataset string
}

func (f *mapFlags) register(fs *flag.FlagSet) {
	fs.Var(&f.groups, "group", "Country list for one group, optionally prefixed by a colour: \"#dc2626=France, DE\" (repeatable)")
	fs.StringVar(&f.preset, "preset", "", "Preset for the first group: gcc, eu, g7, g20, brics, asean, nato, nordic, benelux, five-eyes, mercosur")
	fs.StringVar(&f.project, "project", "", "Start from a saved project id")
	fs.StringVar(&f.mode, "mode", "multi", "Selection mode: single or multi")
	fs.StringVar(&f.dataset, "dataset", "", "Boundary dataset URL or file (default: settings)")
}

// build loads the boundaries and fills s from the flags.
func (f *mapFlags) build(ctx context.Context, e *env, s *session.Session) error {
	if f.project != "" {
		if e.store == nil {
			return fmt.Errorf("-project needs the cache database at %s", e.settings.CacheDB)
		}
		p, err := e.store.LoadProject(ctx, f.project)
		if err != nil {
			return err
		}
		s.LoadConfig(p.Config)
	}

	bs, err := e.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading boundaries: %w", err)
	}
	s.SetBoundaries(bs)

	if err := s.SetMode(model.SelectionMode(f.mode)); err != nil {
		return err
	}

	groups := s.Config().Groups
	if f.preset != "" {
		if err := s.ApplyPreset(f.preset, groups[0].ID); err != nil {
			return err
		}
	}

	for i, spec := range f.groups {
		id := groups[0].ID
		if i > 0 || f.preset != "" {
			if id, err = s.AddGroup(); err != nil {
				return err
			}
		}

		color, list := "", spec
		if c, rest, ok := strings.Cut(spec, "="); ok && strings.HasPrefix(c, "#") {
			color, list = strings.TrimSpace(c), rest
		}
		if color != "" {
			if err := s.UpdateGroup(id, session.GroupPatch{Color: &color}); err != nil {
				return err
			}
		}

		res, err := s.SetGroupCountriesFromText(id, list)
		if err != nil {
			return err
		}
		if len(res.Invalid) > 0 {
			fmt.Fprintf(os.Stderr, "warning: unknown countries ignored: %s\n", strings.Join(res.Invalid, ", "))
		}
		if len(res.Duplicates) > 0 {
			fmt.Fprintf(os.Stderr, "warning: repeated countries ignored: %s\n", strings.Join(res.Duplicates, ", "))
		}
	}
	return nil
}

func runRender(args []string) error {
	var mf mapFlags
	var title model.TitleBlock
	var format, resolution, background, border, outputDir, svgPath string
	var transparent, world bool

	fs := flag.NewFlagSet("render", flag.ExitOnError)
	mf.register(fs)
	fs.StringVar(&title.Text, "title", "", "Title text")
	fs.StringVar(&title.Subtitle, "subtitle", "", "Subtitle text")
	fs.StringVar((*string)(&title.Position), "title-position", string(model.TitleCenter), "Title position: left, center, right")
	fs.StringVar((*string)(&title.Font), "font", string(model.FontSansBold), "Title font: sans, sans-bold, mono, smallcaps")
	fs.StringVar((*string)(&title.Size), "font-size", string(model.FontMedium), "Title size: small, medium, large")
	fs.StringVar(&format, "format", "", "Image format: png or jpg (default: settings)")
	fs.StringVar(&resolution, "resolution", "", "1080p, 4k or square (default: settings)")
	fs.StringVar(&background, "background", "#ffffff", "Background colour")
	fs.BoolVar(&transparent, "transparent", false, "Transparent background (PNG only)")
	fs.StringVar(&border, "border", render.DefaultBorderColor, "Country border colour")
	fs.BoolVar(&world, "world", false, "Frame the whole world instead of zooming to the selection")
	fs.StringVar(&outputDir, "output", "", "Output directory (default: settings)")
	fs.StringVar(&svgPath, "svg", "", "Also write the live map as SVG to this path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: geopaint render [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  geopaint render -preset gcc -title \"Gulf states\"\n")
		fmt.Fprintf(os.Stderr, "  geopaint render -group \"#dc2626=France, Germany\" -group \"#2563eb=Brasil\" -format jpg -resolution 4k\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := setup(mf.dataset)
	if err != nil {
		return err
	}
	defer e.Close()

	if format == "" {
		format = string(e.settings.Format)
	}
	imgFormat, err := model.ParseImageFormat(format)
	if err != nil {
		return err
	}
	if resolution == "" {
		resolution = string(e.settings.Resolution)
	}
	res, err := model.ParseResolution(resolution)
	if err != nil {
		return err
	}
	if transparent && imgFormat == model.FormatJPG {
		fmt.Fprintln(os.Stderr, "warning: JPG has no transparency, using white")
	}
	if outputDir == "" {
		outputDir = e.settings.OutputDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s := e.newSession(session.Options{})
	if err := mf.build(ctx, e, s); err != nil {
		return err
	}
	if mf.project == "" || title.Text != "" || title.Subtitle != "" {
		s.SetTitle(title)
		s.SetBackground(model.Background{Transparent: transparent, Color: background})
		s.SetBorderColor(border)
	}
	s.SetResolution(res)
	if world {
		s.ResetZoom()
	}

	if svgPath != "" {
		if err := writeSVG(s, svgPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "SVG: %s\n", svgPath)
	}

	path, err := s.ExportToFile(s.ExportOptions(imgFormat), outputDir)
	if err != nil {
		return err
	}
	w, h := res.Dimensions()
	fmt.Fprintf(os.Stderr, "%d countries selected, %dx%d %s\n",
		len(s.AllSelectedCountries()), w, h, strings.ToUpper(imgFormat.Extension()))
	fmt.Println(path)
	return nil
}

func writeSVG(s *session.Session, path string) error {
	snap := s.Snapshot()
	scene := render.SceneFromConfig(snap.Config, snap.Boundaries)
	scene.Flight = snap.Flight

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render.WriteSVG(f, scene, snap.Context.Projection, snap.View); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
