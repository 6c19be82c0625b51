package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/rendis/geopaint/internal/engine/geo"
)

type parsedCountry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type parseOutput struct {
	Valid      []parsedCountry `json:"valid"`
	Invalid    []string        `json:"invalid"`
	Duplicates []string        `json:"duplicates"`
}

func runParse(args []string) error {
	var asJSON bool

	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	fs.BoolVar(&asJSON, "json", false, "Print the result as JSON")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: geopaint parse [flags] <country list>\n\nReads stdin when no list is given.\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n  geopaint parse \"Saudi Arabia, UAE, France; DE, Brasil\"\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := strings.Join(fs.Args(), ",")
	if fs.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(data)
	}

	reg := geo.DefaultRegistry()
	res := reg.ParseList(input)
	out := parseOutput{
		Valid:      make([]parsedCountry, len(res.Valid)),
		Invalid:    append([]string{}, res.Invalid...),
		Duplicates: append([]string{}, res.Duplicates...),
	}
	for i, c := range res.Valid {
		out.Valid[i] = parsedCountry{Code: string(c), Name: reg.DisplayName(c)}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, c := range out.Valid {
		fmt.Printf("%s  %s\n", c.Code, c.Name)
	}
	if len(out.Invalid) > 0 {
		fmt.Fprintf(os.Stderr, "unknown: %s\n", strings.Join(out.Invalid, ", "))
	}
	if len(out.Duplicates) > 0 {
		fmt.Fprintf(os.Stderr, "repeated: %s\n", strings.Join(out.Duplicates, ", "))
	}
	return nil
}

// runWhere names the country at a coordinate using the boundary dataset.
func runWhere(args []string) error {
	var lon, lat float64
	var dataset string

	fs := flag.NewFlagSet("where", flag.ExitOnError)
	fs.Float64Var(&lon, "lon", 0, "Longitude")
	fs.Float64Var(&lat, "lat", 0, "Latitude")
	fs.StringVar(&dataset, "dataset", "", "Boundary dataset URL or file (default: settings)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: geopaint where -lon <lon> -lat <lat>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return fmt.Errorf("coordinate %.4f,%.4f out of range", lon, lat)
	}

	e, err := setup(dataset)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	bs, err := e.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading boundaries: %w", err)
	}

	code, ok := bs.CountryAt(orb.Point{lon, lat})
	if !ok {
		return fmt.Errorf("no country at %.4f,%.4f", lon, lat)
	}
	fmt.Printf("%s  %s\n", code, geo.DefaultRegistry().DisplayName(code))
	return nil
}
