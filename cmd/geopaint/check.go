package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rendis/geopaint/internal/engine/geo"
)

// runCheckData reports inconsistencies in the built-in tables and,
// with -dataset-check, between them and the boundary dataset.
func runCheckData(args []string) error {
	var withDataset bool
	var dataset string

	fs := flag.NewFlagSet("check-data", flag.ExitOnError)
	fs.BoolVar(&withDataset, "dataset-check", false, "Also load the boundary dataset and check reference points against it")
	fs.StringVar(&dataset, "dataset", "", "Boundary dataset URL or file (default: settings)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reg := geo.DefaultRegistry()
	problems := 0

	for _, c := range reg.Conflicts() {
		fmt.Printf("alias %q: %s lost to %s\n", c.Alias, c.Loser, c.Winner)
		problems++
	}
	for _, err := range geo.DefaultTopology().Validate() {
		fmt.Println(err)
		problems++
	}

	points := geo.DefaultReferencePoints()
	var noPoint []string
	for _, code := range reg.Codes() {
		if _, ok := points.Lookup(code); !ok {
			noPoint = append(noPoint, string(code))
		}
	}
	if len(noPoint) > 0 {
		fmt.Fprintf(os.Stderr, "no flight reference point: %s\n", strings.Join(noPoint, " "))
	}

	if withDataset {
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
		fmt.Fprintf(os.Stderr, "dataset: %s (%s)\n", bs, e.loader.Source())
		if um := bs.Unmatched(); len(um) > 0 {
			fmt.Fprintf(os.Stderr, "dataset: features without a country: %s\n", strings.Join(um, ", "))
		}
		for _, msg := range bs.CheckReferencePoints(points) {
			fmt.Println(msg)
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problems found", problems)
	}
	fmt.Fprintln(os.Stderr, "ok")
	return nil
}
