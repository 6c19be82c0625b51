package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
)

func runProjects(args []string) error {
	var del string

	fs := flag.NewFlagSet("projects", flag.ExitOnError)
	fs.StringVar(&del, "delete", "", "Delete the project with this id")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: geopaint projects [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := setup("")
	if err != nil {
		return err
	}
	defer e.Close()
	if e.store == nil {
		return fmt.Errorf("cache database %s is unavailable", e.settings.CacheDB)
	}

	ctx := context.Background()
	if del != "" {
		if err := e.store.DeleteProject(ctx, del); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "deleted %s\n", del)
		return nil
	}

	ps, err := e.store.ListProjects(ctx)
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		fmt.Fprintln(os.Stderr, "no saved projects")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGROUPS\tCOUNTRIES\tUPDATED")
	for _, p := range ps {
		n := 0
		for _, g := range p.Config.Groups {
			n += len(g.Members)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			p.ID, p.Name, len(p.Config.Groups), n, p.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
