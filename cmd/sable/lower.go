package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sable/internal/corpus"
	"sable/internal/diag"
	"sable/internal/diagfmt"
	"sable/internal/driver"
	"sable/internal/hir"
	"sable/internal/project"
	"sable/internal/source"
)

var (
	lowerJSON     bool
	lowerDumpCore bool
)

func init() {
	lowerCmd.Flags().BoolVar(&lowerJSON, "json", false, "emit machine-readable JSON")
	lowerCmd.Flags().BoolVar(&lowerDumpCore, "dump-core", false, "dump the lowered core trees")
}

var lowerCmd = &cobra.Command{
	Use:           "lower [fixture...]",
	Short:         "Lower fixture units to the core form and report diagnostics",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		colorOn, err := useColor(cfg.Color, os.Stdout)
		if err != nil {
			return err
		}
		mode, err := readUIMode(cfg.UI)
		if err != nil {
			return err
		}

		// The language manifest only matters when it exists and is broken;
		// fixture programs carry their own feature gates.
		projBag := diag.NewBag(4)
		if _, found, mErr := project.LoadNearestManifest("."); found && mErr != nil {
			projBag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.ProjManifestInvalid,
				Message:  mErr.Error(),
			})
		}

		// Dumping core trees needs the lowered units, which cache hits
		// do not carry.
		var cache *driver.Cache
		if !cfg.NoCache && !lowerDumpCore {
			if c, cErr := driver.OpenCache("sable"); cErr == nil {
				cache = c
			}
		}

		opts := driver.Options{
			Fixtures:       args,
			Jobs:           cfg.Jobs,
			MaxDiagnostics: cfg.MaxDiagnostics,
			Timings:        cfg.Timings,
			Cache:          cache,
		}

		var results []driver.Result
		if shouldUseTUI(mode) && !lowerJSON {
			results, err = runWithUI(context.Background(), "lowering units", unitNames(args), opts)
		} else {
			results, err = driver.Run(context.Background(), opts)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if lowerJSON {
			if err := writeRunJSON(out, results, projBag); err != nil {
				return err
			}
		} else {
			printRun(out, results, projBag, colorOn)
		}

		if driver.HasErrors(results) {
			return fmt.Errorf("lowering produced errors")
		}
		return nil
	},
}

// unitNames resolves the fixture selection to display names.
func unitNames(args []string) []string {
	if len(args) > 0 {
		return args
	}
	all := corpus.All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

func printRun(out io.Writer, results []driver.Result, projBag *diag.Bag, colorOn bool) {
	popts := diagfmt.PrettyOpts{Color: colorOn, ShowNotes: true, ShowFixes: true}
	if projBag.Len() > 0 {
		diagfmt.Pretty(out, projBag, nil, popts)
	}
	for _, res := range results {
		suffix := ""
		if res.Cached {
			suffix = " (cached)"
		}
		fmt.Fprintf(out, "unit %s%s\n", res.Name, suffix)
		if res.Bag != nil && res.Bag.Len() > 0 {
			var fs *source.FileSet
			if res.Prog != nil {
				fs = res.Prog.Files
			}
			diagfmt.Pretty(out, res.Bag, fs, popts)
		}
		if lowerDumpCore && res.Unit != nil && res.Prog != nil {
			if err := hir.Dump(out, res.Unit, res.Prog.Strings); err != nil {
				fmt.Fprintf(out, "dump failed: %v\n", err)
			}
		}
	}
}

type runUnitJSON struct {
	Name        string                    `json:"name"`
	Cached      bool                      `json:"cached"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	Unit        *diagfmt.UnitJSON         `json:"unit,omitempty"`
}

type runJSON struct {
	Project *diagfmt.DiagnosticsOutput `json:"project,omitempty"`
	Units   []runUnitJSON              `json:"units"`
}

func writeRunJSON(out io.Writer, results []driver.Result, projBag *diag.Bag) error {
	jopts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, IncludeFixes: true}
	doc := runJSON{Units: make([]runUnitJSON, 0, len(results))}
	if projBag.Len() > 0 {
		pd := diagfmt.BuildDiagnosticsOutput(projBag, nil, jopts)
		doc.Project = &pd
	}
	for _, res := range results {
		var fs *source.FileSet
		if res.Prog != nil {
			fs = res.Prog.Files
		}
		bag := res.Bag
		if bag == nil {
			bag = diag.NewBag(1)
		}
		uj := runUnitJSON{
			Name:        res.Name,
			Cached:      res.Cached,
			Diagnostics: diagfmt.BuildDiagnosticsOutput(bag, fs, jopts),
		}
		if lowerDumpCore && res.Unit != nil && res.Prog != nil {
			u := diagfmt.BuildUnitOutput(res.Unit, res.Prog.Strings)
			uj.Unit = &u
		}
		doc.Units = append(doc.Units, uj)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
