// Command brushtable reads an engine snapshot and prints certainty tables.
//
// Usage:
//
//	brushtable -in snapshot.json -label L -axis A [-n 256]
//	brushtable -in snapshot.json -label L -datum a=1.5,b=20
//
// The first form prints the merged curve of label L on axis A, resampled at
// n evenly spaced positions. The second form prints the selection
// probability of a datum under label L.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/probrush/engine"
	"github.com/npillmayer/probrush/spline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("brushtable", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "snapshot file (JSON), '-' for stdin")
	label := fs.String("label", "", "label to evaluate")
	axis := fs.String("axis", "", "axis to resample")
	n := fs.Int("n", engine.DefaultSamples, "number of samples")
	datum := fs.String("datum", "", "datum as comma-separated axis=value pairs")
	tol := fs.Float64("tolerance", 0, "merge tolerance relative to axis length (0 = default)")
	level := fs.String("trace", "Error", "trace level: Error, Info or Debug")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracing.Select("probrush").SetTraceLevel(tracing.TraceLevelFromString(*level))
	if *in == "" || *label == "" || (*axis == "") == (*datum == "") {
		fmt.Fprintln(stderr, "brushtable: need -in, -label and exactly one of -axis or -datum")
		fs.Usage()
		return 2
	}
	e, err := load(*in, engine.WithTolerance(*tol))
	if err != nil {
		fmt.Fprintf(stderr, "brushtable: %v\n", err)
		return 1
	}
	if *axis != "" {
		err = printTable(stdout, e, *axis, *label, *n)
	} else {
		err = printProbability(stdout, e, *label, *datum)
	}
	if err != nil {
		fmt.Fprintf(stderr, "brushtable: %v\n", err)
		return 1
	}
	return 0
}

func load(path string, opts ...engine.Option) (*engine.Engine, error) {
	if path == "-" {
		return engine.ReadSnapshot(os.Stdin, opts...)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return engine.ReadSnapshot(f, opts...)
}

func printTable(w io.Writer, e *engine.Engine, axis, label string, n int) error {
	samples, err := e.Resample(axis, label, n)
	if err != nil {
		return err
	}
	rng, err := e.AxisRange(axis)
	if err != nil {
		return err
	}
	xs, err := spline.Positions(rng, len(samples))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# %s / %s\n", axis, label)
	for i, v := range samples {
		fmt.Fprintf(w, "%g\t%g\n", xs[i], v)
	}
	return nil
}

func printProbability(w io.Writer, e *engine.Engine, label, datum string) error {
	d, err := parseDatum(datum)
	if err != nil {
		return err
	}
	ok, p, err := e.Selected(label, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%g\t%t\n", p, ok)
	return nil
}

// parseDatum parses a comma-separated list of axis=value pairs.
func parseDatum(s string) (engine.Datum, error) {
	d := engine.Datum{}
	for _, part := range strings.Split(s, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || k == "" {
			return nil, fmt.Errorf("invalid datum entry '%s'", part)
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for '%s': %w", k, err)
		}
		d[k] = x
	}
	if len(d) == 0 {
		return nil, errors.New("empty datum")
	}
	return d, nil
}
