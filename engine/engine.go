/*
Package engine keeps the brushes of all labels and axes and answers
selection queries.

For every pair of (axis, label) the engine caches the merged certainty curve
of all brushes the label has on this axis. Every mutation validates its input
first, then rebuilds the curve of exactly the (axis, label) it touched.
A rejected mutation leaves brushes and curves as they were.

The selection probability of a datum under a label is the product of the
certainties on all axes the label has brushes on. Axes without brushes do
not constrain the selection.

Engines are not safe for concurrent mutation. Curves and Evaluators handed
out by an engine are immutable and may be shared between goroutines.

# Configuration

Engines may be configured by a schuko.Configuration. Keys are

	probrush.tolerance   merge tolerance relative to axis length (default 1e-6)
	probrush.samples     default number of samples for Resample (default 256)
	probrush.easing      easing of new labels: linear, in, out, inout (default linear)

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package engine

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/npillmayer/probrush"
	"github.com/npillmayer/probrush/brush"
	"github.com/npillmayer/probrush/easing"
	"github.com/npillmayer/probrush/segment"
	"github.com/npillmayer/probrush/spline"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'probrush.engine'
func tracer() tracing.Trace {
	return tracing.Select("probrush.engine")
}

// Configuration keys.
const (
	KeyTolerance = "probrush.tolerance"
	KeySamples   = "probrush.samples"
	KeyEasing    = "probrush.easing"
)

// DefaultSamples is the number of samples Resample produces if asked for 0
// samples.
const DefaultSamples = 256

// Engine holds axes, labels and their brushes.
type Engine struct {
	axes    map[string]probrush.Interval
	labels  map[string]*Label
	tol     float64     // relative merge tolerance
	samples int         // default sample count
	easing  easing.Kind // easing of new labels
}

// Option configures an engine.
type Option func(*Engine)

// WithTolerance sets the merge tolerance, relative to the length of an axis.
func WithTolerance(tol float64) Option {
	return func(e *Engine) {
		if tol > 0 && probrush.IsFinite(tol) {
			e.tol = tol
		}
	}
}

// WithConfiguration reads engine settings from a configuration. Malformed
// values are reported and ignored.
func WithConfiguration(conf schuko.Configuration) Option {
	return func(e *Engine) {
		if conf == nil {
			return
		}
		if conf.IsSet(KeyTolerance) {
			tol, err := strconv.ParseFloat(conf.GetString(KeyTolerance), 64)
			if err != nil || tol <= 0 || !probrush.IsFinite(tol) {
				tracer().Errorf("configuration: ignoring %s = %q", KeyTolerance, conf.GetString(KeyTolerance))
			} else {
				e.tol = tol
			}
		}
		if conf.IsSet(KeySamples) {
			if n := conf.GetInt(KeySamples); n >= 2 {
				e.samples = n
			} else {
				tracer().Errorf("configuration: ignoring %s = %q", KeySamples, conf.GetString(KeySamples))
			}
		}
		if conf.IsSet(KeyEasing) {
			if k, err := easing.ParseKind(conf.GetString(KeyEasing)); err == nil {
				e.easing = k
			} else {
				tracer().Errorf("configuration: %v", err)
			}
		}
	}
}

// New creates an engine without axes and labels.
func New(opts ...Option) *Engine {
	e := &Engine{
		axes:    make(map[string]probrush.Interval),
		labels:  make(map[string]*Label),
		tol:     spline.DefaultTolerance,
		samples: DefaultSamples,
		easing:  easing.Linear,
	}
	for _, opt := range opts {
		opt(e)
	}
	tracer().Debugf("new engine: tolerance = %g, samples = %d, easing = %s", e.tol, e.samples, e.easing)
	return e
}

// Tolerance returns the relative merge tolerance.
func (e *Engine) Tolerance() float64 { return e.tol }

// --- Axes and labels -------------------------------------------------------

// AddAxis adds an axis with its value range.
func (e *Engine) AddAxis(axis string, rng probrush.Interval) error {
	if _, ok := e.axes[axis]; ok {
		return fmt.Errorf("%w: axis %q", probrush.ErrDuplicateID, axis)
	}
	if !rng.IsValid() {
		return fmt.Errorf("%w: axis %q range %s", probrush.ErrInvalidDomain, axis, rng)
	}
	e.axes[axis] = rng
	tracer().Infof("axis %q added, range %s", axis, rng)
	return nil
}

// SetAxisRange changes the value range of an axis and rebuilds the curves
// of all labels on it. Brushes keep their positions; parts of brushes
// outside the new range do not contribute.
func (e *Engine) SetAxisRange(axis string, rng probrush.Interval) error {
	old, ok := e.axes[axis]
	if !ok {
		return fmt.Errorf("%w: %q", probrush.ErrUnknownAxis, axis)
	}
	if !rng.IsValid() {
		return fmt.Errorf("%w: axis %q range %s", probrush.ErrInvalidDomain, axis, rng)
	}
	curves := make(map[*Label]*spline.Curve)
	for _, l := range e.labels {
		if len(l.brushes[axis]) == 0 {
			continue
		}
		c, err := merge(rng, l.brushes[axis], e.tol)
		if err != nil {
			return err
		}
		curves[l] = c
	}
	e.axes[axis] = rng
	for l, c := range curves {
		l.curves[axis] = c
	}
	tracer().Infof("axis %q range %s → %s", axis, old, rng)
	return nil
}

// RemoveAxis removes an axis with all brushes and curves on it.
func (e *Engine) RemoveAxis(axis string) error {
	if _, ok := e.axes[axis]; !ok {
		return fmt.Errorf("%w: %q", probrush.ErrUnknownAxis, axis)
	}
	delete(e.axes, axis)
	for _, l := range e.labels {
		delete(l.brushes, axis)
		delete(l.curves, axis)
	}
	tracer().Infof("axis %q removed", axis)
	return nil
}

// Axes returns the ids of all axes, sorted.
func (e *Engine) Axes() []string {
	return sortedKeys(e.axes)
}

// AxisRange returns the value range of an axis.
func (e *Engine) AxisRange(axis string) (probrush.Interval, error) {
	rng, ok := e.axes[axis]
	if !ok {
		return rng, fmt.Errorf("%w: %q", probrush.ErrUnknownAxis, axis)
	}
	return rng, nil
}

// AddLabel adds a label without brushes. It uses the engine's default
// easing and accepts every probability in (0,1].
func (e *Engine) AddLabel(label string) error {
	if _, ok := e.labels[label]; ok {
		return fmt.Errorf("%w: label %q", probrush.ErrDuplicateID, label)
	}
	e.labels[label] = newLabel(label, e.easing)
	tracer().Infof("label %q added", label)
	return nil
}

// RemoveLabel removes a label with all its brushes and curves.
func (e *Engine) RemoveLabel(label string) error {
	if _, ok := e.labels[label]; !ok {
		return fmt.Errorf("%w: %q", probrush.ErrUnknownLabel, label)
	}
	delete(e.labels, label)
	tracer().Infof("label %q removed", label)
	return nil
}

// Labels returns the ids of all labels, sorted.
func (e *Engine) Labels() []string {
	return sortedKeys(e.labels)
}

// Label returns a label by id.
func (e *Engine) Label(label string) (*Label, error) {
	l, ok := e.labels[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", probrush.ErrUnknownLabel, label)
	}
	return l, nil
}

// lookup resolves an (axis, label) pair.
func (e *Engine) lookup(axis, label string) (probrush.Interval, *Label, error) {
	l, err := e.Label(label)
	if err != nil {
		return probrush.Interval{}, nil, err
	}
	rng, err := e.AxisRange(axis)
	return rng, l, err
}

// merge builds the merged curve of a list of brushes.
func merge(rng probrush.Interval, brushes []*brush.Brush, tol float64) (*spline.Curve, error) {
	curves := make([][]segment.Segment, len(brushes))
	for i, b := range brushes {
		curves[i] = b.Curve()
	}
	return spline.Merge(rng, curves, tol)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
