package engine

import (
	"fmt"
	"slices"

	"github.com/npillmayer/probrush"
	"github.com/npillmayer/probrush/brush"
	"github.com/npillmayer/probrush/spline"
)

// Datum maps axis ids to the values of one data point.
type Datum map[string]float64

// Curve returns the merged curve of a label on an axis. For an axis without
// brushes this is the constant-zero curve.
func (e *Engine) Curve(axis, label string) (*spline.Curve, error) {
	rng, l, err := e.lookup(axis, label)
	if err != nil {
		return nil, err
	}
	if c, ok := l.curves[axis]; ok {
		return c, nil
	}
	return spline.Zero(rng)
}

// EvaluateAt evaluates the merged curve of a label on an axis at x.
func (e *Engine) EvaluateAt(axis, label string, x float64) (float64, error) {
	c, err := e.Curve(axis, label)
	if err != nil {
		return 0, err
	}
	return c.At(x)
}

// Resample evaluates the merged curve of a label on an axis at n evenly
// spaced positions, including both ends of the axis range. n = 0 selects
// the configured default.
func (e *Engine) Resample(axis, label string, n int) ([]float64, error) {
	c, err := e.Curve(axis, label)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		n = e.samples
	}
	return c.Resample(n)
}

// ConstrainedAxes returns the axes a label has brushes on, sorted.
func (e *Engine) ConstrainedAxes(label string) ([]string, error) {
	l, err := e.Label(label)
	if err != nil {
		return nil, err
	}
	return l.ConstrainedAxes(), nil
}

// Brushes returns the brushes of a label on an axis, in order of creation.
func (e *Engine) Brushes(axis, label string) ([]*brush.Brush, error) {
	_, l, err := e.lookup(axis, label)
	if err != nil {
		return nil, err
	}
	return slices.Clone(l.brushes[axis]), nil
}

// Groups returns the overlap groups of a label's brushes on an axis.
// Group members index into the list returned by Brushes.
func (e *Engine) Groups(axis, label string) ([]brush.Group, error) {
	_, l, err := e.lookup(axis, label)
	if err != nil {
		return nil, err
	}
	return brush.Groups(l.brushes[axis]), nil
}

// Ranks returns the stacking ranks of a label's brushes on an axis.
func (e *Engine) Ranks(axis, label string) ([]int, error) {
	_, l, err := e.lookup(axis, label)
	if err != nil {
		return nil, err
	}
	return brush.Ranks(l.brushes[axis]), nil
}

// Probability computes the selection probability of a datum under a label.
func (e *Engine) Probability(label string, d Datum) (float64, error) {
	ev, err := e.Evaluator(label)
	if err != nil {
		return 0, err
	}
	return ev.Probability(d)
}

// Selected computes the selection probability of a datum and checks it
// against the label's acceptance interval.
func (e *Engine) Selected(label string, d Datum) (bool, float64, error) {
	ev, err := e.Evaluator(label)
	if err != nil {
		return false, 0, err
	}
	return ev.Selected(d)
}

// Evaluator creates a read-only view of a label's current curves.
func (e *Engine) Evaluator(label string) (*Evaluator, error) {
	l, err := e.Label(label)
	if err != nil {
		return nil, err
	}
	axes := l.ConstrainedAxes()
	ev := &Evaluator{
		label:      label,
		acceptance: l.acceptance,
		axes:       axes,
		curves:     make([]*spline.Curve, len(axes)),
	}
	for i, a := range axes {
		ev.curves[i] = l.curves[a]
	}
	return ev, nil
}

// Evaluator computes selection probabilities for one label. It is a
// snapshot: later mutations of the engine do not change it. Evaluators may
// be used from several goroutines at once.
type Evaluator struct {
	label      string
	acceptance Acceptance
	axes       []string
	curves     []*spline.Curve
}

// ConstrainedAxes returns the axes which contribute to the probability.
func (ev *Evaluator) ConstrainedAxes() []string {
	return slices.Clone(ev.axes)
}

// Probability is the product of the certainties of d on all constrained
// axes. d has to provide a value for every constrained axis; values for
// other axes are ignored.
func (ev *Evaluator) Probability(d Datum) (float64, error) {
	p := 1.0
	for i, a := range ev.axes {
		x, ok := d[a]
		if !ok {
			return 0, fmt.Errorf("%w: datum has no value for %q", probrush.ErrUnknownAxis, a)
		}
		v, err := ev.curves[i].At(x)
		if err != nil {
			return 0, fmt.Errorf("label %q, axis %q: %w", ev.label, a, err)
		}
		p *= v
	}
	return p, nil
}

// Selected checks the probability of d against the acceptance interval.
// The probability is returned in any case.
func (ev *Evaluator) Selected(d Datum) (bool, float64, error) {
	p, err := ev.Probability(d)
	if err != nil {
		return false, 0, err
	}
	return ev.acceptance.Contains(p), p, nil
}

// ProbabilityBatch computes the probabilities of many data points. It stops
// at the first datum which cannot be evaluated.
func (ev *Evaluator) ProbabilityBatch(data []Datum) ([]float64, error) {
	ps := make([]float64, len(data))
	for i, d := range data {
		p, err := ev.Probability(d)
		if err != nil {
			return nil, fmt.Errorf("datum %d: %w", i, err)
		}
		ps[i] = p
	}
	return ps, nil
}
