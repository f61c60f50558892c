package engine

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/npillmayer/probrush"
	"github.com/npillmayer/probrush/brush"
	"github.com/npillmayer/probrush/easing"
	"github.com/npillmayer/probrush/spline"
)

// Acceptance is the interval of selection probabilities a label accepts.
// The lower bound may be excluded.
type Acceptance struct {
	Lo, Hi float64
	OpenLo bool // exclude Lo
}

// DefaultAcceptance accepts every probability in (0,1].
var DefaultAcceptance = Acceptance{Lo: 0, Hi: 1, OpenLo: true}

// Contains checks if p is accepted.
func (a Acceptance) Contains(p float64) bool {
	if a.OpenLo {
		return p > a.Lo && p <= a.Hi
	}
	return p >= a.Lo && p <= a.Hi
}

func (a Acceptance) String() string {
	if a.OpenLo {
		return fmt.Sprintf("(%g,%g]", a.Lo, a.Hi)
	}
	return fmt.Sprintf("[%g,%g]", a.Lo, a.Hi)
}

// Label is a named selection context. It holds brushes per axis, the
// merged curves of these brushes, an acceptance interval and the easing of
// non-main brush segments.
type Label struct {
	id         string
	easing     easing.Kind
	acceptance Acceptance
	brushes    map[string][]*brush.Brush // per axis, in order of creation
	curves     map[string]*spline.Curve  // per constrained axis
}

func newLabel(id string, kind easing.Kind) *Label {
	return &Label{
		id:         id,
		easing:     kind,
		acceptance: DefaultAcceptance,
		brushes:    make(map[string][]*brush.Brush),
		curves:     make(map[string]*spline.Curve),
	}
}

// ID returns the label's id.
func (l *Label) ID() string { return l.id }

// Easing returns the easing of non-main brush segments.
func (l *Label) Easing() easing.Kind { return l.easing }

// Acceptance returns the acceptance interval.
func (l *Label) Acceptance() Acceptance { return l.acceptance }

// ConstrainedAxes returns the axes the label has brushes on, sorted.
func (l *Label) ConstrainedAxes() []string {
	return sortedKeys(l.curves)
}

// commit replaces the brushes of an axis and rebuilds its curve. Nothing is
// changed if the merge fails.
func (l *Label) commit(axis string, rng probrush.Interval, brushes []*brush.Brush, tol float64) error {
	if len(brushes) == 0 {
		delete(l.brushes, axis)
		delete(l.curves, axis)
		tracer().Debugf("label %q: axis %q unconstrained", l.id, axis)
		return nil
	}
	c, err := merge(rng, brushes, tol)
	if err != nil {
		return err
	}
	l.brushes[axis] = brushes
	l.curves[axis] = c
	tracer().Debugf("label %q: axis %q rebuilt with %d brushes, %d pieces", l.id, axis, len(brushes), c.Len())
	return nil
}

// brushIndex finds a brush on an axis by id.
func (l *Label) brushIndex(axis string, id uuid.UUID) (int, error) {
	i := slices.IndexFunc(l.brushes[axis], func(b *brush.Brush) bool { return b.ID() == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s on axis %q of label %q", probrush.ErrUnknownBrush, id, axis, l.id)
	}
	return i, nil
}
