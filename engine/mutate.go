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

// CreateBrush adds a brush to a label on an axis. Non-main segments use the
// label's easing. Returns the id of the new brush.
func (e *Engine) CreateBrush(axis, label string, points []probrush.Pair, mainIdx int) (uuid.UUID, error) {
	rng, l, err := e.lookup(axis, label)
	if err != nil {
		return uuid.Nil, err
	}
	b, err := brush.New(points, mainIdx, l.easing)
	if err != nil {
		tracer().Infof("label %q, axis %q: brush rejected: %v", label, axis, err)
		return uuid.Nil, err
	}
	if err := l.commit(axis, rng, append(slices.Clone(l.brushes[axis]), b), e.tol); err != nil {
		return uuid.Nil, err
	}
	tracer().Infof("label %q, axis %q: created %s", label, axis, b)
	return b.ID(), nil
}

// editBrush applies an edit to a copy of a brush and commits the result.
func (e *Engine) editBrush(axis, label string, id uuid.UUID, edit func(*brush.Brush) (*brush.Brush, error)) error {
	rng, l, err := e.lookup(axis, label)
	if err != nil {
		return err
	}
	i, err := l.brushIndex(axis, id)
	if err != nil {
		return err
	}
	b, err := edit(l.brushes[axis][i])
	if err != nil {
		return err
	}
	brushes := slices.Clone(l.brushes[axis])
	brushes[i] = b
	return l.commit(axis, rng, brushes, e.tol)
}

// InsertControlPoint inserts a control point into a brush.
func (e *Engine) InsertControlPoint(axis, label string, id uuid.UUID, p probrush.Pair) error {
	return e.editBrush(axis, label, id, func(b *brush.Brush) (*brush.Brush, error) {
		return b.InsertControlPoint(p)
	})
}

// InsertControlPointNear inserts a control point at position x into a
// brush, deriving its certainty from the brush.
func (e *Engine) InsertControlPointNear(axis, label string, id uuid.UUID, x float64, dir brush.Direction) error {
	return e.editBrush(axis, label, id, func(b *brush.Brush) (*brush.Brush, error) {
		return b.InsertControlPointNear(x, dir)
	})
}

// MoveControlPoint moves control point i of a brush to p.
func (e *Engine) MoveControlPoint(axis, label string, id uuid.UUID, i int, p probrush.Pair) error {
	return e.editBrush(axis, label, id, func(b *brush.Brush) (*brush.Brush, error) {
		return b.MoveControlPoint(i, p)
	})
}

// DeleteControlPoint removes control point i of a brush.
func (e *Engine) DeleteControlPoint(axis, label string, id uuid.UUID, i int) error {
	return e.editBrush(axis, label, id, func(b *brush.Brush) (*brush.Brush, error) {
		return b.DeleteControlPoint(i)
	})
}

// SetSegmentEasing sets the easing of a single non-main segment of a brush.
func (e *Engine) SetSegmentEasing(axis, label string, id uuid.UUID, segment int, kind easing.Kind) error {
	return e.editBrush(axis, label, id, func(b *brush.Brush) (*brush.Brush, error) {
		return b.WithSegmentKind(segment, kind)
	})
}

// DeleteBrush removes a brush. Removing the last brush of a label on an
// axis leaves the axis unconstrained for the label.
func (e *Engine) DeleteBrush(axis, label string, id uuid.UUID) error {
	rng, l, err := e.lookup(axis, label)
	if err != nil {
		return err
	}
	i, err := l.brushIndex(axis, id)
	if err != nil {
		return err
	}
	brushes := slices.Delete(slices.Clone(l.brushes[axis]), i, i+1)
	return l.commit(axis, rng, brushes, e.tol)
}

// group resolves an overlap group of brushes on an axis.
func (e *Engine) group(axis, label string, group int) (probrush.Interval, *Label, brush.Group, error) {
	rng, l, err := e.lookup(axis, label)
	if err != nil {
		return rng, nil, brush.Group{}, err
	}
	groups := brush.Groups(l.brushes[axis])
	if group < 0 || group >= len(groups) {
		return rng, nil, brush.Group{}, fmt.Errorf("%w: group %d of %d", probrush.ErrIndexOutOfRange,
			group, len(groups))
	}
	return rng, l, groups[group], nil
}

// OffsetGroup moves all brushes of an overlap group by dx.
func (e *Engine) OffsetGroup(axis, label string, group int, dx float64) error {
	rng, l, g, err := e.group(axis, label, group)
	if err != nil {
		return err
	}
	brushes := slices.Clone(l.brushes[axis])
	for _, i := range g.Members {
		if brushes[i], err = brushes[i].Offset(dx); err != nil {
			return err
		}
	}
	return l.commit(axis, rng, brushes, e.tol)
}

// DeleteGroup removes all brushes of an overlap group.
func (e *Engine) DeleteGroup(axis, label string, group int) error {
	rng, l, g, err := e.group(axis, label, group)
	if err != nil {
		return err
	}
	var brushes []*brush.Brush
	for i, b := range l.brushes[axis] {
		if !slices.Contains(g.Members, i) {
			brushes = append(brushes, b)
		}
	}
	return l.commit(axis, rng, brushes, e.tol)
}

// SetLabelEasing sets the easing of a label. All non-main segments of the
// label's brushes are re-built with the new easing, and future brushes will
// use it.
func (e *Engine) SetLabelEasing(label string, kind easing.Kind) error {
	l, err := e.Label(label)
	if err != nil {
		return err
	}
	if !kind.IsValid() {
		return fmt.Errorf("%w: %s", easing.ErrUnknownEasing, kind)
	}
	// compute all brushes and curves first, so a failure leaves the label as is
	edited := make(map[string][]*brush.Brush, len(l.brushes))
	curves := make(map[string]*spline.Curve, len(l.brushes))
	for axis, brushes := range l.brushes {
		list := make([]*brush.Brush, len(brushes))
		for i, b := range brushes {
			if list[i], err = b.WithEasing(kind); err != nil {
				return err
			}
		}
		if curves[axis], err = merge(e.axes[axis], list, e.tol); err != nil {
			return err
		}
		edited[axis] = list
	}
	for axis, list := range edited {
		l.brushes[axis] = list
		l.curves[axis] = curves[axis]
	}
	l.easing = kind
	tracer().Infof("label %q: easing %s", label, kind)
	return nil
}

// SetLabelAcceptanceInterval sets the closed interval [lo,hi] of selection
// probabilities a label accepts, with 0 ≤ lo ≤ hi ≤ 1.
func (e *Engine) SetLabelAcceptanceInterval(label string, lo, hi float64) error {
	l, err := e.Label(label)
	if err != nil {
		return err
	}
	if !probrush.IsCertainty(lo) || !probrush.IsCertainty(hi) || lo > hi {
		return fmt.Errorf("%w: acceptance [%g,%g]", probrush.ErrInvalidCertainty, lo, hi)
	}
	l.acceptance = Acceptance{Lo: lo, Hi: hi}
	tracer().Infof("label %q: acceptance %s", label, l.acceptance)
	return nil
}
