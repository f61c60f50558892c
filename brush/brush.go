/*
Package brush implements probabilistic brushes on a single axis.

A brush is a chain of at least 2 control points, sorted strictly increasing
by position. Neighbouring control points are connected by segments; one of
them, the main segment, represents the originally drawn selection range and
is always linear. The other segments follow an easing kind. Outside of its
domain [first.X, last.X] a brush contributes no certainty.

Brushes are immutable values. Every edit returns a new brush, leaving the
receiver untouched, so a rejected edit never changes a brush that is
already in use.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package brush

import (
	"fmt"
	"slices"
	"sort"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/npillmayer/probrush"
	"github.com/npillmayer/probrush/easing"
	"github.com/npillmayer/probrush/segment"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'probrush.brush'
func tracer() tracing.Trace {
	return tracing.Select("probrush.brush")
}

// created counts brush creations. Edited brushes keep the number of the
// brush they have been derived from.
var created atomic.Uint64

// Direction tells InsertControlPointNear which half of a split main segment
// stays the main segment.
type Direction int8

const (
	// Down keeps the lower half as main segment.
	Down Direction = iota
	// Up moves the main segment to the upper half.
	Up
)

// Brush is a certainty curve over a part of an axis' domain.
type Brush struct {
	id     uuid.UUID
	seq    uint64
	points []probrush.Pair
	main   int           // index of main segment
	kinds  []easing.Kind // one per segment, kinds[main] = Linear
	kind   easing.Kind   // kind for new non-main segments
	segs   []segment.Segment
}

// New creates a brush from control points. mainIdx denotes the main
// segment, i.e. the segment between points[mainIdx] and points[mainIdx+1].
// All other segments get the easing kind.
func New(points []probrush.Pair, mainIdx int, kind easing.Kind) (*Brush, error) {
	kinds := make([]easing.Kind, max(len(points)-1, 0))
	for i := range kinds {
		kinds[i] = kind
	}
	return build(uuid.New(), created.Add(1), points, mainIdx, kinds, kind)
}

// NewWithKinds creates a brush with an explicit easing kind for every
// segment. The kind of the main segment is ignored. kind is the easing for
// segments added later on.
func NewWithKinds(points []probrush.Pair, mainIdx int, kinds []easing.Kind,
	kind easing.Kind) (*Brush, error) {
	//
	if len(kinds) != max(len(points)-1, 0) {
		return nil, fmt.Errorf("%w: %d kinds for %d segments", probrush.ErrIndexOutOfRange,
			len(kinds), len(points)-1)
	}
	return build(uuid.New(), created.Add(1), points, mainIdx, slices.Clone(kinds), kind)
}

// build validates and assembles a brush. It takes ownership of points and
// kinds.
func build(id uuid.UUID, seq uint64, points []probrush.Pair, mainIdx int,
	kinds []easing.Kind, kind easing.Kind) (*Brush, error) {
	//
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", probrush.ErrDegenerateBrush, len(points))
	}
	if mainIdx < 0 || mainIdx > len(points)-2 {
		return nil, fmt.Errorf("%w: main segment %d of %d", probrush.ErrIndexOutOfRange,
			mainIdx, len(points)-1)
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", easing.ErrUnknownEasing, kind)
	}
	points = slices.Clone(points)
	kinds[mainIdx] = easing.Linear
	b := &Brush{id: id, seq: seq, points: points, main: mainIdx, kinds: kinds, kind: kind}
	b.segs = make([]segment.Segment, len(points)-1)
	for i := range b.segs {
		s, err := segment.Build(points[i], points[i+1], kinds[i])
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		b.segs[i] = s
	}
	return b, nil
}

// derive builds an edited version of b with the same identity.
func (b *Brush) derive(points []probrush.Pair, mainIdx int, kinds []easing.Kind,
	kind easing.Kind) (*Brush, error) {
	//
	nb, err := build(b.id, b.seq, points, mainIdx, kinds, kind)
	if err != nil {
		tracer().Infof("brush %s: edit rejected: %v", b.id, err)
	}
	return nb, err
}

// ID identifies a brush across edits.
func (b *Brush) ID() uuid.UUID { return b.id }

// Seq is the creation sequence number. Brushes created later have higher
// numbers.
func (b *Brush) Seq() uint64 { return b.seq }

// Len returns the number of control points.
func (b *Brush) Len() int { return len(b.points) }

// Point returns control point i.
func (b *Brush) Point(i int) probrush.Pair { return b.points[i] }

// Points returns a copy of the control points.
func (b *Brush) Points() []probrush.Pair { return slices.Clone(b.points) }

// MainSegment returns the index of the main segment.
func (b *Brush) MainSegment() int { return b.main }

// Kinds returns a copy of the per-segment easing kinds.
func (b *Brush) Kinds() []easing.Kind { return slices.Clone(b.kinds) }

// Easing returns the kind used for new non-main segments.
func (b *Brush) Easing() easing.Kind { return b.kind }

// Domain returns [first.X, last.X].
func (b *Brush) Domain() probrush.Interval {
	return probrush.I(b.points[0].X(), b.points[len(b.points)-1].X())
}

// Curve returns the segments of the brush, ordered and gap-free.
func (b *Brush) Curve() []segment.Segment {
	return slices.Clone(b.segs)
}

// At evaluates the certainty of the brush at x. Outside of the domain of the
// brush, At is 0.
func (b *Brush) At(x float64) float64 {
	if !b.Domain().Contains(x) {
		return 0
	}
	i := b.segmentContaining(x)
	return b.segs[i].At(x)
}

// segmentContaining returns the index of the first segment with
// lo ≤ x ≤ hi. x must be within the domain.
func (b *Brush) segmentContaining(x float64) int {
	i := sort.Search(len(b.segs), func(i int) bool { return b.segs[i].Domain.Hi() >= x })
	return min(i, len(b.segs)-1)
}

func (b *Brush) String() string {
	return fmt.Sprintf("brush[%s #%d %v main=%d]", b.id.String()[:8], b.seq, b.points, b.main)
}

// --- Edits -----------------------------------------------------------------

// InsertControlPoint inserts a control point. The position must differ from
// all existing positions. A point outside of the domain extends the brush.
// Splitting the main segment keeps its lower half as main segment.
func (b *Brush) InsertControlPoint(p probrush.Pair) (*Brush, error) {
	return b.insert(p, Down)
}

// InsertControlPointNear inserts a control point at position x and derives
// its certainty from the brush: within the domain it is the mean of the
// certainties at the ends of the enclosing segment, outside it is 0.
// If x splits the main segment, dir decides which half stays main.
func (b *Brush) InsertControlPointNear(x float64, dir Direction) (*Brush, error) {
	y := 0.0
	if b.Domain().Contains(x) {
		i := b.segmentContaining(x)
		y = (b.points[i].Y() + b.points[i+1].Y()) / 2
	}
	return b.insert(probrush.P(x, y), dir)
}

func (b *Brush) insert(p probrush.Pair, dir Direction) (*Brush, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: control point %v", probrush.ErrInvalidDomain, p)
	}
	idx, found := slices.BinarySearchFunc(b.points, p.X(), func(q probrush.Pair, x float64) int {
		switch {
		case q.X() < x:
			return -1
		case q.X() > x:
			return 1
		}
		return 0
	})
	if found {
		return nil, fmt.Errorf("%w: duplicate position %g", probrush.ErrInvalidDomain, p.X())
	}
	points := slices.Insert(slices.Clone(b.points), idx, p)
	kinds := slices.Clone(b.kinds)
	main := b.main
	switch {
	case idx == 0:
		kinds = slices.Insert(kinds, 0, b.kind)
		main++
	case idx == len(b.points):
		kinds = append(kinds, b.kind)
	case idx == b.main+1: // split main segment
		if dir == Up {
			kinds = slices.Insert(kinds, idx-1, b.kind)
			main++
		} else {
			kinds = slices.Insert(kinds, idx, b.kind)
		}
	default: // split a non-main segment, both halves keep its kind
		kinds = slices.Insert(kinds, idx, kinds[idx-1])
		if idx <= b.main {
			main++
		}
	}
	return b.derive(points, main, kinds, b.kind)
}

// MoveControlPoint moves control point i to p. It has to stay strictly
// between its neighbours.
func (b *Brush) MoveControlPoint(i int, p probrush.Pair) (*Brush, error) {
	if i < 0 || i >= len(b.points) {
		return nil, fmt.Errorf("%w: control point %d of %d", probrush.ErrIndexOutOfRange, i, len(b.points))
	}
	points := slices.Clone(b.points)
	points[i] = p
	return b.derive(points, b.main, slices.Clone(b.kinds), b.kind)
}

// DeleteControlPoint removes control point i. A brush cannot shrink below 2
// control points. Removing an end point of the main segment merges the main
// segment with its neighbour.
func (b *Brush) DeleteControlPoint(i int) (*Brush, error) {
	n := len(b.points)
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: control point %d of %d", probrush.ErrIndexOutOfRange, i, n)
	}
	if n <= 2 {
		return nil, fmt.Errorf("%w: cannot delete from %d control points", probrush.ErrDegenerateBrush, n)
	}
	points := slices.Delete(slices.Clone(b.points), i, i+1)
	kinds := slices.Clone(b.kinds)
	if i == n-1 {
		kinds = kinds[:len(kinds)-1]
	} else {
		kinds = slices.Delete(kinds, i, i+1)
	}
	main := b.main
	if i <= b.main && main > 0 {
		main--
	}
	main = min(main, len(points)-2)
	return b.derive(points, main, kinds, b.kind)
}

// WithEasing sets the easing kind of all non-main segments.
func (b *Brush) WithEasing(kind easing.Kind) (*Brush, error) {
	kinds := make([]easing.Kind, len(b.kinds))
	for i := range kinds {
		kinds[i] = kind
	}
	return b.derive(slices.Clone(b.points), b.main, kinds, kind)
}

// WithSegmentKind sets the easing kind of segment i, which must not be the
// main segment.
func (b *Brush) WithSegmentKind(i int, kind easing.Kind) (*Brush, error) {
	if i < 0 || i >= len(b.kinds) {
		return nil, fmt.Errorf("%w: segment %d of %d", probrush.ErrIndexOutOfRange, i, len(b.kinds))
	}
	if i == b.main {
		return nil, fmt.Errorf("%w: segment %d", probrush.ErrMainSegmentFixed, i)
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", easing.ErrUnknownEasing, kind)
	}
	kinds := slices.Clone(b.kinds)
	kinds[i] = kind
	return b.derive(slices.Clone(b.points), b.main, kinds, b.kind)
}

// Offset translates all control points by dx.
func (b *Brush) Offset(dx float64) (*Brush, error) {
	T := probrush.Translation(probrush.P(dx, 0))
	points := make([]probrush.Pair, len(b.points))
	for i, p := range b.points {
		points[i] = T.Transform(p)
	}
	return b.derive(points, b.main, slices.Clone(b.kinds), b.kind)
}
