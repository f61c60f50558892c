package engine

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/npillmayer/probrush"
	"github.com/npillmayer/probrush/brush"
	"github.com/npillmayer/probrush/easing"
)

// Snapshot is the serializable state of an engine. Curves are not part of
// a snapshot; they are rebuilt on restore.
type Snapshot struct {
	Axes   map[string]probrush.Interval `json:"axes"`
	Labels map[string]LabelSnapshot    `json:"labels"`
}

// LabelSnapshot is the serializable state of a label.
type LabelSnapshot struct {
	Easing     easing.Kind                `json:"easing"`
	Acceptance [2]float64                 `json:"acceptance"`
	OpenLo     bool                       `json:"openLo,omitempty"`
	Axes       map[string][]BrushSnapshot `json:"axes,omitempty"`
}

// BrushSnapshot is the serializable state of a brush.
type BrushSnapshot struct {
	Points         []probrush.Pair `json:"points"`
	MainSegmentIdx int             `json:"mainSegmentIdx"`
	Kinds          []easing.Kind   `json:"kinds,omitempty"`
}

// Snapshot captures axes, labels and brushes. Brushes are listed in order
// of creation.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Axes:   make(map[string]probrush.Interval, len(e.axes)),
		Labels: make(map[string]LabelSnapshot, len(e.labels)),
	}
	for id, rng := range e.axes {
		s.Axes[id] = rng
	}
	for id, l := range e.labels {
		ls := LabelSnapshot{
			Easing:     l.easing,
			Acceptance: [2]float64{l.acceptance.Lo, l.acceptance.Hi},
			OpenLo:     l.acceptance.OpenLo,
			Axes:       make(map[string][]BrushSnapshot, len(l.brushes)),
		}
		for axis, brushes := range l.brushes {
			for _, b := range brushes {
				ls.Axes[axis] = append(ls.Axes[axis], BrushSnapshot{
					Points:         b.Points(),
					MainSegmentIdx: b.MainSegment(),
					Kinds:          b.Kinds(),
				})
			}
		}
		s.Labels[id] = ls
	}
	return s
}

// Restore creates an engine from a snapshot. Brushes without explicit
// segment kinds use the easing of their label.
func Restore(s Snapshot, opts ...Option) (*Engine, error) {
	e := New(opts...)
	for _, id := range sortedKeys(s.Axes) {
		if err := e.AddAxis(id, s.Axes[id]); err != nil {
			return nil, err
		}
	}
	for _, id := range sortedKeys(s.Labels) {
		ls := s.Labels[id]
		if err := e.AddLabel(id); err != nil {
			return nil, err
		}
		l := e.labels[id]
		if !ls.Easing.IsValid() {
			return nil, fmt.Errorf("label %q: %w: %s", id, easing.ErrUnknownEasing, ls.Easing)
		}
		l.easing = ls.Easing
		lo, hi := ls.Acceptance[0], ls.Acceptance[1]
		if !probrush.IsCertainty(lo) || !probrush.IsCertainty(hi) || lo > hi {
			return nil, fmt.Errorf("label %q: %w: acceptance [%g,%g]", id, probrush.ErrInvalidCertainty, lo, hi)
		}
		l.acceptance = Acceptance{Lo: lo, Hi: hi, OpenLo: ls.OpenLo}
		for _, axis := range sortedKeys(ls.Axes) {
			rng, ok := e.axes[axis]
			if !ok {
				return nil, fmt.Errorf("label %q: %w: %q", id, probrush.ErrUnknownAxis, axis)
			}
			brushes := make([]*brush.Brush, len(ls.Axes[axis]))
			for i, bs := range ls.Axes[axis] {
				var b *brush.Brush
				var err error
				if bs.Kinds == nil {
					b, err = brush.New(bs.Points, bs.MainSegmentIdx, l.easing)
				} else {
					b, err = brush.NewWithKinds(bs.Points, bs.MainSegmentIdx, bs.Kinds, l.easing)
				}
				if err != nil {
					return nil, fmt.Errorf("label %q, axis %q, brush %d: %w", id, axis, i, err)
				}
				brushes[i] = b
			}
			if err := l.commit(axis, rng, brushes, e.tol); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}

// WriteSnapshot writes the engine's snapshot as JSON.
func (e *Engine) WriteSnapshot(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e.Snapshot())
}

// ReadSnapshot reads a JSON snapshot and restores an engine from it.
func ReadSnapshot(r io.Reader, opts ...Option) (*Engine, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return Restore(s, opts...)
}
