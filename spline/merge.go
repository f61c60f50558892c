/*
Package spline merges the brushes of one axis into a single certainty curve.

The merged curve is the pointwise maximum of all brush curves, with an
implicit certainty of 0 wherever no brush is defined. It is represented as
an ordered, contiguous table of cubic pieces spanning the whole axis range,
so evaluation is a binary search followed by a Horner step.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package spline

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/probrush"
	"github.com/npillmayer/probrush/polyn"
	"github.com/npillmayer/probrush/segment"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'probrush.spline'
func tracer() tracing.Trace {
	return tracing.Select("probrush.spline")
}

// DefaultTolerance is the merge tolerance relative to the length of the
// axis range.
const DefaultTolerance = 1e-6

// candidate is a curve live on an elementary interval of the merge.
type candidate struct {
	cubic segment.Cubic
	local polyn.Polynomial // cubic in terms of the interval's local parameter
}

func (c candidate) at(u float64) float64 {
	return c.local.Eval(u)
}

// Merge builds the merged curve of brush curves over an axis range. curves
// must be ordered by creation; on ties the later curve wins. Every curve is
// an ordered, gap-free list of segments. Parts of segments outside the axis
// range are ignored.
//
// tol is the tolerance relative to the length of the axis range. Crossings
// closer than this are merged, and values closer than this tie.
// tol ≤ 0 selects DefaultTolerance.
//
// Merge is a pure function: the same input always produces the identical
// piece table.
func Merge(axisRange probrush.Interval, curves [][]segment.Segment, tol float64) (*Curve, error) {
	if !axisRange.IsValid() {
		return nil, fmt.Errorf("%w: axis range %s", probrush.ErrInvalidDomain, axisRange)
	}
	if tol <= 0 || !probrush.IsFinite(tol) {
		tol = DefaultTolerance
	}
	xtol := tol * axisRange.Len()
	breaks := treeset.NewWith(utils.Float64Comparator, axisRange.Lo(), axisRange.Hi())
	for _, c := range curves {
		for _, s := range c {
			if d, ok := s.Domain.Clip(axisRange); ok {
				breaks.Add(d.Lo(), d.Hi())
			}
		}
	}
	m := &merger{curve: &Curve{rng: axisRange}, tol: tol, xtol: xtol}
	xs := breaks.Values()
	for k := 1; k < len(xs); k++ {
		iv := probrush.I(xs[k-1].(float64), xs[k].(float64))
		m.mergeInterval(iv, curves)
	}
	tracer().Debugf("merged %d curves on %s into %d pieces", len(curves), axisRange, len(m.curve.pieces))
	return m.curve, nil
}

type merger struct {
	curve *Curve
	tol   float64 // value tolerance
	xtol  float64 // position tolerance
}

// mergeInterval computes the maximum of all curves live on an elementary
// interval. No curve has a breakpoint within the interval.
func (m *merger) mergeInterval(iv probrush.Interval, curves [][]segment.Segment) {
	// the zero curve comes first and loses all ties
	cands := []candidate{{local: polyn.NewConstantPolynomial(0)}}
	mid := iv.Mid()
	for _, c := range curves {
		if s, ok := segmentAt(c, mid); ok {
			cands = append(cands, candidate{cubic: s.Cubic, local: s.Local(iv)})
		}
	}
	if len(cands) == 1 {
		m.emit(iv, segment.Cubic{})
		return
	}
	utol := m.xtol / iv.Len()
	var splits []float64
	for i := range cands {
		for j := i + 1; j < len(cands); j++ {
			// local coefficients are of the order of a certainty, so Zap is safe
			d, _ := cands[j].local.Subtract(cands[i].local, false).Zap().Cubic() // degree ≤ 3
			splits = append(splits, probrush.UnitRoots(d[0], d[1], d[2], d[3], utol)...)
		}
	}
	sort.Float64s(splits)
	u0, lo := 0.0, iv.Lo()
	for k := 0; k <= len(splits); k++ {
		u1, hi := 1.0, iv.Hi()
		if k < len(splits) {
			u1 = splits[k]
			if u1-u0 <= utol {
				continue
			}
			hi = iv.Lerp(u1)
		}
		w := m.winner(cands, (u0+u1)/2)
		m.emit(probrush.I(lo, hi), cands[w].cubic)
		u0, lo = u1, hi
	}
}

// winner returns the index of the candidate with the largest value at u.
// Values within tolerance tie, and ties go to the later candidate.
func (m *merger) winner(cands []candidate, u float64) int {
	w, wv := 0, cands[0].at(u)
	for i := 1; i < len(cands); i++ {
		if v := cands[i].at(u); v >= wv-m.tol {
			w, wv = i, max(v, wv)
		}
	}
	return w
}

// emit appends a piece, fusing it with its predecessor if both share the
// same cubic.
func (m *merger) emit(d probrush.Interval, q segment.Cubic) {
	if d.Len() <= 0 {
		return
	}
	n := len(m.curve.pieces)
	if n > 0 && m.curve.pieces[n-1].Cubic.Equal(q) {
		m.curve.pieces[n-1].Domain[1] = d.Hi()
		return
	}
	m.curve.pieces = append(m.curve.pieces, segment.Segment{Domain: d, Cubic: q})
}

// segmentAt finds the segment of a brush curve containing x.
func segmentAt(c []segment.Segment, x float64) (segment.Segment, bool) {
	i := sort.Search(len(c), func(i int) bool { return c[i].Domain.Hi() >= x })
	if i == len(c) || !c[i].Domain.Contains(x) {
		return segment.Segment{}, false
	}
	return c[i], true
}
