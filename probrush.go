/*
Package probrush implements the numeric core of probabilistic brushing for
parallel-coordinates plots: control points, intervals, tolerance handling and
root finding shared by the sub-packages.

A brush on an axis is not a binary in/out selection but a certainty curve over
the axis' value domain. Sub-packages build the pieces of this engine:

	polyn    – polynomials in one variable
	easing   – the four shape functions of brush segments
	segment  – cubic segments between two control points
	polygon  – polygons and their union, for brush footprints
	brush    – control point editing and brush curves
	spline   – merging all brushes of an axis into one certainty curve
	engine   – labels, axes, cached curves and selection probabilities

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package probrush

import (
	"encoding/json"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'probrush'
func tracer() tracing.Trace {
	return tracing.Select("probrush")
}

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// Clamp01 clamps n to [0,1]. NaN is mapped to 0.
func Clamp01(n float64) float64 {
	if math.IsNaN(n) || n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// IsFinite is a predicate: is n neither NaN nor ±Inf?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// IsCertainty is a predicate: is n a valid certainty in [0,1]?
func IsCertainty(n float64) bool {
	return IsFinite(n) && n >= 0 && n <= 1
}

// === Pair Data Type ========================================================

// Pair is a control point of a brush: X is the position in the axis' native
// value domain, Y is the certainty at that position.
type Pair complex128

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the position of a control point.
func (p Pair) X() float64 {
	return real(p.C())
}

// Y is the certainty of a control point.
func (p Pair) Y() float64 {
	return imag(p.C())
}

// IsValid is a predicate: are both parts of p finite numbers?
func (p Pair) IsValid() bool {
	return !cmplx.IsNaN(p.C()) && !cmplx.IsInf(p.C())
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	T := Translation(v)
	return T.Transform(p)
}

// MarshalJSON writes a pair as [position, certainty].
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X(), p.Y()})
}

// UnmarshalJSON reads a pair from [position, certainty].
func (p *Pair) UnmarshalJSON(b []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(b, &xy); err != nil {
		return fmt.Errorf("control point must be [position, certainty]: %w", err)
	}
	*p = P(xy[0], xy[1])
	return nil
}

// === Intervals =============================================================

// Interval is a closed interval [lo, hi] on an axis.
type Interval [2]float64

// I is a quick notation for constructing an interval.
func I(lo, hi float64) Interval {
	return Interval{lo, hi}
}

// Lo is the lower bound.
func (iv Interval) Lo() float64 { return iv[0] }

// Hi is the upper bound.
func (iv Interval) Hi() float64 { return iv[1] }

// Len is the length hi - lo.
func (iv Interval) Len() float64 { return iv[1] - iv[0] }

// Mid is the midpoint.
func (iv Interval) Mid() float64 { return iv[0] + (iv[1]-iv[0])/2 }

// IsValid is a predicate: lo < hi, both finite.
func (iv Interval) IsValid() bool {
	return IsFinite(iv[0]) && IsFinite(iv[1]) && iv[0] < iv[1]
}

// Contains checks lo ≤ x ≤ hi.
func (iv Interval) Contains(x float64) bool {
	return x >= iv[0] && x <= iv[1]
}

// Overlaps checks if two closed intervals share at least one point.
func (iv Interval) Overlaps(other Interval) bool {
	return iv[0] <= other[1] && other[0] <= iv[1]
}

// Clip returns the intersection of iv and other. The flag is false if the
// intersection has no interior.
func (iv Interval) Clip(other Interval) (Interval, bool) {
	lo, hi := math.Max(iv[0], other[0]), math.Min(iv[1], other[1])
	if lo >= hi {
		return Interval{}, false
	}
	return Interval{lo, hi}, true
}

// Lerp maps t in [0,1] onto the interval.
func (iv Interval) Lerp(t float64) float64 {
	return iv[0] + t*(iv[1]-iv[0])
}

// InvLerp maps x on the interval to its relative position t.
func (iv Interval) InvLerp(x float64) float64 {
	return (x - iv[0]) / (iv[1] - iv[0])
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g,%g]", iv[0], iv[1])
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming control points.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 9)
	return m
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	return s
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	p1 := vec1[0] * vec2[0]
	p2 := vec1[1] * vec2[1]
	p3 := vec1[2] * vec2[2]
	return p1 + p2 + p3
}

// Transform a control point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	v := []float64{p.X(), p.Y(), 1.0}
	return P(dotProd(m.row(0), v), dotProd(m.row(1), v))
}
