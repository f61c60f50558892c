/*
Package segment builds the cubic pieces of brush curves.

A segment connects two control points (p0,c0) and (p1,c1) of a brush. With
the relative position t = (x−p0)/(p1−p0) and an easing shape, the certainty
along the segment is

	f(x) = c0 + (c1−c0)⋅shape(t)

The segment builder expands f into a cubic a⋅x³ + b⋅x² + c⋅x + d in the
native units of the axis, so evaluation never has to re-derive t.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package segment

import (
	"fmt"

	"github.com/npillmayer/probrush"
	"github.com/npillmayer/probrush/easing"
	"github.com/npillmayer/probrush/polyn"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/floats/scalar"
)

// tracer writes to trace with key 'probrush.segment'
func tracer() tracing.Trace {
	return tracing.Select("probrush.segment")
}

// Cubic holds the coefficients of a⋅x³ + b⋅x² + c⋅x + d.
type Cubic struct {
	A, B, C, D float64
}

// Eval evaluates the cubic at x (Horner).
func (q Cubic) Eval(x float64) float64 {
	return ((q.A*x+q.B)*x+q.C)*x + q.D
}

// Equal is true if all coefficients are bit-identical.
func (q Cubic) Equal(q2 Cubic) bool {
	return q == q2
}

// EqualWithin compares coefficients with an absolute tolerance.
func (q Cubic) EqualWithin(q2 Cubic, tol float64) bool {
	return scalar.EqualWithinAbs(q.A, q2.A, tol) && scalar.EqualWithinAbs(q.B, q2.B, tol) &&
		scalar.EqualWithinAbs(q.C, q2.C, tol) && scalar.EqualWithinAbs(q.D, q2.D, tol)
}

// IsZero is true for the constant-zero cubic.
func (q Cubic) IsZero() bool {
	return q == Cubic{}
}

// Polynomial converts q to a polynomial in x.
func (q Cubic) Polynomial() polyn.Polynomial {
	return polyn.FromCoefficients(q.D, q.C, q.B, q.A)
}

// Local re-expresses q on a domain in terms of the local parameter
// u = (x−lo)/(hi−lo).
func (q Cubic) Local(domain probrush.Interval) polyn.Polynomial {
	return q.Polynomial().Compose(domain.Len(), domain.Lo())
}

func (q Cubic) String() string {
	return fmt.Sprintf("%g⋅x³ + %g⋅x² + %g⋅x + %g", q.A, q.B, q.C, q.D)
}

// fromPolynomial extracts a cubic from a polynomial of degree ≤ 3.
func fromPolynomial(p polyn.Polynomial) (Cubic, error) {
	c, err := p.Cubic()
	if err != nil {
		return Cubic{}, err
	}
	return Cubic{A: c[3], B: c[2], C: c[1], D: c[0]}, nil
}

// Segment is a cubic restricted to a closed domain.
type Segment struct {
	Domain probrush.Interval
	Cubic
}

// At evaluates the segment at x. x is not checked against the domain.
func (s Segment) At(x float64) float64 {
	return s.Cubic.Eval(x)
}

func (s Segment) String() string {
	return fmt.Sprintf("%s: %s", s.Domain, s.Cubic)
}

// Constant builds a flat segment of value v over a domain.
func Constant(v float64, domain probrush.Interval) Segment {
	return Segment{Domain: domain, Cubic: Cubic{D: v}}
}

// Build creates the segment between two control points for an interpolation
// kind. p1 must lie strictly right of p0, and both certainties must be
// within [0,1].
func Build(p0, p1 probrush.Pair, kind easing.Kind) (Segment, error) {
	if !p0.IsValid() || !p1.IsValid() {
		return Segment{}, fmt.Errorf("%w: control points %v, %v", probrush.ErrInvalidDomain, p0, p1)
	}
	if p1.X() <= p0.X() {
		return Segment{}, fmt.Errorf("%w: %g ≥ %g", probrush.ErrInvalidDomain, p0.X(), p1.X())
	}
	if !probrush.IsCertainty(p0.Y()) || !probrush.IsCertainty(p1.Y()) {
		return Segment{}, fmt.Errorf("%w: %g, %g", probrush.ErrInvalidCertainty, p0.Y(), p1.Y())
	}
	if !kind.IsValid() {
		return Segment{}, fmt.Errorf("%w: %s", easing.ErrUnknownEasing, kind)
	}
	w := p1.X() - p0.X()
	f := kind.Polynomial().Compose(1/w, -p0.X()/w).Scale(p1.Y() - p0.Y())
	f = f.Add(polyn.NewConstantPolynomial(p0.Y()), false)
	q, err := fromPolynomial(f)
	if err != nil {
		return Segment{}, err
	}
	s := Segment{Domain: probrush.I(p0.X(), p1.X()), Cubic: q}
	tracer().Debugf("segment %v–%v (%s) = %s", p0, p1, kind, s)
	return s, nil
}
