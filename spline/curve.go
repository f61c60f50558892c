package spline

import (
	"bytes"
	"fmt"
	"slices"
	"sort"

	"github.com/npillmayer/probrush"
	"github.com/npillmayer/probrush/segment"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Curve is a merged certainty curve of an axis. Pieces are ordered,
// contiguous and cover the axis range. A Curve is never changed after
// construction and may be shared between goroutines.
type Curve struct {
	rng    probrush.Interval
	pieces []segment.Segment
}

// Zero returns the curve which is 0 over the whole axis range.
func Zero(axisRange probrush.Interval) (*Curve, error) {
	return Merge(axisRange, nil, 0)
}

// Range returns the axis range the curve spans.
func (c *Curve) Range() probrush.Interval { return c.rng }

// Len returns the number of pieces.
func (c *Curve) Len() int { return len(c.pieces) }

// Pieces returns a copy of the piece table.
func (c *Curve) Pieces() []segment.Segment { return slices.Clone(c.pieces) }

// pieceAt finds the index of the last piece starting at or before x.
func (c *Curve) pieceAt(x float64) int {
	i := sort.Search(len(c.pieces), func(i int) bool { return c.pieces[i].Domain.Lo() > x })
	return max(i-1, 0)
}

// At evaluates the curve at x, clamped to [0,1]. It is an error to evaluate
// the curve outside of its axis range.
func (c *Curve) At(x float64) (float64, error) {
	if !c.rng.Contains(x) { // false for NaN, too
		return 0, fmt.Errorf("%w: %g ∉ %s", probrush.ErrOutOfDomain, x, c.rng)
	}
	return c.valueAt(c.pieceAt(x), x), nil
}

// valueAt evaluates piece k at x. Where x is a boundary shared with a
// neighbour piece, the larger of both values is taken, as brush domains are
// closed at both ends.
func (c *Curve) valueAt(k int, x float64) float64 {
	v := c.pieces[k].At(x)
	if k > 0 && x == c.pieces[k].Domain.Lo() {
		v = max(v, c.pieces[k-1].At(x))
	}
	if k < len(c.pieces)-1 && x == c.pieces[k].Domain.Hi() {
		v = max(v, c.pieces[k+1].At(x))
	}
	return probrush.Clamp01(v)
}

// Positions returns n evenly spaced positions over rng, the first and last
// being exactly the ends of rng.
func Positions(rng probrush.Interval, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: n = %d", probrush.ErrInvalidSampleCount, n)
	}
	xs := floats.Span(make([]float64, n), rng.Lo(), rng.Hi())
	xs[0], xs[n-1] = rng.Lo(), rng.Hi()
	return xs, nil
}

// Resample evaluates the curve at n evenly spaced positions, the first and
// last being the ends of the axis range.
func (c *Curve) Resample(n int) ([]float64, error) {
	xs, err := Positions(c.rng, n)
	if err != nil {
		return nil, err
	}
	samples := make([]float64, n)
	k := c.pieceAt(xs[0])
	for i, x := range xs {
		x = min(max(x, c.rng.Lo()), c.rng.Hi())
		for k < len(c.pieces)-1 && c.pieces[k].Domain.Hi() < x {
			k++
		}
		samples[i] = c.valueAt(k, x)
	}
	return samples, nil
}

// Equal compares two curves, with domains and coefficients compared within
// an absolute tolerance.
func (c *Curve) Equal(other *Curve, tol float64) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.pieces) != len(other.pieces) {
		return false
	}
	if !scalar.EqualWithinAbs(c.rng.Lo(), other.rng.Lo(), tol) ||
		!scalar.EqualWithinAbs(c.rng.Hi(), other.rng.Hi(), tol) {
		return false
	}
	for i, p := range c.pieces {
		q := other.pieces[i]
		if !scalar.EqualWithinAbs(p.Domain.Lo(), q.Domain.Lo(), tol) ||
			!scalar.EqualWithinAbs(p.Domain.Hi(), q.Domain.Hi(), tol) ||
			!p.Cubic.EqualWithin(q.Cubic, tol) {
			return false
		}
	}
	return true
}

func (c *Curve) String() string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("curve%s{", c.rng))
	for i, p := range c.pieces {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(p.String())
	}
	buf.WriteString("}")
	return buf.String()
}
