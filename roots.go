package probrush

import (
	"math"
	"sort"

	"honnef.co/go/curve"
)

// coeffEpsilon is the magnitude below which a polynomial coefficient in the
// unit domain is treated as zero. Coefficients there are of the order of a
// certainty, i.e. ≤ 1, so anything smaller is round-off.
const coeffEpsilon = 1e-12

// UnitRoots finds the real roots of
//
//	c0 + c1⋅u + c2⋅u² + c3⋅u³ = 0
//
// lying strictly inside (0,1), sorted ascending. Roots closer than tol to each
// other or to the interval ends are dropped or merged. A polynomial which is
// constant on (0,1) has no roots, even if it is constant zero.
func UnitRoots(c0, c1, c2, c3 float64, tol float64) []float64 {
	c := [4]float64{c0, c1, c2, c3}
	for i := range c {
		if math.Abs(c[i]) <= coeffEpsilon {
			c[i] = 0
		}
	}
	var cand []float64
	switch {
	case c[3] != 0:
		r, n := curve.SolveCubic(c[0], c[1], c[2], c[3])
		cand = r[:n]
	case c[2] != 0:
		r, n := curve.SolveQuadratic(c[0], c[1], c[2])
		cand = r[:n]
	case c[1] != 0:
		cand = []float64{-c[0] / c[1]}
	default:
		return nil
	}
	roots := make([]float64, 0, len(cand))
	for _, u := range cand {
		if !IsFinite(u) {
			continue
		}
		u = polish(c, u)
		if u <= tol || u >= 1-tol {
			continue
		}
		roots = append(roots, u)
	}
	sort.Float64s(roots)
	uniq := roots[:0]
	for _, u := range roots {
		if len(uniq) > 0 && u-uniq[len(uniq)-1] <= tol {
			continue
		}
		uniq = append(uniq, u)
	}
	if len(uniq) > 0 {
		tracer().Debugf("unit roots of %v: %v", c, uniq)
	}
	return uniq
}

// polish refines a root with at most 3 Newton steps, keeping a step only if it
// does not increase the residual.
func polish(c [4]float64, u float64) float64 {
	f := evalAsc(c, u)
	for range 3 {
		if f == 0 {
			break
		}
		d := c[1] + u*(2*c[2]+u*3*c[3])
		if d == 0 {
			break
		}
		next := u - f/d
		fnext := evalAsc(c, next)
		if math.Abs(fnext) >= math.Abs(f) {
			break
		}
		u, f = next, fnext
	}
	return u
}

func evalAsc(c [4]float64, u float64) float64 {
	return c[0] + u*(c[1]+u*(c[2]+u*c[3]))
}
