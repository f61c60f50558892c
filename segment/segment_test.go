package segment

import (
	"errors"
	"testing"

	"github.com/npillmayer/probrush"
	"github.com/npillmayer/probrush/easing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pairs := [][2]probrush.Pair{
		{probrush.P(30, 0), probrush.P(40, 1)},
		{probrush.P(60, 1), probrush.P(70, 0)},
		{probrush.P(-5, 0.25), probrush.P(5, 0.75)},
		{probrush.P(100, 0.8), probrush.P(102, 0.1)},
	}
	for _, pp := range pairs {
		for _, k := range easing.Kinds {
			s, err := Build(pp[0], pp[1], k)
			require.NoError(t, err)
			assert.InDelta(t, pp[0].Y(), s.At(pp[0].X()), 1e-9, "%s at start of %v", k, s)
			assert.InDelta(t, pp[1].Y(), s.At(pp[1].X()), 1e-9, "%s at end of %v", k, s)
		}
	}
}

func TestBuildMonotonic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range []easing.Kind{easing.Linear, easing.EaseIn, easing.EaseOut} {
		up, err := Build(probrush.P(30, 0), probrush.P(40, 1), k)
		require.NoError(t, err)
		down, err := Build(probrush.P(60, 1), probrush.P(70, 0.2), k)
		require.NoError(t, err)
		for i := 1; i <= 100; i++ {
			x0, x1 := 30+float64(i-1)/10, 30+float64(i)/10
			if up.At(x1) < up.At(x0)-1e-12 {
				t.Errorf("%s not increasing at %g", k, x1)
			}
			if down.At(x1+30) > down.At(x0+30)+1e-12 {
				t.Errorf("%s not decreasing at %g", k, x1+30)
			}
		}
	}
}

func TestBuildEaseInOutSymmetric(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := Build(probrush.P(10, 0.2), probrush.P(30, 0.8), easing.EaseInOut)
	require.NoError(t, err)
	mid := s.Domain.Mid()
	assert.InDelta(t, 0.5, s.At(mid), 1e-9)
	for i := 0; i <= 10; i++ {
		d := float64(i)
		// point symmetry about (mid, (c0+c1)/2)
		assert.InDelta(t, 1.0, s.At(mid-d)+s.At(mid+d), 1e-9)
	}
}

func TestBuildErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Build(probrush.P(40, 0), probrush.P(40, 1), easing.Linear)
	assert.True(t, errors.Is(err, probrush.ErrInvalidDomain))
	_, err = Build(probrush.P(50, 0), probrush.P(40, 1), easing.Linear)
	assert.True(t, errors.Is(err, probrush.ErrInvalidDomain))
	_, err = Build(probrush.P(30, 0), probrush.P(40, 1.5), easing.Linear)
	assert.True(t, errors.Is(err, probrush.ErrInvalidCertainty))
	_, err = Build(probrush.P(30, -0.1), probrush.P(40, 1), easing.Linear)
	assert.True(t, errors.Is(err, probrush.ErrInvalidCertainty))
	_, err = Build(probrush.P(30, 0), probrush.P(40, 1), easing.Kind(7))
	assert.True(t, errors.Is(err, easing.ErrUnknownEasing))
}

func TestCubicLocal(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := Build(probrush.P(30, 0), probrush.P(40, 1), easing.EaseInOut)
	require.NoError(t, err)
	c, err := s.Local(s.Domain).Cubic()
	require.NoError(t, err)
	// in local terms, the segment is the easing shape itself
	assert.InDelta(t, 0.0, c[0], 1e-9)
	assert.InDelta(t, 0.0, c[1], 1e-9)
	assert.InDelta(t, 3.0, c[2], 1e-9)
	assert.InDelta(t, -2.0, c[3], 1e-9)
	flat := Constant(0.5, probrush.I(0, 100))
	local := flat.Local(flat.Domain)
	assert.Equal(t, 0, local.Degree())
	assert.Equal(t, 0.5, local.Eval(0.7))
	assert.True(t, Constant(0, flat.Domain).IsZero())
}
