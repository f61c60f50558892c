package spline

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/probrush"
	"github.com/npillmayer/probrush/brush"
	"github.com/npillmayer/probrush/easing"
	"github.com/npillmayer/probrush/segment"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var axis = probrush.I(0, 100)

func mkBrush(t *testing.T, kind easing.Kind, main int, xy ...float64) *brush.Brush {
	points := make([]probrush.Pair, len(xy)/2)
	for i := range points {
		points[i] = probrush.P(xy[2*i], xy[2*i+1])
	}
	b, err := brush.New(points, main, kind)
	require.NoError(t, err)
	return b
}

func curvesOf(brushes ...*brush.Brush) [][]segment.Segment {
	cs := make([][]segment.Segment, len(brushes))
	for i, b := range brushes {
		cs[i] = b.Curve()
	}
	return cs
}

func TestMergeNoBrush(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, err := Zero(axis)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, axis, c.Pieces()[0].Domain)
	assert.True(t, c.Pieces()[0].IsZero())
	_, err = Merge(probrush.I(5, 5), nil, 0)
	assert.True(t, errors.Is(err, probrush.ErrInvalidDomain))
}

func TestMergeSingleBrush(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, kind := range easing.Kinds {
		b := mkBrush(t, kind, 1, 30, 0, 40, 1, 60, 1, 70, 0)
		c, err := Merge(axis, curvesOf(b), 0)
		require.NoError(t, err)
		t.Logf("%s: %s", kind, c)
		require.Equal(t, 5, c.Len(), kind.String())
		for _, x := range []float64{0, 10, 29.99, 70.01, 85, 100} {
			v, err := c.At(x)
			require.NoError(t, err)
			assert.Equal(t, 0.0, v, "%s at %g", kind, x)
		}
		for x := 40.0; x <= 60; x += 2.5 {
			v, _ := c.At(x)
			assert.InDelta(t, 1.0, v, 1e-9, "%s at %g", kind, x)
		}
		prevUp, prevDown := -1.0, 2.0
		for i := 0; i <= 100; i++ {
			up, _ := c.At(30 + float64(i)/10)
			down, _ := c.At(60 + float64(i)/10)
			assert.GreaterOrEqual(t, up, prevUp-1e-12)
			assert.LessOrEqual(t, down, prevDown+1e-12)
			assert.InDelta(t, b.At(30+float64(i)/10), up, 1e-9)
			prevUp, prevDown = up, down
		}
	}
}

func TestMergeIsMaximum(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b1 := mkBrush(t, easing.EaseInOut, 1, 20, 0, 35, 0.9, 50, 0.9, 65, 0)
	b2 := mkBrush(t, easing.EaseOut, 0, 40, 0.6, 55, 0.6, 80, 0.1)
	b3 := mkBrush(t, easing.EaseIn, 1, 45, 0.2, 50, 1, 52, 1, 90, 0)
	c, err := Merge(axis, curvesOf(b1, b2, b3), 0)
	require.NoError(t, err)
	t.Logf("merged: %s", c)
	rnd := rand.New(rand.NewSource(4711))
	for range 1000 {
		x := 15 + rnd.Float64()*80
		want := math.Max(b1.At(x), math.Max(b2.At(x), b3.At(x)))
		got, err := c.At(x)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-6, "at x = %g", x)
	}
	pieces := c.Pieces()
	for i := 1; i < len(pieces); i++ {
		assert.Equal(t, pieces[i-1].Domain.Hi(), pieces[i].Domain.Lo(), "pieces must be contiguous")
		assert.False(t, pieces[i-1].Cubic.Equal(pieces[i].Cubic), "equal neighbours must be fused")
	}
	assert.Equal(t, axis.Lo(), pieces[0].Domain.Lo())
	assert.Equal(t, axis.Hi(), pieces[len(pieces)-1].Domain.Hi())
}

func TestMergeIdempotent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b1 := mkBrush(t, easing.EaseInOut, 1, 20, 0, 35, 0.9, 50, 0.9, 65, 0)
	b2 := mkBrush(t, easing.Linear, 0, 40, 0.6, 55, 0.6, 80, 0.1)
	c1, err := Merge(axis, curvesOf(b1, b2), 0)
	require.NoError(t, err)
	c2, err := Merge(axis, curvesOf(b1, b2), 0)
	require.NoError(t, err)
	assert.Equal(t, c1.Pieces(), c2.Pieces())
	if diff := cmp.Diff(c1.Pieces(), c2.Pieces(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("rebuild differs (-first +second):\n%s", diff)
	}
	assert.True(t, c1.Equal(c2, 1e-12))
}

func TestMergeTieGoesToLaterBrush(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	flat, err := segment.Build(probrush.P(20, 0.5), probrush.P(40, 0.5), easing.Linear)
	require.NoError(t, err)
	tilted, err := segment.Build(probrush.P(20, 0.5-1e-8), probrush.P(40, 0.5+1e-8), easing.Linear)
	require.NoError(t, err)
	for _, order := range [][]segment.Segment{{flat, tilted}, {tilted, flat}} {
		c, err := Merge(axis, [][]segment.Segment{{order[0]}, {order[1]}}, 0)
		require.NoError(t, err)
		require.Equal(t, 3, c.Len(), "tie must not split the piece: %s", c)
		assert.Equal(t, order[1].Cubic, c.Pieces()[1].Cubic)
	}
}

func TestMergeClipsToAxis(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := mkBrush(t, easing.Linear, 0, -50, 1, 150, 1)
	c, err := Merge(axis, curvesOf(b), 0)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, axis, c.Range())
	v, _ := c.At(0)
	assert.InDelta(t, 1.0, v, 1e-12)
}

func TestCurveAtOutOfDomain(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, _ := Zero(axis)
	_, err := c.At(100.5)
	assert.True(t, errors.Is(err, probrush.ErrOutOfDomain))
	_, err = c.At(math.NaN())
	assert.True(t, errors.Is(err, probrush.ErrOutOfDomain))
}

func TestResample(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := mkBrush(t, easing.EaseOut, 1, 0, 0.3, 40, 1, 60, 1, 100, 0.2)
	c, err := Merge(axis, curvesOf(b), 0)
	require.NoError(t, err)
	_, err = c.Resample(1)
	assert.True(t, errors.Is(err, probrush.ErrInvalidSampleCount))
	s, err := c.Resample(2)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, s[0], 1e-9)
	assert.InDelta(t, 0.2, s[1], 1e-9)
	s9, err := c.Resample(9)
	require.NoError(t, err)
	s17, err := c.Resample(17)
	require.NoError(t, err)
	for i, v := range s9 {
		assert.InDelta(t, v, s17[2*i], 1e-9, "sample %d", i)
		want, _ := c.At(float64(i) * 12.5)
		assert.InDelta(t, want, v, 1e-9, "sample %d", i)
	}
}

func TestCurveAtBrushEnds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b := mkBrush(t, easing.Linear, 0, 25, 0.5, 75, 0.5)
	c, err := Merge(axis, curvesOf(b), 0)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	for _, x := range []float64{25, 75} {
		v, err := c.At(x)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, v, 1e-12, "x = %g", x)
	}
	xs, err := Positions(axis, 5)
	require.NoError(t, err)
	s, err := c.Resample(5)
	require.NoError(t, err)
	for i, x := range xs {
		want, _ := c.At(x)
		assert.InDelta(t, want, s[i], 1e-12, "x = %g", x)
		assert.InDelta(t, b.At(x), s[i], 1e-12, "x = %g", x)
	}
	assert.Equal(t, []float64{0, 0.5, 0.5, 0.5, 0}, s)
}

func TestPositions(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	xs, err := Positions(probrush.I(0.1, 0.7), 7)
	require.NoError(t, err)
	assert.Len(t, xs, 7)
	assert.Equal(t, 0.1, xs[0])
	assert.Equal(t, 0.7, xs[6])
	_, err = Positions(axis, 1)
	assert.True(t, errors.Is(err, probrush.ErrInvalidSampleCount))
}
