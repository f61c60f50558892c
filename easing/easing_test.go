package easing

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range Kinds {
		if k.Shape(0) != 0 || k.Shape(1) != 1 {
			t.Errorf("shape %s does not map 0→0 and 1→1", k)
		}
	}
}

func TestShapeMatchesPolynomial(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range Kinds {
		p := k.Polynomial()
		for i := 0; i <= 10; i++ {
			u := float64(i) / 10
			assert.InDelta(t, k.Shape(u), p.Eval(u), 1e-12, "%s at %g", k, u)
		}
	}
}

func TestEaseInOutSymmetric(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for i := 0; i <= 20; i++ {
		u := float64(i) / 20
		assert.InDelta(t, 1.0, EaseInOut.Shape(u)+EaseInOut.Shape(1-u), 1e-12)
	}
}

func TestParseKind(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range Kinds {
		k2, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, k2)
	}
	k, err := ParseKind("Ease-In-Out")
	assert.NoError(t, err)
	assert.Equal(t, EaseInOut, k)
	_, err = ParseKind("bounce")
	assert.True(t, errors.Is(err, ErrUnknownEasing))
}

func TestKindJSON(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := json.Marshal(map[string]Kind{"a": EaseOut})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"out"}`, string(b))
	var k Kind
	assert.Error(t, json.Unmarshal([]byte(`"wobble"`), &k))
	_, err = json.Marshal(Kind(9))
	assert.Error(t, err)
}
