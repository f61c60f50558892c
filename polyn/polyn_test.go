package polyn

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolynSimple1(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := NewConstantPolynomial(1.0)
	if p.TermCount() != 1 {
		t.Fail()
	}
}

func TestPolynSimple2(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := NewConstantPolynomial(0.5)
	p.SetTerm(1, 3)
	if p.TermCount() != 2 {
		t.Fail()
	}
	assert.Equal(t, []int{0, 1}, p.Exponents())
}

func TestPolynConstant(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := NewConstantPolynomial(0.5)
	_, isconst := p.IsConstant()
	if !isconst {
		t.Error("did not recognize constant polynomial as constant")
	}
	p.SetTerm(1, 2)
	_, isconst = p.IsConstant()
	if isconst {
		t.Error("did falsely recognize non-constant polynomial as constant")
	}
}

func TestZapPolyn(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := NewConstantPolynomial(0.5)
	p.SetTerm(1, 0.0000000005)
	p.Zap()
	_, isconst := p.IsConstant()
	if !isconst {
		t.Error("Expected polynomial to be of constant type, isn't")
	}
}

func TestPolynAdd(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(5, X{1, 1}, X{2, 2})
	t.Logf("# p  = %s\n", p.String())
	p2, _ := New(4, X{1, 6}, X{5, 4})
	t.Logf("# p2 = %s\n", p2.String())
	pr := p.Add(p2, false)
	t.Logf("# pr = %s\n", pr.String())
	if pr.GetCoeffForTerm(1) != 7.0 || pr.Degree() != 5 {
		t.Fail()
	}
}

func TestPolynSubtractCancels(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(10, X{1, 7}, X{3, 2})
	q, _ := New(4, X{1, 2}, X{3, 2})
	r := p.Subtract(q, false)
	assert.Equal(t, 1, r.Degree(), "cubic terms should cancel")
	assert.Equal(t, 6.0, r.GetConstantValue())
	assert.Equal(t, 5.0, r.GetCoeffForTerm(1))
}

func TestPolynMul(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(1, X{1, 1}) // 1 + x
	q, _ := New(-1, X{1, 1}) // -1 + x
	pr, err := p.Multiply(q, false)
	require.NoError(t, err)
	t.Logf("T pr = %s\n", pr.String())
	assert.Equal(t, -1.0, pr.GetCoeffForTerm(0))
	assert.Equal(t, 0.0, pr.GetCoeffForTerm(1))
	assert.Equal(t, 1.0, pr.GetCoeffForTerm(2))
	assert.Equal(t, 1.0, p.GetCoeffForTerm(1), "operand must not change")
	big, _ := New(0, X{1, math.MaxFloat64})
	_, err = big.Multiply(big, false)
	assert.True(t, errors.Is(err, ErrNonFinite))
}

func TestPolynMulDestructive(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(6, X{1, 4}, X{2, 2})
	_, err := p.Multiply(NewConstantPolynomial(-2.0), true)
	require.NoError(t, err)
	if p.GetCoeffForTerm(1) != -8.0 {
		t.Errorf("expected destructive multiply to change p, p = %s", p)
	}
}

func TestPolynCompose(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// p(t) = 3t² - 2t³, t = (x - 30) / 10
	p := FromCoefficients(0, 0, 3, -2)
	q := p.Compose(0.1, -3)
	for _, x := range []float64{30, 32.5, 35, 40} {
		tt := (x - 30) / 10
		assert.InDelta(t, p.Eval(tt), q.Eval(x), 1e-9, "x = %g", x)
	}
	c, err := q.Cubic()
	require.NoError(t, err)
	assert.InDelta(t, -0.002, c[3], 1e-12)
}

func TestPolynCubicDegree(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(1, X{4, 1})
	_, err := p.Cubic()
	assert.True(t, errors.Is(err, ErrDegreeTooHigh))
	_, err = New(1, X{0, 2})
	assert.Error(t, err, "exponent 0 is not a term")
}

func TestPolynString(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(1, X{1, -1}, X{3, 2})
	assert.Equal(t, "1 - x + 2x^3", p.String())
	assert.Equal(t, "-u^2", FromCoefficients(0, 0, -1).TraceString("u"))
	assert.Equal(t, "0", NewConstantPolynomial(0).String())
}
