// Package polyn is for arithmetic with polynomials in one variable.
/*
BSD 3-Clause License

Copyright (c) 2017–21, Norbert Pillmayer.

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package polyn

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/probrush"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the polynomial tracer.
func T() tracing.Trace {
	return tracing.Select("probrush.polyn")
}

var (
	// ErrDegreeTooHigh indicates a polynomial which cannot be represented as a cubic.
	ErrDegreeTooHigh = errors.New("degree exceeds 3")
	// ErrNonFinite indicates an arithmetic result which overflowed or is NaN.
	ErrNonFinite = errors.New("non-finite coefficient")
)

// X is a helper for quick construction of polynomials.
// It denotes a term
//
//	C⋅x^I
//
// I > 0
type X struct {
	I int     // exponent of x
	C float64 // coeffiencet
}

// New creates a polynomial, given the term coefficients and exponents
//
// Use it as
//
//	polyn.New(8, polyn.X{2,5}, polyn.X{1,2/3} )
//
// to get
//
//	P(x) = 8 + 2/3x + 5x²
func New(c float64, tms ...X) (Polynomial, error) { // construct a polynomial
	p := NewConstantPolynomial(c)
	var err error
	for _, t := range tms {
		if t.I < 1 {
			err = fmt.Errorf("term exponent must be at least 1, skipping it")
		} else {
			p.SetTerm(t.I, t.C)
		}
	}
	return p, err
}

// Polynomial is a type for polynomials in one variable
//
//	a.0 + a.1 x + a.2 x² + ... a.n xⁿ .
//
// We store the coefficients only, keyed by exponent. Index 0 is the constant
// term. Coefficients live in a TreeMap (sorted map) to iterate them in order
// of ascending exponent.
type Polynomial struct {
	Terms *treemap.Map
}

// NewConstantPolynomial creates a Polynomial consisting of just a constant term.
func NewConstantPolynomial(c float64) Polynomial {
	p := Polynomial{}
	p.checkTerms()
	p.Terms.Put(0, c) // initialize with constant term (at position 0)
	return p
}

// FromCoefficients creates a polynomial from coefficients in ascending order
// of exponents, i.e. FromCoefficients(d, c, b, a) is a⋅x³ + b⋅x² + c⋅x + d.
func FromCoefficients(coeffs ...float64) Polynomial {
	p := NewConstantPolynomial(0)
	for i, c := range coeffs {
		if c != 0 {
			p.SetTerm(i, c)
		}
	}
	return p
}

func (p *Polynomial) checkTerms() {
	if p.Terms == nil {
		p.Terms = treemap.NewWithIntComparator()
	}
}

// SetTerm sets the coefficient for a term a.i⋅x^i within a Polynomial.
// For i=0, sets the constant term.
func (p Polynomial) SetTerm(i int, scale float64) Polynomial {
	p.checkTerms()
	p.Terms.Put(i, scale)
	return p
}

// CopyPolynomial makes a copy of a numeric Polynomial.
func (p Polynomial) CopyPolynomial() Polynomial {
	p1 := NewConstantPolynomial(0.0) // will become our return value
	if p.Terms == nil {
		return p1
	}
	it := p.Terms.Iterator()
	for it.Next() { // copy all terms of p into p1
		pos := it.Key().(int)
		scale := it.Value().(float64)
		p1.SetTerm(pos, scale)
	}
	return p1
}

// Internal method: add or subtract 2 polynomials. The high level methods
// are based on this one.
// Flag doAdd signals addition or subtraction.
func (p Polynomial) addOrSub(p2 Polynomial, doAdd bool, destructive bool) Polynomial {
	p.checkTerms()
	p2.checkTerms()
	p1 := p.CopyPolynomial() // will become our return value
	it2 := p2.Terms.Iterator()
	for it2.Next() { // inspect all terms of p2
		pos2 := it2.Key().(int)
		scale2 := it2.Value().(float64)
		if scale2 != 0 {
			scale1 := p1.GetCoeffForTerm(pos2)
			if doAdd {
				scale1 = scale1 + scale2 // if present, add a1 + a2
			} else {
				scale1 = scale1 - scale2 // if present, subtract a1 - a2
			}
			p1.SetTerm(pos2, scale1) // we operate on the copy p1
		}
	}
	p1 = p1.prune()
	if destructive {
		p.assign(p1)
	}
	return p1
}

// Add adds two Polynomials. Returns a new Polynomial, except when the
// 'destructive'-flag is set (then p is altered).
func (p Polynomial) Add(p2 Polynomial, destructive bool) Polynomial {
	return p.addOrSub(p2, true, destructive)
}

// Subtract subtracts two Polynomials. Returns a new Polynomial, except when the
// 'destructive'-flag is set (then p is altered).
func (p Polynomial) Subtract(p2 Polynomial, destructive bool) Polynomial {
	return p.addOrSub(p2, false, destructive)
}

// Multiply multiplies two Polynomials. Neither operand is changed, except p
// when the 'destructive'-flag is set.
func (p Polynomial) Multiply(p2 Polynomial, destructive bool) (Polynomial, error) {
	p.checkTerms()
	p2.checkTerms()
	p1 := NewConstantPolynomial(0.0)
	it := p.Terms.Iterator()
	for it.Next() {
		i, a := it.Key().(int), it.Value().(float64)
		it2 := p2.Terms.Iterator()
		for it2.Next() {
			j, b := it2.Key().(int), it2.Value().(float64)
			p1.SetTerm(i+j, p1.GetCoeffForTerm(i+j)+a*b)
		}
	}
	if err := p1.checkFinite(); err != nil {
		return p, err
	}
	p1 = p1.prune()
	if destructive {
		p.assign(p1)
	}
	return p1, nil
}

// Scale multiplies every coefficient by c. Returns a new polynomial.
func (p Polynomial) Scale(c float64) Polynomial {
	p1 := p.CopyPolynomial()
	it := p1.Terms.Iterator()
	for it.Next() {
		p1.Terms.Put(it.Key(), it.Value().(float64)*c)
	}
	return p1.prune()
}

// Compose substitutes x by the affine expression (alpha⋅x + beta), i.e. it
// returns q with q(x) = p(alpha⋅x + beta). Coefficients are expanded by
// Horner's scheme. p is left untouched.
func (p Polynomial) Compose(alpha, beta float64) Polynomial {
	lin := FromCoefficients(beta, alpha)
	q := NewConstantPolynomial(0)
	for i := p.Degree(); i >= 0; i-- {
		q, _ = q.Multiply(lin, false) // product of finite polynomials of low degree
		q = q.Add(NewConstantPolynomial(p.GetCoeffForTerm(i)), false)
	}
	T().Debugf("%s ∘ (%gx + %g) = %s", p, alpha, beta, q)
	return q
}

// Eval evaluates p at x.
func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for i := p.Degree(); i >= 0; i-- {
		y = y*x + p.GetCoeffForTerm(i)
	}
	return y
}

// Degree returns the highest exponent with a non-zero coefficient. The zero
// polynomial has degree 0.
func (p Polynomial) Degree() int {
	if p.Terms == nil {
		return 0
	}
	keys := p.Terms.Keys()
	for k := len(keys) - 1; k >= 0; k-- {
		i := keys[k].(int)
		if p.GetCoeffForTerm(i) != 0 {
			return i
		}
	}
	return 0
}

// Cubic returns the coefficients (a.0, a.1, a.2, a.3) of p, in ascending order
// of exponents. It is an error if p has a degree above 3.
func (p Polynomial) Cubic() ([4]float64, error) {
	var c [4]float64
	if d := p.Degree(); d > 3 {
		return c, fmt.Errorf("%w: %s", ErrDegreeTooHigh, p.String())
	}
	for i := range c {
		c[i] = p.GetCoeffForTerm(i)
	}
	return c, nil
}

// assign overwrites the terms of p with those of p1. As Terms is a
// reference, this is visible to every copy of p.
func (p Polynomial) assign(p1 Polynomial) {
	p.Terms.Clear()
	it := p1.Terms.Iterator()
	for it.Next() {
		p.Terms.Put(it.Key(), it.Value())
	}
}

// Remove terms with coefficient exactly 0, keeping the constant term.
func (p Polynomial) prune() Polynomial {
	p.checkTerms()
	for _, pos := range p.Terms.Keys() {
		if i := pos.(int); i != 0 && p.GetCoeffForTerm(i) == 0 {
			p.Terms.Remove(pos)
		}
	}
	if _, ok := p.Terms.Get(0); !ok {
		p.Terms.Put(0, 0.0)
	}
	return p
}

func (p Polynomial) checkFinite() error {
	it := p.Terms.Iterator()
	for it.Next() {
		if c := it.Value().(float64); math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w at term %d", ErrNonFinite, it.Key().(int))
		}
	}
	return nil
}

// Zap eliminates all terms with coefficient=0 from a polynomial, where
// every |a.i| ≤ ε counts as zero.
//
// Zap must only be used for polynomials whose coefficients are of
// the order of 1. A polynomial in axis coordinates may have legitimate
// coefficients far below ε.
func (p Polynomial) Zap() Polynomial {
	p.checkTerms()
	positions := p.Terms.Keys()     // all non-Zero terms of p
	for _, pos := range positions { // inspect terms
		if scale, _ := p.Terms.Get(pos); probrush.Is0(scale.(float64)) {
			p.Terms.Remove(pos) // may lose constant term c
		}
	}
	if _, ok := p.Terms.Get(0); !ok {
		p.Terms.Put(0, 0.0) // set p = 0: re-introduce c
	}
	return p
}

// IsConstant checks wether
// a Polynomial is a constant, i.e. p = { c }? Returns the constant and a flag.
func (p Polynomial) IsConstant() (float64, bool) {
	return p.GetCoeffForTerm(0), p.Degree() == 0
}

// IsValid checks if this a correctly initialized polynomial.
func (p Polynomial) IsValid() bool {
	return (p.Terms != nil)
}

// GetConstantValue returns the constant term of a polynomial.
func (p Polynomial) GetConstantValue() float64 {
	return p.GetCoeffForTerm(0)
}

// GetCoeffForTerm gets the coefficient for term # i.
//
// Example:
//
//	p = x + 3x²
//
// ⇒
//
//	coeff(2) = 3
func (p Polynomial) GetCoeffForTerm(i int) float64 {
	if p.Terms == nil {
		return 0.0
	}
	if sc, found := p.Terms.Get(i); found {
		return sc.(float64)
	}
	return 0.0
}

// TermCount returns the number of stored terms, including the constant term.
func (p Polynomial) TermCount() int {
	if p.Terms == nil {
		return 0
	}
	return p.Terms.Size()
}

// Exponents returns the exponents of all stored terms in ascending order.
func (p Polynomial) Exponents() []int {
	if p.Terms == nil {
		return nil
	}
	keys := p.Terms.Keys()
	exps := make([]int, len(keys))
	for k, key := range keys {
		exps[k] = key.(int)
	}
	return exps
}

// String creates a readable string representation for a Polynomial,
// using 'x' as the variable.
func (p Polynomial) String() string {
	return p.TraceString("x")
}

// TraceString creates a string representation for a Polynomial, with a
// given variable name. Coefficients are rounded to ε.
func (p Polynomial) TraceString(v string) string {
	var buffer bytes.Buffer
	if p.Terms == nil {
		return "0"
	}
	it := p.Terms.Iterator()
	var indent = false // no space before first term (usually constant)
	for it.Next() {
		pos := it.Key().(int)
		scale := it.Value().(float64)
		if pos == 0 {
			if scale != 0 || p.Terms.Size() == 1 {
				buffer.WriteString(fmt.Sprintf("%g", probrush.Round(scale)))
				indent = true
			}
			continue
		}
		if indent {
			if scale < 0.0 {
				buffer.WriteString(" - ")
			} else {
				buffer.WriteString(" + ")
			}
		} else {
			indent = true
			if scale < 0.0 {
				buffer.WriteString("-")
			}
		}
		if !probrush.Is1(math.Abs(scale)) {
			buffer.WriteString(fmt.Sprintf("%g", math.Abs(scale)))
		}
		buffer.WriteString(v)
		if pos > 1 {
			buffer.WriteString(fmt.Sprintf("^%d", pos))
		}
	}
	return buffer.String()
}
