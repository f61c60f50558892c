/*
Package easing holds the shape functions of brush segments.

A shape maps the relative position t ∈ [0,1] within a segment to the relative
change of certainty along that segment. All shapes satisfy shape(0) = 0 and
shape(1) = 1.

	Linear     t
	EaseIn     t²
	EaseOut    2t − t²
	EaseInOut  3t² − 2t³

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package easing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/probrush/polyn"
)

// ErrUnknownEasing indicates an easing name which is not one of linear, in,
// out or inout.
var ErrUnknownEasing = errors.New("unknown easing")

// Kind is the interpolation kind of a brush segment.
type Kind uint8

// The four interpolation kinds. The zero value is Linear.
const (
	Linear Kind = iota
	EaseIn
	EaseOut
	EaseInOut
)

// Kinds lists all interpolation kinds.
var Kinds = []Kind{Linear, EaseIn, EaseOut, EaseInOut}

var names = [...]string{"linear", "in", "out", "inout"}

// Shape evaluates the shape function of k at t.
func (k Kind) Shape(t float64) float64 {
	switch k {
	case EaseIn:
		return t * t
	case EaseOut:
		return t * (2 - t)
	case EaseInOut:
		return t * t * (3 - 2*t)
	}
	return t
}

// Polynomial returns the shape function of k as a polynomial in t.
func (k Kind) Polynomial() polyn.Polynomial {
	switch k {
	case EaseIn:
		return polyn.FromCoefficients(0, 0, 1)
	case EaseOut:
		return polyn.FromCoefficients(0, 2, -1)
	case EaseInOut:
		return polyn.FromCoefficients(0, 0, 3, -2)
	}
	return polyn.FromCoefficients(0, 1)
}

// IsValid is a predicate: is k one of the four kinds?
func (k Kind) IsValid() bool {
	return int(k) < len(names)
}

func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return names[k]
}

// ParseKind reads an easing name. Accepted are the short forms 'linear',
// 'in', 'out', 'inout' and the CSS-like forms 'ease-in', 'ease-out',
// 'ease-in-out', ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "in", "ease-in", "easein":
		return EaseIn, nil
	case "out", "ease-out", "easeout":
		return EaseOut, nil
	case "inout", "ease-in-out", "easeinout":
		return EaseInOut, nil
	}
	return Linear, fmt.Errorf("%w: %q", ErrUnknownEasing, s)
}

// MarshalText writes the short name of k.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEasing, uint8(k))
	}
	return []byte(names[k]), nil
}

// UnmarshalText reads any name accepted by ParseKind.
func (k *Kind) UnmarshalText(b []byte) error {
	kind, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
