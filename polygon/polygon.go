/*
Package polygon builds simple polygons from control points and combines them
with boolean operations.

The engine uses polygons for the footprints of brushes: every brush covers a
box [lo,hi]×[0,1] on its axis. The union of all footprints falls apart into
disjoint regions, which are the overlap groups of brushes.

Boolean operations are delegated to github.com/akavel/polyclip-go.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/akavel/polyclip-go"
	"github.com/npillmayer/probrush"
	"github.com/npillmayer/schuko/tracing"
)

// L traces to the polygon tracer.
func L() tracing.Trace {
	return tracing.Select("probrush.polygon")
}

// Builder collects knots of a closed polygon.
// To construct a polygon, start with NullPolygon(), add knots and
// close it with Cycle().
type Builder struct {
	knots []probrush.Pair
}

// NullPolygon starts an empty polygon.
func NullPolygon() *Builder {
	return &Builder{}
}

// Knot appends a knot.
func (b *Builder) Knot(p probrush.Pair) *Builder {
	b.knots = append(b.knots, p)
	return b
}

// Cycle closes the polygon. A builder with fewer than 3 knots results in an
// empty polygon.
func (b *Builder) Cycle() *Polygon {
	if len(b.knots) < 3 {
		return &Polygon{}
	}
	c := make(polyclip.Contour, len(b.knots))
	for i, k := range b.knots {
		c[i] = polyclip.Point{X: k.X(), Y: k.Y()}
	}
	return &Polygon{pg: polyclip.Polygon{c}}
}

// Polygon is a set of closed contours. Contours of a union result do not
// overlap.
type Polygon struct {
	pg polyclip.Polygon
}

// Box creates a rectangle from two opposite corners.
func Box(p1, p2 probrush.Pair) *Polygon {
	x0, x1 := math.Min(p1.X(), p2.X()), math.Max(p1.X(), p2.X())
	y0, y1 := math.Min(p1.Y(), p2.Y()), math.Max(p1.Y(), p2.Y())
	return NullPolygon().
		Knot(probrush.P(x0, y0)).Knot(probrush.P(x1, y0)).
		Knot(probrush.P(x1, y1)).Knot(probrush.P(x0, y1)).Cycle()
}

// N returns the number of vertices of all contours.
func (p *Polygon) N() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, c := range p.pg {
		n += len(c)
	}
	return n
}

// Contours returns the number of contours.
func (p *Polygon) Contours() int {
	if p == nil {
		return 0
	}
	return len(p.pg)
}

// IsEmpty is true for polygons without any contour.
func (p *Polygon) IsEmpty() bool {
	return p.Contours() == 0
}

// Union returns the union of p and other. Neither operand is changed.
func (p *Polygon) Union(other *Polygon) *Polygon {
	switch {
	case other.IsEmpty():
		return p.clone()
	case p.IsEmpty():
		return other.clone()
	}
	u := p.pg.Construct(polyclip.UNION, other.pg)
	L().Debugf("union of %d + %d contours = %d contours", p.Contours(), other.Contours(), len(u))
	return &Polygon{pg: u}
}

func (p *Polygon) clone() *Polygon {
	if p == nil {
		return &Polygon{}
	}
	pg := make(polyclip.Polygon, len(p.pg))
	for i, c := range p.pg {
		pg[i] = append(polyclip.Contour(nil), c...)
	}
	return &Polygon{pg: pg}
}

// Extents returns the horizontal extents of the connected regions of p,
// sorted by lower bound. Regions whose extents overlap or touch within ε are
// reported as one extent.
func (p *Polygon) Extents() []probrush.Interval {
	if p.IsEmpty() {
		return nil
	}
	ivs := make([]probrush.Interval, 0, len(p.pg))
	for _, c := range p.pg {
		if len(c) == 0 {
			continue
		}
		bb := c.BoundingBox()
		ivs = append(ivs, probrush.I(bb.Min.X, bb.Max.X))
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Lo() < ivs[j].Lo() })
	merged := ivs[:0]
	for _, iv := range ivs {
		if n := len(merged); n > 0 && iv.Lo() <= merged[n-1].Hi()+probrush.Epsilon {
			merged[n-1][1] = math.Max(merged[n-1].Hi(), iv.Hi())
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// AsString returns a readable representation of a polygon.
func AsString(p *Polygon) string {
	var buf bytes.Buffer
	if p.IsEmpty() {
		return "<empty>"
	}
	for i, c := range p.pg {
		if i > 0 {
			buf.WriteString(" ")
		}
		for j, pt := range c {
			if j > 0 {
				buf.WriteString("--")
			}
			buf.WriteString(fmt.Sprintf("(%g,%g)", pt.X, pt.Y))
		}
		buf.WriteString("--cycle")
	}
	return buf.String()
}
