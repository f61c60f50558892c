package brush

import (
	"slices"

	"github.com/npillmayer/probrush"
	"github.com/npillmayer/probrush/polygon"
)

// Group is a maximal set of brushes whose domains overlap, directly or via
// other brushes of the group.
type Group struct {
	Range   probrush.Interval // union of the members' domains
	Members []int             // indices into the brush list, ascending
}

// Footprint returns the box covered by the brush in (position, certainty)
// space.
func (b *Brush) Footprint() *polygon.Polygon {
	d := b.Domain()
	return polygon.Box(probrush.P(d.Lo(), 0), probrush.P(d.Hi(), 1))
}

// Groups partitions brushes into overlap groups, sorted by position.
// Brushes touching at a single position belong to the same group.
func Groups(brushes []*Brush) []Group {
	if len(brushes) == 0 {
		return nil
	}
	union := &polygon.Polygon{}
	for _, b := range brushes {
		union = union.Union(b.Footprint())
	}
	extents := union.Extents()
	groups := make([]Group, len(extents))
	for i, ext := range extents {
		groups[i].Range = ext
	}
	for i, b := range brushes {
		d := b.Domain()
		k, _ := slices.BinarySearchFunc(extents, d.Lo(), func(ext probrush.Interval, x float64) int {
			if ext.Hi()+probrush.Epsilon < x {
				return -1
			}
			return 1
		})
		k = min(k, len(groups)-1)
		groups[k].Members = append(groups[k].Members, i)
	}
	tracer().Debugf("%d brushes form %d groups", len(brushes), len(groups))
	return groups
}

// GroupContaining returns the index of the group whose range contains x.
func GroupContaining(groups []Group, x float64) (int, bool) {
	for i, g := range groups {
		if g.Range.Contains(x) {
			return i, true
		}
	}
	return -1, false
}

// Ranks assigns a stacking rank to every brush. Within a group, a brush is
// ranked one above the highest ranked earlier brush it overlaps, starting
// at 0.
func Ranks(brushes []*Brush) []int {
	ranks := make([]int, len(brushes))
	for _, g := range Groups(brushes) {
		for k, i := range g.Members {
			for _, j := range g.Members[:k] {
				if brushes[i].Domain().Overlaps(brushes[j].Domain()) {
					ranks[i] = max(ranks[i], ranks[j]+1)
				}
			}
		}
	}
	return ranks
}
