// Package permset implements the permutation-set abstraction: a
// sorted-unique sequence of interned permutation IDs, plus the group
// algebra (product, inverse, set operations, orbit, coset decomposition)
// layered over it. A Set never owns permutation data itself — all algebra
// routes through a permstore.Store, so no operation here can produce an ID
// that escapes the interner.
package permset

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/permgroup/engine/internal/errs"
	"github.com/permgroup/engine/intset"
	"github.com/permgroup/engine/permstore"
)

// Set is an ascending, duplicate-free sequence of permutation IDs, with a
// flag recording whether the sequence has been verified to be a group.
type Set struct {
	store   *permstore.Store
	ids     []int32
	isGroup bool
}

// New builds a Set from a sequence of IDs. If normalized is false the
// sequence is sorted and de-duplicated; pass true only when the caller
// certifies the input is already ascending and unique.
func New(store *permstore.Store, ids []permstore.ID, normalized bool) *Set {
	raw := make([]int32, len(ids))
	for i, id := range ids {
		raw[i] = int32(id)
	}
	if !normalized {
		raw = intset.SortUnique(raw)
	}
	return &Set{store: store, ids: raw}
}

// Identity returns the singleton group {identity}.
func Identity(store *permstore.Store) *Set {
	return &Set{store: store, ids: []int32{int32(permstore.Identity)}, isGroup: true}
}

// MarkGroup returns a copy of s with isGroup set. Used by callers (e.g. the
// closure generator) that have independently established the group
// property.
func (s *Set) MarkGroup(isGroup bool) *Set {
	return &Set{store: s.store, ids: s.ids, isGroup: isGroup}
}

// Store returns the backing interner.
func (s *Set) Store() *permstore.Store { return s.store }

// Size returns the number of elements.
func (s *Set) Size() int { return len(s.ids) }

// IsGroup reports whether this set has been verified to be a group.
func (s *Set) IsGroup() bool { return s.isGroup }

// At returns the i-th ID in ascending order.
func (s *Set) At(i int) permstore.ID { return permstore.ID(s.ids[i]) }

// IDs returns a copy of the ascending, unique ID sequence; mutating it does
// not affect s.
func (s *Set) IDs() []permstore.ID {
	out := make([]permstore.ID, len(s.ids))
	for i, v := range s.ids {
		out[i] = permstore.ID(v)
	}
	return out
}

// Contains reports whether id is a member.
func (s *Set) Contains(id permstore.ID) bool {
	return intset.Contains(s.ids, int32(id))
}

// Equal reports whether s and other contain exactly the same IDs.
func (s *Set) Equal(other *Set) bool { return intset.Equal(s.ids, other.ids) }

// IsSubsetOf reports whether every element of s is in other.
func (s *Set) IsSubsetOf(other *Set) bool { return intset.IsSubset(s.ids, other.ids) }

// IsSupersetOf reports whether every element of other is in s.
func (s *Set) IsSupersetOf(other *Set) bool { return intset.IsSubset(other.ids, s.ids) }

// Union returns s ∪ other. The result is conservatively never flagged a
// group.
func (s *Set) Union(other *Set) *Set {
	return &Set{store: s.store, ids: intset.Union(s.ids, other.ids), isGroup: false}
}

// Intersection returns s ∩ other. The intersection of two groups is a
// group; any other combination is conservatively flagged non-group.
func (s *Set) Intersection(other *Set) *Set {
	return &Set{
		store:   s.store,
		ids:     intset.Intersection(s.ids, other.ids),
		isGroup: s.isGroup && other.isGroup,
	}
}

// Difference returns s \ other, never flagged a group.
func (s *Set) Difference(other *Set) *Set {
	return &Set{store: s.store, ids: intset.Difference(s.ids, other.ids), isGroup: false}
}

// Product returns {a·b | a ∈ s, b ∈ other}, sorted and de-duplicated. The
// inner/outer loop is chosen by the smaller operand for cache locality; the
// multiplication order a·b (a from s, b from other) is preserved either
// way. The result is never flagged a group.
func (s *Set) Product(other *Set) (*Set, error) {
	out := make([]int32, 0, len(s.ids)*len(other.ids))
	var err error
	visit := func(a, b int32) bool {
		id, e := s.store.Multiply(permstore.ID(a), permstore.ID(b))
		if e != nil {
			err = e
			return false
		}
		out = append(out, int32(id))
		return true
	}
	if len(s.ids) <= len(other.ids) {
		for _, a := range s.ids {
			for _, b := range other.ids {
				if !visit(a, b) {
					return nil, err
				}
			}
		}
	} else {
		for _, b := range other.ids {
			for _, a := range s.ids {
				if !visit(a, b) {
					return nil, err
				}
			}
		}
	}
	return &Set{store: s.store, ids: intset.SortUnique(out), isGroup: false}, nil
}

// Inverse returns the elementwise inverse set. If s is a group, the
// inverse set equals s and the group flag is preserved.
func (s *Set) Inverse() (*Set, error) {
	out := make([]int32, len(s.ids))
	for i, a := range s.ids {
		inv, err := s.store.Inverse(permstore.ID(a))
		if err != nil {
			return nil, err
		}
		out[i] = int32(inv)
	}
	return &Set{store: s.store, ids: intset.SortUnique(out), isGroup: s.isGroup}, nil
}

// IsAbelian reports whether every pair of elements commutes, checked
// elementwise over point images (no new IDs are interned). O(|s|^2 * N).
func (s *Set) IsAbelian() (bool, error) {
	degree := int(s.store.Degree())
	for i := 0; i < len(s.ids); i++ {
		pa, err := s.store.Get(permstore.ID(s.ids[i]))
		if err != nil {
			return false, err
		}
		for j := i + 1; j < len(s.ids); j++ {
			pb, err := s.store.Get(permstore.ID(s.ids[j]))
			if err != nil {
				return false, err
			}
			for k := 0; k < degree; k++ {
				if pa[pb[k]] != pb[pa[k]] {
					return false, nil
				}
			}
		}
	}
	return true, nil
}

// Orbit returns the orbit of point p under s, treating s's elements as
// generators and exploring via BFS (so the result is correct even when s
// is not closed under multiplication).
func (s *Set) Orbit(p int32) ([]int32, error) {
	degree := s.store.Degree()
	if p < 0 || p >= degree {
		return nil, errs.New(errs.OutOfBounds, "point %d outside [0, %d)", p, degree)
	}
	visited := bitset.New(uint(degree))
	visited.Set(uint(p))
	orbit := []int32{p}
	queue := []int32{p}
	for head := 0; head < len(queue); head++ {
		x := queue[head]
		for _, g := range s.ids {
			img, err := s.store.Get(permstore.ID(g))
			if err != nil {
				return nil, err
			}
			y := img[x]
			if !visited.Test(uint(y)) {
				visited.Set(uint(y))
				orbit = append(orbit, y)
				queue = append(queue, y)
			}
		}
	}
	return intset.SortUnique(orbit), nil
}

// RightCosetDecomposition decomposes s into right cosets of h, walking
// elements of s in ascending ID order: the first unvisited g opens a new
// coset H·g; all its members are marked visited; repeat until exhausted.
// Cosets are returned in encounter order.
func (s *Set) RightCosetDecomposition(h *Set) ([][]permstore.ID, error) {
	visited := make([]bool, s.store.Count())
	var cosets [][]permstore.ID
	for _, g := range s.ids {
		if int(g) < len(visited) && visited[g] {
			continue
		}
		single := &Set{store: s.store, ids: []int32{g}}
		coset, err := h.Product(single)
		if err != nil {
			return nil, err
		}
		for _, m := range coset.ids {
			if int(m) >= len(visited) {
				grown := make([]bool, m+1)
				copy(grown, visited)
				visited = grown
			}
			visited[m] = true
		}
		cosets = append(cosets, coset.IDs())
	}
	return cosets, nil
}
