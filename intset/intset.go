// Package intset implements set operations over strictly ascending,
// duplicate-free sequences of int32. Every permutation ID sequence in this
// module (C3 sets, orbits, cosets) is kept in this canonical form so that
// the operations below can stay allocation-light two-pointer merges instead
// of hash-set bookkeeping.
package intset

import (
	"sort"

	"golang.org/x/exp/slices"
)

// Contains reports whether v is present in the ascending, unique sequence s.
// O(log n).
func Contains(s []int32, v int32) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	return i < len(s) && s[i] == v
}

// IndexOf returns the position of v in s, or -1 if absent.
func IndexOf(s []int32, v int32) int {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	if i < len(s) && s[i] == v {
		return i
	}
	return -1
}

// Union returns the ascending, duplicate-free merge of a and b.
func Union(a, b []int32) []int32 {
	if len(a) == 0 {
		return append([]int32(nil), b...)
	}
	if len(b) == 0 {
		return append([]int32(nil), a...)
	}
	out := make([]int32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// Intersection returns the ascending elements present in both a and b.
func Intersection(a, b []int32) []int32 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	cap := len(a)
	if len(b) < cap {
		cap = len(b)
	}
	out := make([]int32, 0, cap)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// Difference returns the ascending elements of a that are not in b.
func Difference(a, b []int32) []int32 {
	if len(a) == 0 {
		return nil
	}
	if len(b) == 0 {
		return append([]int32(nil), a...)
	}
	out := make([]int32, 0, len(a))
	i, j := 0, 0
	for i < len(a) {
		for j < len(b) && b[j] < a[i] {
			j++
		}
		if j < len(b) && b[j] == a[i] {
			i++
			continue
		}
		out = append(out, a[i])
		i++
	}
	return out
}

// SortUnique sorts s ascending in place and returns the prefix containing
// unique values. The caller certifies s is theirs to mutate.
func SortUnique(s []int32) []int32 {
	slices.Sort(s)
	return slices.Compact(s)
}

// Equal reports whether two ascending sequences contain the same elements
// in the same order.
func Equal(a, b []int32) bool {
	return slices.Equal(a, b)
}

// IsSubset reports whether every element of a is present in b.
func IsSubset(a, b []int32) bool {
	i := 0
	for _, v := range a {
		for i < len(b) && b[i] < v {
			i++
		}
		if i >= len(b) || b[i] != v {
			return false
		}
	}
	return true
}
