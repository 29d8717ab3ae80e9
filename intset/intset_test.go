package intset_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/permgroup/engine/intset"
)

func TestUnionIntersectionDifference(t *testing.T) {
	a := require.New(t)

	x := []int32{1, 3, 5, 7}
	y := []int32{2, 3, 6, 7, 9}

	a.Equal([]int32{1, 2, 3, 5, 6, 7, 9}, intset.Union(x, y))
	a.Equal([]int32{3, 7}, intset.Intersection(x, y))
	a.Equal([]int32{1, 5}, intset.Difference(x, y))
}

func TestEmptyOperands(t *testing.T) {
	a := require.New(t)
	x := []int32{1, 2, 3}

	a.Equal(x, intset.Union(x, nil))
	a.Equal(x, intset.Union(nil, x))
	a.Nil(intset.Intersection(x, nil))
	a.Equal(x, intset.Difference(x, nil))
	a.Nil(intset.Difference(nil, x))
}

func TestSortUnique(t *testing.T) {
	a := require.New(t)
	s := []int32{5, 1, 3, 1, 5, 2}
	a.Equal([]int32{1, 2, 3, 5}, intset.SortUnique(s))
}

func TestContains(t *testing.T) {
	a := require.New(t)
	s := []int32{2, 4, 6, 8}
	a.True(intset.Contains(s, 6))
	a.False(intset.Contains(s, 5))
	a.False(intset.Contains(nil, 0))
}

// ascending unique int32 sequences, for property tests.
func genAscendingSet() gopter.Gen {
	return gen.SliceOf(gen.Int32Range(0, 200)).Map(func(s []int32) []int32 {
		return intset.SortUnique(s)
	})
}

func TestUnionIsCommutativeAndAscending(t *testing.T) {
	props := gopter.NewProperties(nil)

	props.Property("union is commutative and stays ascending unique", prop.ForAll(
		func(a, b []int32) bool {
			u1 := intset.Union(a, b)
			u2 := intset.Union(b, a)
			if !intset.Equal(u1, u2) {
				return false
			}
			for i := 1; i < len(u1); i++ {
				if u1[i-1] >= u1[i] {
					return false
				}
			}
			return true
		},
		genAscendingSet(), genAscendingSet(),
	))

	props.TestingRun(t)
}

func TestIntersectionSubsetOfBoth(t *testing.T) {
	props := gopter.NewProperties(nil)

	props.Property("intersection is a subset of both operands", prop.ForAll(
		func(a, b []int32) bool {
			i := intset.Intersection(a, b)
			return intset.IsSubset(i, a) && intset.IsSubset(i, b)
		},
		genAscendingSet(), genAscendingSet(),
	))

	props.TestingRun(t)
}
