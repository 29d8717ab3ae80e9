package permstore_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/permgroup/engine/permstore"
)

func TestIdentityIsZero(t *testing.T) {
	a := require.New(t)
	s := permstore.New()
	a.Equal(permstore.ID(0), permstore.Identity)
	img, err := s.Get(permstore.Identity)
	a.NoError(err)
	a.Equal([]int32{0}, img)
}

func TestRegisterIdempotentAndPadding(t *testing.T) {
	a := require.New(t)
	s := permstore.New()

	id1, err := s.Register([]int32{1, 0})
	a.NoError(err)
	id2, err := s.Register([]int32{1, 0})
	a.NoError(err)
	a.Equal(id1, id2, "registering the same image twice returns the same ID")

	// implicit padding equivalence: [0] and [0,1] on degree 2 both mean identity
	idShort, err := s.Register([]int32{0})
	a.NoError(err)
	idLong, err := s.Register([]int32{0, 1})
	a.NoError(err)
	a.Equal(idShort, idLong)
	a.Equal(permstore.Identity, idShort)
}

func TestDegreeUpgradePreservesPrefix(t *testing.T) {
	a := require.New(t)
	s := permstore.New()

	id, err := s.Register([]int32{1, 0})
	a.NoError(err)
	before, err := s.Get(id)
	a.NoError(err)
	beforeCopy := append([]int32(nil), before...)

	_, err = s.Register([]int32{0, 1, 2, 3, 4})
	a.NoError(err)

	after, err := s.Get(id)
	a.NoError(err)
	a.Equal(beforeCopy, after[:len(beforeCopy)], "%s", spew.Sdump(after))
	for k := len(beforeCopy); k < len(after); k++ {
		a.EqualValues(k, after[k], "suffix must be fixed points")
	}
}

func TestMultiplyInverseConvention(t *testing.T) {
	a := require.New(t)
	s := permstore.New()

	// (1 2 3) as a 0-based image on degree 3: 0->1, 1->2, 2->0
	abc, err := s.Register([]int32{1, 2, 0})
	a.NoError(err)
	inv, err := s.Inverse(abc)
	a.NoError(err)
	prod, err := s.Multiply(abc, inv)
	a.NoError(err)
	a.Equal(permstore.Identity, prod)

	prod2, err := s.Multiply(inv, abc)
	a.NoError(err)
	a.Equal(permstore.Identity, prod2)
}

func TestGetAsCycles(t *testing.T) {
	a := require.New(t)
	s := permstore.New()

	id, err := s.Register([]int32{0, 1, 2})
	a.NoError(err)
	cyc, err := s.GetAsCycles(id)
	a.NoError(err)
	a.Equal("()", cyc)

	id2, err := s.Register([]int32{1, 2, 0})
	a.NoError(err)
	cyc2, err := s.GetAsCycles(id2)
	a.NoError(err)
	a.Equal("(1 2 3)", cyc2)
}

func TestParseFormatRoundTrip(t *testing.T) {
	a := require.New(t)
	img, err := permstore.ParseCycleNotation("(1 2)(3 4 5)", 0)
	a.NoError(err)
	a.Equal("(1 2)(3 4 5)", permstore.FormatCycles(img))

	id, err := permstore.ParseCycleNotation("()", 3)
	a.NoError(err)
	a.Equal("()", permstore.FormatCycles(id))
}

func TestParseCycleNotationRejectsBadInput(t *testing.T) {
	a := require.New(t)
	_, err := permstore.ParseCycleNotation("(1 0)", 0)
	a.Error(err)
	_, err = permstore.ParseCycleNotation("(1 x)", 0)
	a.Error(err)
}

// genPermImage generates a random permutation image of a fixed small degree
// by shuffling 0..n-1 with Fisher-Yates, deterministically seeded by gopter.
func genPermImage(n int) gopter.Gen {
	return gen.IntRange(0, 10000).Map(func(seed int) []int32 {
		img := make([]int32, n)
		for i := range img {
			img[i] = int32(i)
		}
		r := seed
		for i := n - 1; i > 0; i-- {
			r = (r*1103515245 + 12345) & 0x7fffffff
			j := r % (i + 1)
			img[i], img[j] = img[j], img[i]
		}
		return img
	})
}

func TestMultiplyIsAssociative(t *testing.T) {
	props := gopter.NewProperties(nil)
	s := permstore.New()

	props.Property("multiply is associative", prop.ForAll(
		func(pa, pb, pc []int32) bool {
			a, _ := s.Register(pa)
			b, _ := s.Register(pb)
			c, _ := s.Register(pc)

			ab, _ := s.Multiply(a, b)
			left, _ := s.Multiply(ab, c)

			bc, _ := s.Multiply(b, c)
			right, _ := s.Multiply(a, bc)

			return left == right
		},
		genPermImage(6), genPermImage(6), genPermImage(6),
	))

	props.TestingRun(t)
}

func TestInverseLaw(t *testing.T) {
	props := gopter.NewProperties(nil)
	s := permstore.New()

	props.Property("a * inverse(a) == identity == inverse(a) * a", prop.ForAll(
		func(pa []int32) bool {
			a, _ := s.Register(pa)
			inv, _ := s.Inverse(a)
			left, _ := s.Multiply(a, inv)
			right, _ := s.Multiply(inv, a)
			return left == permstore.Identity && right == permstore.Identity
		},
		genPermImage(6),
	))

	props.TestingRun(t)
}
