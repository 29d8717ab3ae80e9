package structure_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/permgroup/engine/permset"
	"github.com/permgroup/engine/permstore"
	"github.com/permgroup/engine/schreiersims"
	"github.com/permgroup/engine/structure"
)

func mustRegister(t *testing.T, s *permstore.Store, image []int32) permstore.ID {
	t.Helper()
	id, err := s.Register(image)
	require.NoError(t, err)
	return id
}

func s3Gens(t *testing.T, store *permstore.Store) *permset.Set {
	transposition := mustRegister(t, store, []int32{1, 0, 2})
	threeCycle := mustRegister(t, store, []int32{1, 2, 0})
	return permset.New(store, []permstore.ID{transposition, threeCycle}, false)
}

func TestIsSubgroupAndIsNormal(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	g := s3Gens(t, store)
	chainG, err := schreiersims.Compute(store, g)
	a.NoError(err)

	threeCycle := mustRegister(t, store, []int32{1, 2, 0})
	a3 := permset.New(store, []permstore.ID{threeCycle}, false)

	ok, err := structure.IsSubgroup(chainG, a3)
	a.NoError(err)
	a.True(ok)

	chainA3, err := schreiersims.Compute(store, a3)
	a.NoError(err)
	normal, err := structure.IsNormal(store, g, a3, chainA3)
	a.NoError(err)
	a.True(normal, "A3 is normal in S3")
}

func TestNormalClosureOfTranspositionIsWholeS3(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	g := s3Gens(t, store)
	transposition := mustRegister(t, store, []int32{1, 0, 2})
	seed := permset.New(store, []permstore.ID{transposition}, false)

	nc, err := structure.NormalClosure(store, g, seed)
	a.NoError(err)
	a.Equal(big.NewInt(6), nc.Order())
}

func TestCommutatorSubgroupOfS3IsA3(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	g := s3Gens(t, store)

	derived, err := structure.CommutatorSubgroup(store, g)
	a.NoError(err)
	a.Equal(big.NewInt(3), derived.Order())
}

func TestDerivedSeriesS3IsSolvable(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	g := s3Gens(t, store)

	series, solvable, err := structure.DerivedSeries(store, g, structure.DefaultLimits())
	a.NoError(err)
	a.True(solvable)
	a.GreaterOrEqual(len(series), 2)
	a.Equal(big.NewInt(1), series[len(series)-1].Order())
}

func TestLowerCentralSeriesAbelianIsNilpotent(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	g1 := mustRegister(t, store, []int32{1, 0, 3, 2})
	g2 := mustRegister(t, store, []int32{2, 3, 0, 1})
	g := permset.New(store, []permstore.ID{g1, g2}, false)

	series, nilpotent, err := structure.LowerCentralSeries(store, g, structure.DefaultLimits())
	a.NoError(err)
	a.True(nilpotent)
	a.Equal(big.NewInt(1), series[len(series)-1].Order())
}

func TestIsSimpleS3IsNotSimple(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	g := s3Gens(t, store)
	rng := rand.New(rand.NewSource(1))

	result, err := structure.IsSimple(store, g, structure.DefaultLimits(), rng)
	a.NoError(err)
	a.Equal(structure.TriNo, result)
}

func TestIsSimpleC3IsSimple(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	threeCycle := mustRegister(t, store, []int32{1, 2, 0})
	g := permset.New(store, []permstore.ID{threeCycle}, false)
	rng := rand.New(rand.NewSource(1))

	result, err := structure.IsSimple(store, g, structure.DefaultLimits(), rng)
	a.NoError(err)
	a.Equal(structure.TriYes, result)
}

func TestAnalyzeGeneratorsClassifiesRedundant(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	transposition := mustRegister(t, store, []int32{1, 0, 2})
	threeCycle := mustRegister(t, store, []int32{1, 2, 0})
	otherTransposition := mustRegister(t, store, []int32{0, 2, 1})

	classification, err := structure.AnalyzeGenerators(store, []permstore.ID{transposition, threeCycle, otherTransposition})
	a.NoError(err)
	a.True(classification[0].Fundamental)
	a.True(classification[1].Fundamental)
	a.False(classification[2].Fundamental, "already reachable from the first two generators")
}

func TestIsomorphismInvariantsDetectsOrderMismatch(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	c4 := mustRegister(t, store, []int32{1, 2, 3, 0})
	g1 := permset.New(store, []permstore.ID{c4}, false)
	g := s3Gens(t, store)

	result, err := structure.IsomorphismInvariants(store, g1, g)
	a.NoError(err)
	a.Equal(structure.TriNo, result)
}

func TestIsomorphismInvariantsAgreeingGroupsAreUnknown(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	g1 := s3Gens(t, store)
	transposition := mustRegister(t, store, []int32{0, 2, 1})
	threeCycle := mustRegister(t, store, []int32{1, 2, 0})
	g2 := permset.New(store, []permstore.ID{transposition, threeCycle}, false)

	result, err := structure.IsomorphismInvariants(store, g1, g2)
	a.NoError(err)
	a.Equal(structure.TriUnknown, result)
}

func TestQuotientS3ByA3IsC2(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	g := s3Gens(t, store)
	chainG, err := schreiersims.Compute(store, g)
	a.NoError(err)

	threeCycle := mustRegister(t, store, []int32{1, 2, 0})
	a3 := permset.New(store, []permstore.ID{threeCycle}, false)
	chainA3, err := schreiersims.Compute(store, a3)
	a.NoError(err)

	quotient, err := structure.Quotient(store, g, chainG, chainA3, structure.DefaultLimits())
	a.NoError(err)
	a.Len(quotient.Representatives, 2, "[S3:A3] = 2")
	a.Equal(permstore.Identity, quotient.Representatives[0], "coset 0 is always the identity coset")

	chainQ, err := schreiersims.Compute(store, quotient.Generators)
	a.NoError(err)
	a.Equal(big.NewInt(2), chainQ.Order())
}

func TestSylow2OfS3(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	g := s3Gens(t, store)
	chainG, err := schreiersims.Compute(store, g)
	a.NoError(err)
	rng := rand.New(rand.NewSource(7))

	sylow2, err := structure.Sylow(store, chainG, 2, structure.DefaultLimits(), rng)
	a.NoError(err)
	a.Equal(big.NewInt(2), sylow2.Order())

	sylow3, err := structure.Sylow(store, chainG, 3, structure.DefaultLimits(), rng)
	a.NoError(err)
	a.Equal(big.NewInt(3), sylow3.Order())
}
