package structure

import (
	"math/big"

	"github.com/permgroup/engine/internal/errs"
	"github.com/permgroup/engine/permset"
	"github.com/permgroup/engine/permstore"
	"github.com/permgroup/engine/schreiersims"
)

// QuotientResult is the outcome of coset enumeration: the induced
// permutation group acting on coset indices, plus the representative table
// the enumeration chose (Representatives[i] is the coset-i representative
// found while building Generators; Representatives[0] is always the
// identity coset).
type QuotientResult struct {
	Generators      *permset.Set
	Representatives []permstore.ID
}

// Quotient enumerates the right cosets of N in G by BFS (coset
// enumeration) and returns the induced action of G's generators on coset
// indices as freshly registered permutations in the same store, together
// with the chosen representative table. Callers are expected to have
// already established N normal in G (IsNormal) — the coset action built
// here is well defined regardless, but it is only a genuine quotient GROUP
// when N is normal.
func Quotient(store *permstore.Store, gGens *permset.Set, chainG, chainN *schreiersims.Chain, limits Limits) (QuotientResult, error) {
	expectedIndex, remainder := new(big.Int), new(big.Int)
	expectedIndex.DivMod(chainG.Order(), chainN.Order(), remainder)
	if remainder.Sign() != 0 {
		return QuotientResult{}, errs.New(errs.NotDivisor, "|N|=%s does not divide |G|=%s", chainN.Order(), chainG.Order())
	}
	if !expectedIndex.IsInt64() || expectedIndex.Int64() > int64(limits.QuotientIndexBound) {
		return QuotientResult{}, errs.New(errs.Overflow, "quotient index %s exceeds bound %d", expectedIndex, limits.QuotientIndexBound)
	}
	bound := int(expectedIndex.Int64())

	reps := []permstore.ID{permstore.Identity}
	gens := gGens.IDs()
	actions := make([][]int32, len(gens))
	for i := range actions {
		actions[i] = make([]int32, 0, bound)
	}

	cosetOf := func(x permstore.ID) (int, error) {
		for j, r := range reps {
			rinv, err := store.Inverse(r)
			if err != nil {
				return 0, err
			}
			diff, err := store.Multiply(x, rinv)
			if err != nil {
				return 0, err
			}
			ok, err := chainN.Contains(diff)
			if err != nil {
				return 0, err
			}
			if ok {
				return j, nil
			}
		}
		return -1, nil
	}

	for head := 0; head < len(reps); head++ {
		for gi, g := range gens {
			candidate, err := store.Multiply(reps[head], g)
			if err != nil {
				return QuotientResult{}, err
			}
			idx, err := cosetOf(candidate)
			if err != nil {
				return QuotientResult{}, err
			}
			if idx == -1 {
				if len(reps) >= bound {
					return QuotientResult{}, errs.New(errs.Overflow, "quotient coset enumeration exceeded expected index %d", bound)
				}
				reps = append(reps, candidate)
				idx = len(reps) - 1
			}
			for len(actions[gi]) <= head {
				actions[gi] = append(actions[gi], 0)
			}
			actions[gi][head] = int32(idx)
		}
	}
	if len(reps) != bound {
		return QuotientResult{}, errs.New(errs.NotDivisor, "coset enumeration found index %d, expected %d (N likely not normal)", len(reps), bound)
	}

	quotientIDs := make([]permstore.ID, 0, len(gens))
	for gi := range gens {
		img := actions[gi]
		for len(img) < bound {
			img = append(img, int32(len(img)))
		}
		id, err := store.Register(img)
		if err != nil {
			return QuotientResult{}, err
		}
		quotientIDs = append(quotientIDs, id)
	}
	log.Info().Int("index", bound).Int("generators", len(quotientIDs)).Msg("structure: quotient generators built")
	return QuotientResult{
		Generators:      permset.New(store, quotientIDs, false),
		Representatives: reps,
	}, nil
}
