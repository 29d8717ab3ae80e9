// Package structure layers structural-analysis algorithms over a
// Schreier-Sims chain: normal closure, commutator subgroups, derived and
// lower-central series (solvability/nilpotency), simplicity, quotients,
// Sylow subgroups, generator classification, and isomorphism invariants.
package structure

import (
	"math/big"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/permgroup/engine/internal/errs"
	"github.com/permgroup/engine/permset"
	"github.com/permgroup/engine/permstore"
	"github.com/permgroup/engine/schreiersims"
)

var log = zerolog.Nop()

// SetLogger attaches a package-wide logger for structural-analysis
// diagnostics (base extensions surface through the chains themselves;
// this logger covers normal-closure/Sylow/quotient events).
func SetLogger(l zerolog.Logger) { log = l }

// IsSubgroup reports whether every generator of h sifts to identity in
// the chain of g, i.e. h <= G.
func IsSubgroup(chainG *schreiersims.Chain, h *permset.Set) (bool, error) {
	for _, id := range h.IDs() {
		ok, err := chainG.Contains(id)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// IsNormal reports whether N is normal in G: for every generator g of G
// and every generator n of N, g n g⁻¹ must sift to identity in N's chain.
func IsNormal(store *permstore.Store, gGens, nGens *permset.Set, chainN *schreiersims.Chain) (bool, error) {
	for _, g := range gGens.IDs() {
		for _, n := range nGens.IDs() {
			conj, err := store.Conjugate(g, n)
			if err != nil {
				return false, err
			}
			ok, err := chainN.Contains(conj)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

// NormalClosure computes the smallest normal subgroup of G containing S,
// via BFS: seed a fresh chain K with S, then repeatedly conjugate every
// discovered element by every generator of G, inserting any element not
// already seen, until the queue drains. The queue is a plain slice walked
// with an increasing head index, not a linked list or a reslicing dequeue.
func NormalClosure(store *permstore.Store, gGens, s *permset.Set) (*schreiersims.Chain, error) {
	k := schreiersims.New(store)
	seen := make(map[permstore.ID]bool)
	queue := make([]permstore.ID, 0, s.Size())
	for _, id := range s.IDs() {
		if seen[id] {
			continue
		}
		seen[id] = true
		if err := k.Insert(id); err != nil {
			return nil, err
		}
		queue = append(queue, id)
	}

	for head := 0; head < len(queue); head++ {
		n := queue[head]
		for _, g := range gGens.IDs() {
			conj, err := store.Conjugate(g, n)
			if err != nil {
				return nil, err
			}
			if seen[conj] {
				continue
			}
			seen[conj] = true
			if err := k.Insert(conj); err != nil {
				return nil, err
			}
			queue = append(queue, conj)
		}
	}
	log.Debug().Int("generators_seen", len(seen)).Msg("structure: normal closure BFS drained")
	return k, nil
}

// CommutatorSubgroup computes [G,G]: the normal closure in G of the
// pairwise commutators of G's generators (identity commutators skipped).
func CommutatorSubgroup(store *permstore.Store, g *permset.Set) (*schreiersims.Chain, error) {
	gens := g.IDs()
	var commutators []permstore.ID
	for i := 0; i < len(gens); i++ {
		for j := 0; j < len(gens); j++ {
			if i == j {
				continue
			}
			c, err := store.Commutator(gens[i], gens[j])
			if err != nil {
				return nil, err
			}
			if c != permstore.Identity {
				commutators = append(commutators, c)
			}
		}
	}
	s := permset.New(store, commutators, false)
	return NormalClosure(store, g, s)
}

// MixedCommutator computes [A,B]: the normal closure, in the group
// generated by A ∪ B, of the cross-pair commutators {[a,b] | a ∈ A, b ∈ B}.
func MixedCommutator(store *permstore.Store, a, b *permset.Set) (*schreiersims.Chain, error) {
	var commutators []permstore.ID
	for _, ai := range a.IDs() {
		for _, bi := range b.IDs() {
			c, err := store.Commutator(ai, bi)
			if err != nil {
				return nil, err
			}
			if c != permstore.Identity {
				commutators = append(commutators, c)
			}
		}
	}
	s := permset.New(store, commutators, false)
	ab := a.Union(b)
	return NormalClosure(store, ab, s)
}

// DerivedSeries computes G = G(0), G(1) = [G,G], G(n+1) = [G(n), G(n)],
// stopping when the order stabilises (perfect group, not solvable unless
// trivial) or reaches 1 (solvable). Exceeding Limits.MaxDerivedDepth is an
// Overflow error, not a silent stop.
func DerivedSeries(store *permstore.Store, g *permset.Set, limits Limits) ([]*schreiersims.Chain, bool, error) {
	g0, err := schreiersims.Compute(store, g)
	if err != nil {
		return nil, false, err
	}
	series := []*schreiersims.Chain{g0}
	if g0.Order().Cmp(big.NewInt(1)) == 0 {
		return series, true, nil
	}

	currentGens := g
	currentChain := g0
	for depth := 0; depth < limits.MaxDerivedDepth; depth++ {
		next, err := CommutatorSubgroup(store, currentGens)
		if err != nil {
			return nil, false, err
		}
		if next.Order().Cmp(currentChain.Order()) == 0 {
			// stabilised without reaching 1: perfect (non-solvable unless trivial, already handled above)
			return series, false, nil
		}
		series = append(series, next)
		if next.Order().Cmp(big.NewInt(1)) == 0 {
			return series, true, nil
		}
		currentChain = next
		currentGens = permset.New(store, next.StrongGenerators(0), false)
	}
	return series, false, errs.New(errs.Overflow, "derived series exceeded safety depth %d", limits.MaxDerivedDepth)
}

// IsSolvable reports whether the derived series of g reaches {e}.
func IsSolvable(store *permstore.Store, g *permset.Set, limits Limits) (bool, error) {
	_, solvable, err := DerivedSeries(store, g, limits)
	return solvable, err
}

// LowerCentralSeries computes G0 = G, G(n+1) = [G(n), G], stopping when the
// order stabilises or reaches 1. The stabilisation step does not append a
// duplicate trailing entry: the series returned is strictly non-duplicated.
func LowerCentralSeries(store *permstore.Store, g *permset.Set, limits Limits) ([]*schreiersims.Chain, bool, error) {
	g0, err := schreiersims.Compute(store, g)
	if err != nil {
		return nil, false, err
	}
	series := []*schreiersims.Chain{g0}
	if g0.Order().Cmp(big.NewInt(1)) == 0 {
		return series, true, nil
	}

	current := g0
	for depth := 0; depth < limits.MaxLowerCentralLength; depth++ {
		currentSet := permset.New(store, current.StrongGenerators(0), false)
		next, err := MixedCommutator(store, currentSet, g)
		if err != nil {
			return nil, false, err
		}
		if next.Order().Cmp(current.Order()) == 0 {
			// stabilised: do not append the duplicate stabilisation entry
			return series, false, nil
		}
		series = append(series, next)
		if next.Order().Cmp(big.NewInt(1)) == 0 {
			return series, true, nil
		}
		current = next
	}
	return series, false, errs.New(errs.Overflow, "lower-central series exceeded safety length %d", limits.MaxLowerCentralLength)
}

// IsNilpotent reports whether the lower-central series of g reaches {e}.
func IsNilpotent(store *permstore.Store, g *permset.Set, limits Limits) (bool, error) {
	_, nilpotent, err := LowerCentralSeries(store, g, limits)
	return nilpotent, err
}

// IsSimple is a tri-state simplicity test: trivial groups are not simple
// (TriNo); abelian groups are simple iff their order is a small prime
// (TriYes), TriNo if composite, TriUnknown if the order exceeds the
// reliable primality-test range; non-perfect groups are not simple; a
// perfect group is probed via the normal closure of each generator and of
// Limits.SimplicityRandomTrials random elements — any proper closure found
// proves non-simplicity (TriNo), none found is the documented heuristic
// "likely simple" (TriUnknown). This never proves simplicity (TriYes is
// only reached via the small-prime abelian case, matching the abelian
// case's C_p classification).
func IsSimple(store *permstore.Store, g *permset.Set, limits Limits, rng *rand.Rand) (Tri, error) {
	chain, err := schreiersims.Compute(store, g)
	if err != nil {
		return TriUnknown, err
	}
	order := chain.Order()
	if order.Cmp(big.NewInt(1)) == 0 {
		return TriNo, nil
	}

	abelian, err := g.IsAbelian()
	if err != nil {
		return TriUnknown, err
	}
	if abelian {
		if order.BitLen() > limits.PrimeTestBitBound {
			return TriUnknown, nil
		}
		if order.ProbablyPrime(30) {
			return TriYes, nil
		}
		return TriNo, nil
	}

	derived, err := CommutatorSubgroup(store, g)
	if err != nil {
		return TriUnknown, err
	}
	if derived.Order().Cmp(order) != 0 {
		return TriNo, nil // not perfect
	}

	for _, gen := range g.IDs() {
		nc, err := NormalClosure(store, g, permset.New(store, []permstore.ID{gen}, false))
		if err != nil {
			return TriUnknown, err
		}
		if nc.Order().Cmp(order) != 0 {
			return TriNo, nil
		}
	}
	for i := 0; i < limits.SimplicityRandomTrials; i++ {
		elt, err := chain.RandomElement(rng)
		if err != nil {
			return TriUnknown, err
		}
		nc, err := NormalClosure(store, g, permset.New(store, []permstore.ID{elt}, false))
		if err != nil {
			return TriUnknown, err
		}
		if nc.Order().Cmp(order) != 0 {
			return TriNo, nil
		}
	}
	return TriUnknown, nil
}

// GeneratorClassification records whether a candidate generator extended
// the accumulating chain (Fundamental) or was already contained
// (Redundant), plus how many points it moves (a cheap diagnostic for
// judging how "large" a generator is).
type GeneratorClassification struct {
	ID          permstore.ID
	Fundamental bool
	MovedPoints uint
}

// AnalyzeGenerators greedily inserts candidates, in input order, into an
// accumulating chain, classifying each as fundamental (order increased) or
// redundant (already contained) — deterministic given the same input order.
func AnalyzeGenerators(store *permstore.Store, candidates []permstore.ID) ([]GeneratorClassification, error) {
	chain := schreiersims.New(store)
	out := make([]GeneratorClassification, len(candidates))
	for i, id := range candidates {
		before := new(big.Int).Set(chain.Order())
		if err := chain.Insert(id); err != nil {
			return nil, err
		}
		img, err := store.Get(id)
		if err != nil {
			return nil, err
		}
		out[i] = GeneratorClassification{
			ID:          id,
			Fundamental: chain.Order().Cmp(before) != 0,
			MovedPoints: schreiersims.MovedPoints(img).Count(),
		}
	}
	return out, nil
}

// IsomorphismInvariants is a tri-state isomorphism check using only cheap
// invariants (order, abelian-ness, derived-subgroup order): any mismatch
// proves non-isomorphism (TriNo); agreement across all of them is
// inconclusive (TriUnknown). This never returns TriYes: it is an invariant
// filter, not an isomorphism constructor.
func IsomorphismInvariants(store *permstore.Store, g1, g2 *permset.Set) (Tri, error) {
	c1, err := schreiersims.Compute(store, g1)
	if err != nil {
		return TriUnknown, err
	}
	c2, err := schreiersims.Compute(store, g2)
	if err != nil {
		return TriUnknown, err
	}
	if c1.Order().Cmp(c2.Order()) != 0 {
		return TriNo, nil
	}

	ab1, err := g1.IsAbelian()
	if err != nil {
		return TriUnknown, err
	}
	ab2, err := g2.IsAbelian()
	if err != nil {
		return TriUnknown, err
	}
	if ab1 != ab2 {
		return TriNo, nil
	}

	d1, err := CommutatorSubgroup(store, g1)
	if err != nil {
		return TriUnknown, err
	}
	d2, err := CommutatorSubgroup(store, g2)
	if err != nil {
		return TriUnknown, err
	}
	if d1.Order().Cmp(d2.Order()) != 0 {
		return TriNo, nil
	}

	return TriUnknown, nil
}
