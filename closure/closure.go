// Package closure computes the group generated by a set of permutations by
// iterative fixed-point multiplication, for use when the resulting group is
// small enough to enumerate directly. For larger groups, see schreiersims.
package closure

import (
	"github.com/rs/zerolog"

	"github.com/permgroup/engine/permset"
)

// Close computes the closure of generators under multiplication and
// inversion: G ← S ∪ S⁻¹ ∪ {e}; repeat G ← G ∪ (G·S) until |G| is
// stationary. The fixed point is closed under multiplication, contains
// inverses and the identity, hence is a group.
func Close(generators *permset.Set) (*permset.Set, error) {
	return CloseWithLogger(generators, zerolog.Nop())
}

// CloseWithLogger is Close with an explicit logger for iteration progress.
func CloseWithLogger(generators *permset.Set, log zerolog.Logger) (*permset.Set, error) {
	store := generators.Store()
	inv, err := generators.Inverse()
	if err != nil {
		return nil, err
	}
	g := generators.Union(inv).Union(permset.Identity(store))

	for iteration := 0; ; iteration++ {
		prevSize := g.Size()
		prod, err := g.Product(generators)
		if err != nil {
			return nil, err
		}
		g = g.Union(prod)
		log.Debug().Int("iteration", iteration).Int("size", g.Size()).Msg("closure: iteration")
		if g.Size() == prevSize {
			break
		}
	}
	return g.MarkGroup(true), nil
}
