// Package schreiersims implements a Schreier-Sims stabiliser chain: a base
// of points, per-level strong generators, and per-level transversals. It
// supports membership testing (sift), incremental insertion, order
// computation, and a one-representative-per-level random-element sampler. Chains
// scale to groups far too large to enumerate directly (e.g. the Rubik's
// cube group), unlike the closure package.
package schreiersims

import (
	"math/big"
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"

	"github.com/permgroup/engine/permset"
	"github.com/permgroup/engine/permstore"
)

// Chain is a Schreier-Sims stabiliser chain over a single permstore.Store.
type Chain struct {
	store        *permstore.Store
	base         []int32
	strongGens   [][]permstore.ID
	transversals []map[int32]permstore.ID
	log          zerolog.Logger
}

// Option configures a Chain at construction.
type Option func(*Chain)

// WithLogger attaches a zerolog.Logger for base-extension / new-generator
// diagnostics. Default is zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(c *Chain) { c.log = l }
}

// New returns an empty chain (empty base) over store.
func New(store *permstore.Store, opts ...Option) *Chain {
	c := &Chain{store: store, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute builds a chain by inserting every generator of the set, then runs
// Schreier-generator completion so the chain is a verified base and strong
// generating set: order equals |closure(generators)| and Contains agrees
// with group membership.
func Compute(store *permstore.Store, generators *permset.Set, opts ...Option) (*Chain, error) {
	c := New(store, opts...)
	for _, g := range generators.IDs() {
		if err := c.Insert(g); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Base returns the ordered base points.
func (c *Chain) Base() []int32 { return append([]int32(nil), c.base...) }

// StrongGenerators returns the strong generators at the given level.
func (c *Chain) StrongGenerators(level int) []permstore.ID {
	return append([]permstore.ID(nil), c.strongGens[level]...)
}

// Transversal returns a copy of the level's point-to-representative map.
func (c *Chain) Transversal(level int) map[int32]permstore.ID {
	out := make(map[int32]permstore.ID, len(c.transversals[level]))
	for k, v := range c.transversals[level] {
		out[k] = v
	}
	return out
}

// Order returns |G| as the product of transversal sizes, using big.Int
// because group orders routinely exceed 64-bit range (e.g. the Rubik's
// cube group).
func (c *Chain) Order() *big.Int {
	order := big.NewInt(1)
	for _, t := range c.transversals {
		order.Mul(order, big.NewInt(int64(len(t))))
	}
	return order
}

// Multiply and Inverse delegate directly to the backing store.
func (c *Chain) Multiply(a, b permstore.ID) (permstore.ID, error) { return c.store.Multiply(a, b) }
func (c *Chain) Inverse(a permstore.ID) (permstore.ID, error)     { return c.store.Inverse(a) }

// Contains reports whether g lies in the group described by this chain, by
// sifting g through every level without mutating the chain.
func (c *Chain) Contains(g permstore.ID) (bool, error) {
	cur := g
	for i, beta := range c.base {
		img, err := c.store.Get(cur)
		if err != nil {
			return false, err
		}
		delta := img[beta]
		u, ok := c.transversals[i][delta]
		if !ok {
			return false, nil
		}
		uinv, err := c.store.Inverse(u)
		if err != nil {
			return false, err
		}
		cur, err = c.store.Multiply(uinv, cur)
		if err != nil {
			return false, err
		}
	}
	return cur == permstore.Identity, nil
}

// Insert sifts g through the chain and, if the chain was inadequate,
// extends it (new strong generator, grown transversal, or a brand-new base
// level) and runs Schreier-generator completion so the chain remains a
// verified BSGS. Orders never decrease.
func (c *Chain) Insert(g permstore.ID) error {
	changed, err := c.insertFrom(g, 0)
	if err != nil {
		return err
	}
	if changed {
		return c.complete()
	}
	return nil
}

// insertFrom is siftAndInsert restricted to levels >= start: h is assumed
// to already fix base points below start (true for Schreier generators,
// which fix the level they were derived from).
func (c *Chain) insertFrom(h permstore.ID, start int) (bool, error) {
	cur := h
	for i := start; i < len(c.base); i++ {
		beta := c.base[i]
		img, err := c.store.Get(cur)
		if err != nil {
			return false, err
		}
		delta := img[beta]
		u, ok := c.transversals[i][delta]
		if ok {
			uinv, err := c.store.Inverse(u)
			if err != nil {
				return false, err
			}
			cur, err = c.store.Multiply(uinv, cur)
			if err != nil {
				return false, err
			}
			continue
		}
		// cur fixes every base point below i, so it belongs to S_j for all j <= i.
		for j := 0; j <= i; j++ {
			c.strongGens[j] = append(c.strongGens[j], cur)
			if err := c.growTransversal(j); err != nil {
				return false, err
			}
		}
		c.log.Debug().Int("level", i).Msg("schreiersims: new strong generator")
		return true, nil
	}

	if cur == permstore.Identity {
		return false, nil
	}

	img, err := c.store.Get(cur)
	if err != nil {
		return false, err
	}
	p := firstMovedPoint(img)
	c.base = append(c.base, p)
	c.strongGens = append(c.strongGens, nil)
	c.transversals = append(c.transversals, map[int32]permstore.ID{p: permstore.Identity})
	c.log.Info().Int("level", len(c.base)-1).Int32("base_point", p).Msg("schreiersims: base extended")
	for j := range c.base {
		c.strongGens[j] = append(c.strongGens[j], cur)
		if err := c.growTransversal(j); err != nil {
			return false, err
		}
	}
	return true, nil
}

// growTransversal extends T_i by BFS from currently-reached points,
// applying every s in S_i, until no new points appear. T_i[beta_i] is
// always the identity by construction.
func (c *Chain) growTransversal(level int) error {
	beta := c.base[level]
	t := c.transversals[level]
	if _, ok := t[beta]; !ok {
		t[beta] = permstore.Identity
	}

	changed := true
	for changed {
		changed = false
		for delta, u := range t {
			for _, s := range c.strongGens[level] {
				img, err := c.store.Get(s)
				if err != nil {
					return err
				}
				gamma := img[delta]
				if _, ok := t[gamma]; ok {
					continue
				}
				rep, err := c.store.Multiply(s, u)
				if err != nil {
					return err
				}
				t[gamma] = rep
				changed = true
			}
		}
	}
	return nil
}

// complete runs the Schreier-generator verification loop: for every level
// and every (strong generator, orbit point) pair, it derives the Schreier
// generator u_{s(delta)}^{-1} · s · u_delta (which fixes beta_i by
// construction) and sifts it starting one level deeper, inserting any
// non-trivial residue. Repeats until a full pass makes no changes.
func (c *Chain) complete() error {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(c.base); i++ {
			t := c.transversals[i]
			deltas := make([]int32, 0, len(t))
			for delta := range t {
				deltas = append(deltas, delta)
			}
			gens := append([]permstore.ID(nil), c.strongGens[i]...)
			for _, s := range gens {
				img, err := c.store.Get(s)
				if err != nil {
					return err
				}
				for _, delta := range deltas {
					u := t[delta]
					gamma := img[delta]
					uGamma, ok := t[gamma]
					if !ok {
						continue
					}
					uGammaInv, err := c.store.Inverse(uGamma)
					if err != nil {
						return err
					}
					su, err := c.store.Multiply(s, u)
					if err != nil {
						return err
					}
					schreier, err := c.store.Multiply(uGammaInv, su)
					if err != nil {
						return err
					}
					if schreier == permstore.Identity {
						continue
					}
					didChange, err := c.insertFrom(schreier, i+1)
					if err != nil {
						return err
					}
					if didChange {
						changed = true
					}
				}
			}
		}
	}
	return nil
}

// RandomElement picks one uniformly random representative from each
// transversal and multiplies them in base order. Every group element is the
// product u_0·u_1·…·u_{d-1} of exactly one representative per level, so on
// a complete chain the result is uniform over the group.
func (c *Chain) RandomElement(rng *rand.Rand) (permstore.ID, error) {
	result := permstore.Identity
	for _, t := range c.transversals {
		idx := rng.Intn(len(t))
		var rep permstore.ID
		i := 0
		for _, v := range t {
			if i == idx {
				rep = v
				break
			}
			i++
		}
		next, err := c.store.Multiply(result, rep)
		if err != nil {
			return 0, err
		}
		result = next
	}
	return result, nil
}

func firstMovedPoint(img []int32) int32 {
	for i, v := range img {
		if v != int32(i) {
			return int32(i)
		}
	}
	return -1
}

// MovedPoints returns a bitset of points moved by the permutation with
// image img, used by structural analysis (structure.AnalyzeGenerators) to
// report each candidate generator's support size cheaply.
func MovedPoints(img []int32) *bitset.BitSet {
	b := bitset.New(uint(len(img)))
	for i, v := range img {
		if v != int32(i) {
			b.Set(uint(i))
		}
	}
	return b
}
