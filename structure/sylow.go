package structure

import (
	"math/big"
	"math/rand"

	"github.com/permgroup/engine/internal/errs"
	"github.com/permgroup/engine/permstore"
	"github.com/permgroup/engine/schreiersims"
)

// elementOrder computes the multiplicative order of a permutation as the
// LCM of its cycle lengths. Orders stay small relative to degree even when
// the overall group order requires big.Int, so int64 is safe here.
func elementOrder(store *permstore.Store, id permstore.ID) (int64, error) {
	img, err := store.Get(id)
	if err != nil {
		return 0, err
	}
	seen := make([]bool, len(img))
	order := int64(1)
	for start := range img {
		if seen[start] {
			continue
		}
		length := int64(0)
		for i := start; !seen[i]; i = int(img[i]) {
			seen[i] = true
			length++
		}
		if length > 1 {
			order = lcm(order, length)
		}
	}
	return order, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int64) int64 {
	return a / gcd(a, b) * b
}

// PowID computes id^n (n >= 0) by square-and-multiply through the store,
// so every intermediate power stays interned.
func PowID(store *permstore.Store, id permstore.ID, n int64) (permstore.ID, error) {
	if n < 0 {
		return 0, errs.New(errs.InvalidInput, "PowID: negative exponent %d", n)
	}
	result := permstore.Identity
	base := id
	for n > 0 {
		if n&1 == 1 {
			next, err := store.Multiply(result, base)
			if err != nil {
				return 0, err
			}
			result = next
		}
		n >>= 1
		if n > 0 {
			next, err := store.Multiply(base, base)
			if err != nil {
				return 0, err
			}
			base = next
		}
	}
	return result, nil
}

// extractPPart returns id raised to the co-p-part exponent, yielding an
// element whose order is the p-power part of order (identity if order has
// no p factor).
func extractPPart(store *permstore.Store, id permstore.ID, order int64, p int64) (permstore.ID, error) {
	m := order
	for m%p == 0 {
		m /= p
	}
	if m == order {
		// order has no factor of p at all: the p-part is trivial
		return permstore.Identity, nil
	}
	return PowID(store, id, m)
}

// pPartExponent returns the largest a with p^a dividing n, and n/p^a.
func pPartExponent(n *big.Int, p int64) (int, *big.Int) {
	pBig := big.NewInt(p)
	rem := new(big.Int).Set(n)
	a := 0
	mod := new(big.Int)
	for {
		mod.Mod(rem, pBig)
		if mod.Sign() != 0 {
			break
		}
		rem.Div(rem, pBig)
		a++
	}
	return a, rem
}

// Sylow constructs a Sylow p-subgroup of the group described by chainG via
// randomised greedy search: repeatedly sample a random element, extract
// its p-part, and insert it into an accumulating chain, restarting from
// empty whenever a trial budget is exhausted, until the accumulated order
// reaches p^a (a = the p-adic valuation of |G|). Exhausting the restart
// budget is an Overflow error rather than an infinite retry.
func Sylow(store *permstore.Store, chainG *schreiersims.Chain, p int64, limits Limits, rng *rand.Rand) (*schreiersims.Chain, error) {
	a, _ := pPartExponent(chainG.Order(), p)
	target := new(big.Int).Exp(big.NewInt(p), big.NewInt(int64(a)), nil)
	if a == 0 {
		return schreiersims.New(store), nil // trivial Sylow subgroup
	}

	for restart := 0; restart < limits.SylowRestartBudget; restart++ {
		k := schreiersims.New(store)
		for trial := 0; trial < limits.SylowTrialBudget; trial++ {
			g, err := chainG.RandomElement(rng)
			if err != nil {
				return nil, err
			}
			ord, err := elementOrder(store, g)
			if err != nil {
				return nil, err
			}
			ppart, err := extractPPart(store, g, ord, p)
			if err != nil {
				return nil, err
			}
			if ppart == permstore.Identity {
				continue
			}
			if err := k.Insert(ppart); err != nil {
				return nil, err
			}
			if k.Order().Cmp(target) == 0 {
				log.Debug().Int64("p", p).Int("restart", restart).Int("trial", trial).Msg("structure: sylow subgroup found")
				return k, nil
			}
			if k.Order().Cmp(target) > 0 {
				break // overshot this restart's accumulation, try a fresh one
			}
		}
	}
	return nil, errs.New(errs.Overflow, "sylow-%d search exhausted restart budget %d", p, limits.SylowRestartBudget)
}
