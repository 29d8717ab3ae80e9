package main

import (
	"fmt"
	"math/big"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/permgroup/engine/permset"
	"github.com/permgroup/engine/permstore"
	"github.com/permgroup/engine/schreiersims"
	"github.com/permgroup/engine/structure"
)

// ScenarioResult captures one end-to-end scenario's outcome for display.
type ScenarioResult struct {
	Name    string
	Order   *big.Int
	Summary string
	Err     error
}

func (r ScenarioResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%-16s FAILED: %v", r.Name, r.Err)
	}
	return fmt.Sprintf("%-16s order=%-25s %s", r.Name, r.Order.String(), r.Summary)
}

type scenarioFunc func(log zerolog.Logger) (ScenarioResult, error)

var allScenarios = map[string]scenarioFunc{
	"s3":         scenarioS3,
	"klein-four": scenarioKleinFour,
	"a5":         scenarioA5,
	"q8":         scenarioQ8,
	"c4":         scenarioC4,
	"rubik":      scenarioRubik,
}

// RunScenarios runs every scenario in allScenarios (or only those named in
// only, when non-empty) concurrently, each against its own isolated
// permstore.Store, via errgroup so a single scenario's error doesn't stop
// the others. Results are returned in a deterministic name-sorted order.
func RunScenarios(log zerolog.Logger, only map[string]bool) ([]ScenarioResult, error) {
	names := make([]string, 0, len(allScenarios))
	for name := range allScenarios {
		if only != nil && !only[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]ScenarioResult, len(names))
	var g errgroup.Group
	for i, name := range names {
		i, name := i, name
		fn := allScenarios[name]
		g.Go(func() error {
			r, err := fn(log.With().Str("scenario", name).Logger())
			if err != nil {
				r = ScenarioResult{Name: name, Err: err}
			}
			results[i] = r
			return nil // individual scenario errors are carried in the result, not propagated
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func register(store *permstore.Store, image []int32) (permstore.ID, error) {
	return store.Register(image)
}

func scenarioS3(log zerolog.Logger) (ScenarioResult, error) {
	store := permstore.New(permstore.WithLogger(log))
	transposition, err := register(store, []int32{1, 0, 2})
	if err != nil {
		return ScenarioResult{}, err
	}
	threeCycle, err := register(store, []int32{1, 2, 0})
	if err != nil {
		return ScenarioResult{}, err
	}
	gens := permset.New(store, []permstore.ID{transposition, threeCycle}, false)

	chain, err := schreiersims.Compute(store, gens, schreiersims.WithLogger(log))
	if err != nil {
		return ScenarioResult{}, err
	}
	abelian, err := gens.IsAbelian()
	if err != nil {
		return ScenarioResult{}, err
	}
	derived, err := structure.CommutatorSubgroup(store, gens)
	if err != nil {
		return ScenarioResult{}, err
	}
	limits := structure.DefaultLimits()
	solvable, err := structure.IsSolvable(store, gens, limits)
	if err != nil {
		return ScenarioResult{}, err
	}
	nilpotent, err := structure.IsNilpotent(store, gens, limits)
	if err != nil {
		return ScenarioResult{}, err
	}
	simple, err := structure.IsSimple(store, gens, limits, rand.New(rand.NewSource(1)))
	if err != nil {
		return ScenarioResult{}, err
	}

	return ScenarioResult{
		Name:  "s3",
		Order: chain.Order(),
		Summary: fmt.Sprintf("abelian=%v derived_order=%s solvable=%v nilpotent=%v simple=%s",
			abelian, derived.Order(), solvable, nilpotent, simple),
	}, nil
}

func scenarioKleinFour(log zerolog.Logger) (ScenarioResult, error) {
	store := permstore.New(permstore.WithLogger(log))
	a, err := register(store, []int32{1, 0, 3, 2})
	if err != nil {
		return ScenarioResult{}, err
	}
	b, err := register(store, []int32{2, 3, 0, 1})
	if err != nil {
		return ScenarioResult{}, err
	}
	gens := permset.New(store, []permstore.ID{a, b}, false)

	chainG, err := schreiersims.Compute(store, gens)
	if err != nil {
		return ScenarioResult{}, err
	}
	abelian, err := gens.IsAbelian()
	if err != nil {
		return ScenarioResult{}, err
	}

	seed := permset.New(store, []permstore.ID{a}, false)
	nc, err := structure.NormalClosure(store, gens, seed)
	if err != nil {
		return ScenarioResult{}, err
	}

	normal, err := structure.IsNormal(store, gens, seed, nc)
	if err != nil {
		return ScenarioResult{}, err
	}

	quotient, err := structure.Quotient(store, gens, chainG, nc, structure.DefaultLimits())
	if err != nil {
		return ScenarioResult{}, err
	}
	chainQ, err := schreiersims.Compute(store, quotient.Generators)
	if err != nil {
		return ScenarioResult{}, err
	}

	return ScenarioResult{
		Name:  "klein-four",
		Order: chainG.Order(),
		Summary: fmt.Sprintf("abelian=%v normal_closure_order=%s is_normal=%v quotient_order=%s quotient_reps=%d",
			abelian, nc.Order(), normal, chainQ.Order(), len(quotient.Representatives)),
	}, nil
}

func scenarioA5(log zerolog.Logger) (ScenarioResult, error) {
	store := permstore.New(permstore.WithLogger(log))
	fiveCycle, err := register(store, []int32{1, 2, 3, 4, 0})
	if err != nil {
		return ScenarioResult{}, err
	}
	threeCycle, err := register(store, []int32{1, 2, 0, 3, 4})
	if err != nil {
		return ScenarioResult{}, err
	}
	gens := permset.New(store, []permstore.ID{fiveCycle, threeCycle}, false)

	chain, err := schreiersims.Compute(store, gens)
	if err != nil {
		return ScenarioResult{}, err
	}
	derived, err := structure.CommutatorSubgroup(store, gens)
	if err != nil {
		return ScenarioResult{}, err
	}
	perfect := derived.Order().Cmp(chain.Order()) == 0
	limits := structure.DefaultLimits()
	solvable, err := structure.IsSolvable(store, gens, limits)
	if err != nil {
		return ScenarioResult{}, err
	}
	simple, err := structure.IsSimple(store, gens, limits, rand.New(rand.NewSource(1)))
	if err != nil {
		return ScenarioResult{}, err
	}

	return ScenarioResult{
		Name:    "a5",
		Order:   chain.Order(),
		Summary: fmt.Sprintf("perfect=%v solvable=%v simple=%s", perfect, solvable, simple),
	}, nil
}

func scenarioQ8(log zerolog.Logger) (ScenarioResult, error) {
	store := permstore.New(permstore.WithLogger(log))
	i, err := register(store, []int32{1, 4, 7, 2, 5, 0, 3, 6})
	if err != nil {
		return ScenarioResult{}, err
	}
	j, err := register(store, []int32{2, 3, 4, 5, 6, 7, 0, 1})
	if err != nil {
		return ScenarioResult{}, err
	}
	gens := permset.New(store, []permstore.ID{i, j}, false)

	chain, err := schreiersims.Compute(store, gens)
	if err != nil {
		return ScenarioResult{}, err
	}
	abelian, err := gens.IsAbelian()
	if err != nil {
		return ScenarioResult{}, err
	}
	derived, err := structure.CommutatorSubgroup(store, gens)
	if err != nil {
		return ScenarioResult{}, err
	}
	limits := structure.DefaultLimits()
	solvable, err := structure.IsSolvable(store, gens, limits)
	if err != nil {
		return ScenarioResult{}, err
	}
	nilpotent, err := structure.IsNilpotent(store, gens, limits)
	if err != nil {
		return ScenarioResult{}, err
	}

	return ScenarioResult{
		Name:  "q8",
		Order: chain.Order(),
		Summary: fmt.Sprintf("abelian=%v derived_order=%s solvable=%v nilpotent=%v",
			abelian, derived.Order(), solvable, nilpotent),
	}, nil
}

func scenarioC4(log zerolog.Logger) (ScenarioResult, error) {
	store := permstore.New(permstore.WithLogger(log))
	c4, err := register(store, []int32{1, 2, 3, 0})
	if err != nil {
		return ScenarioResult{}, err
	}
	gens := permset.New(store, []permstore.ID{c4}, false)

	chain, err := schreiersims.Compute(store, gens)
	if err != nil {
		return ScenarioResult{}, err
	}
	abelian, err := gens.IsAbelian()
	if err != nil {
		return ScenarioResult{}, err
	}
	limits := structure.DefaultLimits()
	simple, err := structure.IsSimple(store, gens, limits, rand.New(rand.NewSource(1)))
	if err != nil {
		return ScenarioResult{}, err
	}
	sylow2, err := structure.Sylow(store, chain, 2, limits, rand.New(rand.NewSource(1)))
	if err != nil {
		return ScenarioResult{}, err
	}

	return ScenarioResult{
		Name:  "c4",
		Order: chain.Order(),
		Summary: fmt.Sprintf("abelian=%v simple=%s sylow2_order=%s",
			abelian, simple, sylow2.Order()),
	}, nil
}

func scenarioRubik(log zerolog.Logger) (ScenarioResult, error) {
	store := permstore.New(permstore.WithLogger(log))
	gens := RubikGenerators()

	var ids []permstore.ID
	for _, move := range faceOrder {
		id, err := register(store, gens[move])
		if err != nil {
			return ScenarioResult{}, err
		}
		ids = append(ids, id)
	}
	genSet := permset.New(store, ids, false)

	chain, err := schreiersims.Compute(store, genSet, schreiersims.WithLogger(log))
	if err != nil {
		return ScenarioResult{}, err
	}

	r := ids[1] // R
	u := ids[0] // U
	rInv, err := store.Inverse(r)
	if err != nil {
		return ScenarioResult{}, err
	}
	uInv, err := store.Inverse(u)
	if err != nil {
		return ScenarioResult{}, err
	}
	ru, err := store.Multiply(r, u)
	if err != nil {
		return ScenarioResult{}, err
	}
	ruRInv, err := store.Multiply(ru, rInv)
	if err != nil {
		return ScenarioResult{}, err
	}
	sexyMove, err := store.Multiply(ruRInv, uInv)
	if err != nil {
		return ScenarioResult{}, err
	}
	isMember, err := chain.Contains(sexyMove)
	if err != nil {
		return ScenarioResult{}, err
	}

	swap := make([]int32, 54)
	for i := range swap {
		swap[i] = int32(i)
	}
	swap[0], swap[1] = swap[1], swap[0]
	swapID, err := register(store, swap)
	if err != nil {
		return ScenarioResult{}, err
	}
	isSwapMember, err := chain.Contains(swapID)
	if err != nil {
		return ScenarioResult{}, err
	}

	return ScenarioResult{
		Name:  "rubik",
		Order: chain.Order(),
		Summary: fmt.Sprintf("base_length=%d r_u_rinv_uinv_member=%v sticker_swap_member=%v",
			len(chain.Base()), isMember, isSwapMember),
	}, nil
}
