package main

import (
	"math/big"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRunScenariosAll(t *testing.T) {
	a := require.New(t)
	results, err := RunScenarios(zerolog.Nop(), nil)
	a.NoError(err)
	a.Len(results, len(allScenarios))

	byName := make(map[string]ScenarioResult, len(results))
	for _, r := range results {
		a.NoError(r.Err, "scenario %s failed", r.Name)
		byName[r.Name] = r
	}

	a.Equal(big.NewInt(6), byName["s3"].Order)
	a.Equal(big.NewInt(4), byName["klein-four"].Order)
	a.Equal(big.NewInt(60), byName["a5"].Order)
	a.Equal(big.NewInt(8), byName["q8"].Order)
	a.Equal(big.NewInt(4), byName["c4"].Order)

	expectedRubikOrder, ok := new(big.Int).SetString("43252003274489856000", 10)
	a.True(ok)
	a.Equal(expectedRubikOrder, byName["rubik"].Order)
}

func TestRunScenariosFilter(t *testing.T) {
	a := require.New(t)
	results, err := RunScenarios(zerolog.Nop(), map[string]bool{"s3": true})
	a.NoError(err)
	a.Len(results, 1)
	a.Equal("s3", results[0].Name)
}
