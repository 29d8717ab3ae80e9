package structure

// Limits collects the safety bounds that keep the randomised and iterative
// algorithms of this package from looping forever. Exceeding one of these
// is an explicit Overflow error, never a silent timeout.
type Limits struct {
	// MaxDerivedDepth bounds the derived-series length.
	MaxDerivedDepth int
	// MaxLowerCentralLength bounds the lower-central-series length.
	MaxLowerCentralLength int
	// SylowTrialBudget bounds random-element trials per Sylow restart.
	SylowTrialBudget int
	// SylowRestartBudget bounds the number of greedy-search restarts.
	SylowRestartBudget int
	// QuotientIndexBound caps the acceptable coset index [G:N].
	QuotientIndexBound int
	// SimplicityRandomTrials bounds the number of random elements probed
	// by the simplicity heuristic after the perfect-group check.
	SimplicityRandomTrials int
	// PrimeTestBitBound is the largest bit-length of |G| for which the
	// simplicity check's primality test is considered reliable; above it,
	// Unknown is returned.
	PrimeTestBitBound int
}

// DefaultLimits returns documented, finite defaults for every bound.
func DefaultLimits() Limits {
	return Limits{
		MaxDerivedDepth:        64,
		MaxLowerCentralLength:  64,
		SylowTrialBudget:       500,
		SylowRestartBudget:     50,
		QuotientIndexBound:     1 << 20,
		SimplicityRandomTrials: 20,
		PrimeTestBitBound:      62,
	}
}
