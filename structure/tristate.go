package structure

// Tri is the tri-state result of a decision procedure whose strict solution
// is out of scope (simplicity, isomorphism): Unknown rather than a forced
// Yes/No is a first-class, legitimate outcome.
type Tri int

const (
	// TriUnknown means the procedure found no evidence either way
	// (e.g. a likely-simple group that survived every closure probed).
	TriUnknown Tri = -1
	// TriNo means the procedure found a definite counter-witness.
	TriNo Tri = 0
	// TriYes means the procedure proved the property holds.
	TriYes Tri = 1
)

func (t Tri) String() string {
	switch t {
	case TriYes:
		return "yes"
	case TriNo:
		return "no"
	default:
		return "unknown"
	}
}
