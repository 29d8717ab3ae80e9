// Package permstore implements the process-wide permutation interner: a
// dense image table plus a radix trie over images, assigning stable
// small-integer IDs to permutations and growing the shared degree on
// demand. It is the arena the rest of the engine (permset, schreiersims,
// structure) builds on; every composition op funnels through here so no ID
// can escape the interner.
package permstore

import (
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/rs/zerolog"

	"github.com/permgroup/engine/internal/errs"
)

// ID identifies an interned permutation. Identity is always ID 0.
type ID int32

// Identity is the reserved ID of the identity permutation.
const Identity ID = 0

// EngineVersion is stamped into every store for diagnostics/logging only;
// it has no bearing on the algebra.
var EngineVersion = semver.MustParse("0.1.0")

// Store is the permutation interner. It owns the image bytes and trie
// memory exclusively; sets and chains elsewhere in the engine reference IDs
// only. A Store is not safe for concurrent use: single-writer discipline is
// the caller's responsibility; tests needing isolation simply construct one
// Store each.
type Store struct {
	log zerolog.Logger

	degree int32
	images []int32 // flat, length count*degree
	count  int32

	trie *trieArena
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithLogger attaches a zerolog.Logger; the default is zerolog.Nop(), so a
// Store stays silent unless a caller opts in, matching how the engine's
// algebra packages are used as a library.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates an empty store. Degree starts at 1 and the identity
// permutation is pre-registered as ID 0, matching the invariant that ID 0
// is always identity.
func New(opts ...Option) *Store {
	s := &Store{
		log:    zerolog.Nop(),
		degree: 1,
		trie:   newTrieArena(1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug().Str("engine_version", EngineVersion.String()).Msg("permstore: new store")
	if _, err := s.Register([]int32{0}); err != nil {
		panic(fmt.Sprintf("permstore: failed to seed identity: %v", err))
	}
	return s
}

// Degree returns the current global degree N.
func (s *Store) Degree() int32 { return s.degree }

// Count returns the number of interned permutations.
func (s *Store) Count() int32 { return s.count }

// Reset replaces all state with a fresh store. Every previously held ID
// becomes invalid; callers must not use them afterward.
func (s *Store) Reset() {
	s.log.Info().Msg("permstore: reset")
	s.degree = 1
	s.images = nil
	s.count = 0
	s.trie = newTrieArena(1)
	if _, err := s.Register([]int32{0}); err != nil {
		panic(fmt.Sprintf("permstore: failed to reseed identity after reset: %v", err))
	}
}

// Register interns a permutation given as a sequence of point images. If
// the sequence is shorter than the current degree it is implicitly
// extended with fixed points; if it is longer, the global degree is
// upgraded first. Registering the same image twice returns the same ID.
func (s *Store) Register(image []int32) (ID, error) {
	for i, v := range image {
		if v < 0 {
			return 0, errs.New(errs.InvalidInput, "image[%d] = %d is negative", i, v)
		}
	}
	if int32(len(image)) > s.degree {
		s.upgradeDegree(int32(len(image)))
	}
	for i, v := range image {
		if v >= s.degree {
			return 0, errs.New(errs.InvalidInput, "image[%d] = %d exceeds degree %d", i, v, s.degree)
		}
	}

	padded := s.pad(image)
	node := s.trie.walk(padded)
	if id := s.trie.idSlot(node); id != nilSlot {
		return ID(id), nil
	}

	id := s.count
	s.trie.setIDSlot(node, id)
	s.images = append(s.images, padded...)
	s.count++
	return ID(id), nil
}

// pad extends image to the current degree with fixed points k -> k.
func (s *Store) pad(image []int32) []int32 {
	out := make([]int32, s.degree)
	copy(out, image)
	for i := int32(len(image)); i < s.degree; i++ {
		out[i] = i
	}
	return out
}

// upgradeDegree grows the global degree, padding every existing
// permutation's image with fixed points and rebuilding the trie at the new
// stride. IDs are preserved; the prefix of every existing image is
// unchanged.
func (s *Store) upgradeDegree(newDegree int32) {
	oldDegree := s.degree
	s.log.Info().Int32("old_degree", oldDegree).Int32("new_degree", newDegree).Msg("permstore: degree upgrade")

	newImages := make([]int32, int(s.count)*int(newDegree))
	for id := int32(0); id < s.count; id++ {
		oldOff := int(id) * int(oldDegree)
		newOff := int(id) * int(newDegree)
		copy(newImages[newOff:newOff+int(oldDegree)], s.images[oldOff:oldOff+int(oldDegree)])
		for k := oldDegree; k < newDegree; k++ {
			newImages[newOff+int(k)] = k
		}
	}
	s.images = newImages
	s.degree = newDegree

	s.trie.reset(newDegree)
	for id := int32(0); id < s.count; id++ {
		off := int(id) * int(newDegree)
		node := s.trie.walk(s.images[off : off+int(newDegree)])
		s.trie.setIDSlot(node, id)
	}
}

// Get returns a read-only view of the N images for id. The slice is only
// valid until the next degree upgrade or Reset.
func (s *Store) Get(id ID) ([]int32, error) {
	if id < 0 || int32(id) >= s.count {
		return nil, errs.New(errs.OutOfBounds, "id %d not interned (count=%d)", id, s.count)
	}
	off := int(id) * int(s.degree)
	return s.images[off : off+int(s.degree) : off+int(s.degree)], nil
}

// Multiply computes c = a·b under the convention (A·B)(x) = A(B(x)).
func (s *Store) Multiply(a, b ID) (ID, error) {
	pa, err := s.Get(a)
	if err != nil {
		return 0, err
	}
	pb, err := s.Get(b)
	if err != nil {
		return 0, err
	}
	out := make([]int32, s.degree)
	for k := range out {
		out[k] = pa[pb[k]]
	}
	return s.Register(out)
}

// Inverse computes c with perm_c[perm_a[k]] = k.
func (s *Store) Inverse(a ID) (ID, error) {
	pa, err := s.Get(a)
	if err != nil {
		return 0, err
	}
	out := make([]int32, s.degree)
	for k, v := range pa {
		out[v] = int32(k)
	}
	return s.Register(out)
}

// Conjugate computes g·h·g⁻¹.
func (s *Store) Conjugate(g, h ID) (ID, error) {
	ginv, err := s.Inverse(g)
	if err != nil {
		return 0, err
	}
	gh, err := s.Multiply(g, h)
	if err != nil {
		return 0, err
	}
	return s.Multiply(gh, ginv)
}

// Commutator computes a⁻¹·b⁻¹·a·b.
func (s *Store) Commutator(a, b ID) (ID, error) {
	ainv, err := s.Inverse(a)
	if err != nil {
		return 0, err
	}
	binv, err := s.Inverse(b)
	if err != nil {
		return 0, err
	}
	left, err := s.Multiply(ainv, binv)
	if err != nil {
		return 0, err
	}
	left, err = s.Multiply(left, a)
	if err != nil {
		return 0, err
	}
	return s.Multiply(left, b)
}

// GetAsCycles decomposes id into 1-based disjoint cycles, fixed points
// omitted; identity is the literal string "()".
func (s *Store) GetAsCycles(id ID) (string, error) {
	image, err := s.Get(id)
	if err != nil {
		return "", err
	}
	return FormatCycles(image), nil
}
