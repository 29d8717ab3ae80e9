// Package diag implements diagnostic snapshotting for chains and sets: a
// compact CBOR encoding of a Schreier-Sims chain or permutation set,
// bit-packed membership payloads, and CPU-profile capture for the
// scenario runner. None of this sits on any algebra code path; it exists
// purely for offline inspection and bug reports.
package diag

import (
	"bytes"
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/icza/bitio"
	"golang.org/x/crypto/blake2b"

	"github.com/permgroup/engine/permstore"
	"github.com/permgroup/engine/schreiersims"
)

// ChainSnapshot is the CBOR-serialisable shape of a Schreier-Sims chain:
// base points, strong generators per level (as raw images, so a snapshot
// is self-contained and portable across stores), and the order.
type ChainSnapshot struct {
	Base            []int32     `cbor:"base"`
	StrongGenerators [][][]int32 `cbor:"strong_generators"`
	Order           []byte      `cbor:"order"` // big.Int.Bytes()
	EngineVersion   string      `cbor:"engine_version"`
}

// SnapshotChain captures a portable snapshot of chain, resolving every
// strong-generator ID to its raw image via store.
func SnapshotChain(store *permstore.Store, chain *schreiersims.Chain) (ChainSnapshot, error) {
	base := chain.Base()
	gens := make([][][]int32, len(base))
	for level := range base {
		ids := chain.StrongGenerators(level)
		gens[level] = make([][]int32, len(ids))
		for i, id := range ids {
			img, err := store.Get(id)
			if err != nil {
				return ChainSnapshot{}, err
			}
			gens[level][i] = append([]int32(nil), img...)
		}
	}
	return ChainSnapshot{
		Base:             base,
		StrongGenerators: gens,
		Order:            chain.Order().Bytes(),
		EngineVersion:    permstore.EngineVersion.String(),
	}, nil
}

// Encode serialises a snapshot to CBOR bytes.
func Encode(snap ChainSnapshot) ([]byte, error) {
	return cbor.Marshal(snap)
}

// Decode parses a CBOR-encoded snapshot and reconstructs its order as a
// big.Int for convenience.
func Decode(data []byte) (ChainSnapshot, *big.Int, error) {
	var snap ChainSnapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return ChainSnapshot{}, nil, err
	}
	order := new(big.Int).SetBytes(snap.Order)
	return snap, order, nil
}

// ContentKey returns a blake2b-256 digest of snap's canonical CBOR
// encoding, for use as a cache/dedup key when the same chain is snapshotted
// repeatedly (e.g. across scenario runs) — two snapshots with identical
// base, strong generators, and order hash identically regardless of when
// they were captured.
func ContentKey(snap ChainSnapshot) ([32]byte, error) {
	encoded, err := Encode(snap)
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(encoded), nil
}

// SetSnapshot is the bit-packed membership payload for a permutation set:
// one bit per interned ID up to the store's current count, set if that ID
// is a member. Intended for compact inclusion in bug reports alongside a
// ChainSnapshot, not for round-tripping full permutation data.
type SetSnapshot struct {
	Count int32
	Bits  []byte
}

// PackMembership bit-packs membership of ids (assumed < count) using
// icza/bitio, one bit per interned ID.
func PackMembership(count int32, ids []permstore.ID) (SetSnapshot, error) {
	member := make(map[permstore.ID]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for id := permstore.ID(0); id < permstore.ID(count); id++ {
		if err := w.WriteBool(member[id]); err != nil {
			return SetSnapshot{}, err
		}
	}
	if err := w.Close(); err != nil {
		return SetSnapshot{}, err
	}
	return SetSnapshot{Count: count, Bits: buf.Bytes()}, nil
}

// UnpackMembership inverts PackMembership, returning the member IDs.
func UnpackMembership(snap SetSnapshot) ([]permstore.ID, error) {
	r := bitio.NewReader(bytes.NewReader(snap.Bits))
	var ids []permstore.ID
	for id := int32(0); id < snap.Count; id++ {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		if bit {
			ids = append(ids, permstore.ID(id))
		}
	}
	return ids, nil
}
