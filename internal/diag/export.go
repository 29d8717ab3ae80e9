package diag

import (
	"github.com/ronanh/intcomp"

	"github.com/permgroup/engine/permstore"
)

// ExportIDs compresses a large, ascending ID sequence (e.g. a full orbit
// or coset listing) for inclusion in a diagnostic snapshot, using
// intcomp's FOR-delta integer codec rather than carrying raw int32s.
func ExportIDs(ids []permstore.ID) []uint32 {
	raw := make([]uint32, len(ids))
	for i, id := range ids {
		raw[i] = uint32(id)
	}
	return intcomp.CompressUint32(raw, nil)
}

// ImportIDs reverses ExportIDs, given the original element count.
func ImportIDs(compressed []uint32, n int) []permstore.ID {
	raw := make([]uint32, 0, n)
	raw = intcomp.UncompressUint32(compressed, raw)
	out := make([]permstore.ID, len(raw))
	for i, v := range raw {
		out[i] = permstore.ID(v)
	}
	return out
}
