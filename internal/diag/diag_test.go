package diag_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/permgroup/engine/internal/diag"
	"github.com/permgroup/engine/permset"
	"github.com/permgroup/engine/permstore"
	"github.com/permgroup/engine/schreiersims"
)

func TestSnapshotChainRoundTrip(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	transposition, err := store.Register([]int32{1, 0, 2})
	a.NoError(err)
	threeCycle, err := store.Register([]int32{1, 2, 0})
	a.NoError(err)
	gens := permset.New(store, []permstore.ID{transposition, threeCycle}, false)

	chain, err := schreiersims.Compute(store, gens)
	a.NoError(err)

	snap, err := diag.SnapshotChain(store, chain)
	a.NoError(err)
	encoded, err := diag.Encode(snap)
	a.NoError(err)

	decoded, order, err := diag.Decode(encoded)
	a.NoError(err)
	a.Equal(chain.Order().String(), order.String())
	if diff := cmp.Diff(snap, decoded); diff != "" {
		t.Fatalf("snapshot changed across encode/decode round trip (-want +got):\n%s", diff)
	}
}

func TestPackUnpackMembership(t *testing.T) {
	a := require.New(t)
	ids := []permstore.ID{0, 2, 5, 9}
	snap, err := diag.PackMembership(10, ids)
	a.NoError(err)

	out, err := diag.UnpackMembership(snap)
	a.NoError(err)
	a.Equal(ids, out)
}

func TestExportImportIDs(t *testing.T) {
	a := require.New(t)
	ids := []permstore.ID{1, 2, 3, 7, 8, 20}
	compressed := diag.ExportIDs(ids)
	restored := diag.ImportIDs(compressed, len(ids))
	a.Equal(ids, restored)
}

func TestContentKeyIsStableAndDiscriminating(t *testing.T) {
	a := require.New(t)
	store := permstore.New()
	transposition, err := store.Register([]int32{1, 0, 2})
	a.NoError(err)
	threeCycle, err := store.Register([]int32{1, 2, 0})
	a.NoError(err)
	s3 := permset.New(store, []permstore.ID{transposition, threeCycle}, false)
	a3 := permset.New(store, []permstore.ID{threeCycle}, false)

	chainS3, err := schreiersims.Compute(store, s3)
	a.NoError(err)
	chainA3, err := schreiersims.Compute(store, a3)
	a.NoError(err)

	snapS3, err := diag.SnapshotChain(store, chainS3)
	a.NoError(err)
	snapS3Again, err := diag.SnapshotChain(store, chainS3)
	a.NoError(err)
	snapA3, err := diag.SnapshotChain(store, chainA3)
	a.NoError(err)

	keyS3, err := diag.ContentKey(snapS3)
	a.NoError(err)
	keyS3Again, err := diag.ContentKey(snapS3Again)
	a.NoError(err)
	keyA3, err := diag.ContentKey(snapA3)
	a.NoError(err)

	a.Equal(keyS3, keyS3Again, "snapshotting the same chain twice must hash identically")
	a.NotEqual(keyS3, keyA3, "distinct groups must not collide")
}
