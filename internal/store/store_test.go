package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	in := []record{{ID: "1", Amount: 10.5}, {ID: "2", Amount: 20}}
	require.NoError(t, fs.Save(CollectionShipments, in))

	var out []record
	require.NoError(t, fs.Load(CollectionShipments, &out))
	assert.Equal(t, in, out)
}

func TestFileStoreMissingCollectionLoadsEmpty(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var out []record
	require.NoError(t, fs.Load(CollectionTrips, &out))
	assert.Nil(t, out)
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Save(CollectionExpenses, []record{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, fs.Save(CollectionExpenses, []record{{ID: "3"}}))

	var out []record
	require.NoError(t, fs.Load(CollectionExpenses, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "3", out[0].ID)
}

func TestFileStoreOneFilePerCollection(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Save(CollectionShipments, []record{{ID: "1"}}))
	require.NoError(t, fs.Save(CollectionDeletedShipments, []record{{ID: "2"}}))

	_, err = os.Stat(filepath.Join(dir, CollectionShipments+".json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, CollectionDeletedShipments+".json"))
	require.NoError(t, err)
}

func TestMemStoreRoundTrip(t *testing.T) {
	ms := NewMemStore()

	in := []record{{ID: "1", Amount: 99}}
	require.NoError(t, ms.Save(CollectionUsers, in))

	var out []record
	require.NoError(t, ms.Load(CollectionUsers, &out))
	assert.Equal(t, in, out)
}

func TestMemStoreMissingCollectionLoadsEmpty(t *testing.T) {
	ms := NewMemStore()

	var out []record
	require.NoError(t, ms.Load(CollectionUsers, &out))
	assert.Nil(t, out)
}

func TestMemStoreSnapshotIsolation(t *testing.T) {
	ms := NewMemStore()

	in := []record{{ID: "1", Amount: 5}}
	require.NoError(t, ms.Save(CollectionTrips, in))

	// Mutating the slice after Save must not leak into the stored copy.
	in[0].Amount = 500

	var out []record
	require.NoError(t, ms.Load(CollectionTrips, &out))
	require.Len(t, out, 1)
	assert.Equal(t, float64(5), out[0].Amount)
}
