package data

import (
	"os"
	"path/filepath"
	"testing"

	"energy-ledger/internal/ledger"
	"energy-ledger/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAssetsYAMLList(t *testing.T) {
	path := writeFile(t, "assets.yaml", `
- id: a1
  name: producer1
  type: producer
  orgValue: 1300
- id: a4
  name: consumer1
  type: consumer
  orgValue: "600"
  currValue: 250.5
`)
	records, err := LoadAssets(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	a1, err := records[0].ToModel()
	require.NoError(t, err)
	assert.Equal(t, "1300", a1.CurrValue.String())

	a4, err := records[1].ToModel()
	require.NoError(t, err)
	assert.Equal(t, "600", a4.OrgValue.String())
	assert.Equal(t, "250.5", a4.CurrValue.String())
}

func TestLoadAssetsWrapped(t *testing.T) {
	yamlPath := writeFile(t, "assets.yml", "assets:\n  - {id: a7, name: producer4, type: producer, orgValue: 350}\n")
	records, err := LoadAssets(yamlPath)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a7", records[0].ID)

	jsonPath := writeFile(t, "assets.json", `{"assets":[{"id":"a8","name":"consumer4","type":"consumer","orgValue":450}]}`)
	records, err = LoadAssets(jsonPath)
	require.NoError(t, err)
	require.Len(t, records, 1)
	a8, err := records[0].ToModel()
	require.NoError(t, err)
	assert.Equal(t, "450", a8.CurrValue.String())
}

func TestLoadAssetsJSONList(t *testing.T) {
	path := writeFile(t, "assets.json", `[{"id":"a1","name":"p","type":"producer","orgValue":1.5,"owner":"org1"}]`)
	records, err := LoadAssets(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	a, err := records[0].ToModel()
	require.NoError(t, err)
	assert.Equal(t, "1.5", a.OrgValue.String())
	assert.Equal(t, "org1", a.Owner)
}

func TestRecordRoundTrip(t *testing.T) {
	a, err := model.NewAsset("a1", "producer1", "producer", 1300, 800)
	require.NoError(t, err)
	a.Owner = "org1"

	back, err := RecordFromModel(a).ToModel()
	require.NoError(t, err)
	assert.Equal(t, a.ID, back.ID)
	assert.Equal(t, a.Owner, back.Owner)
	assert.True(t, a.CurrValue.Equal(back.CurrValue))
	assert.True(t, a.OrgValue.Equal(back.OrgValue))
}

func TestMergeAssetRecord(t *testing.T) {
	base := AssetRecord{ID: "a1", Name: "producer1", Type: "producer", OrgValue: 1300}
	merged := MergeAssetRecord(base, AssetRecord{ID: "a1", CurrValue: 10})
	assert.Equal(t, "producer1", merged.Name)
	assert.Equal(t, 1300, merged.OrgValue)
	assert.Equal(t, 10, merged.CurrValue)
}

func TestSnapshotRestoresLedger(t *testing.T) {
	src := ledger.NewMemStore(zap.NewNop())
	defer src.Close()
	a, err := model.NewAsset("a1", "producer1", "producer", 1300, 1300)
	require.NoError(t, err)
	require.NoError(t, src.Update(func(tx *ledger.Tx) error {
		if err := ledger.NewAssets(tx).Put(a); err != nil {
			return err
		}
		return ledger.NewJournal(tx).PutGrid(model.NewGridState(model.DefaultGridPower, ""))
	}))

	snap, err := Export(src)
	require.NoError(t, err)
	require.Len(t, snap.Items, 2)

	path := filepath.Join(t.TempDir(), "nested", "snap.json")
	require.NoError(t, SaveSnapshot(snap, path))
	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)

	dst := ledger.NewMemStore(zap.NewNop())
	defer dst.Close()
	b, err := model.NewAsset("b1", "stale", "consumer", 1, 1)
	require.NoError(t, err)
	require.NoError(t, dst.Update(func(tx *ledger.Tx) error {
		return ledger.NewAssets(tx).Put(b)
	}))

	require.NoError(t, Import(dst, loaded))

	require.NoError(t, dst.View(func(tx *ledger.Tx) error {
		all, err := ledger.NewAssets(tx).List()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "a1", all[0].ID)

		g, ok, err := ledger.NewJournal(tx).Grid()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "10KW", g.String())
		return nil
	}))
}

func TestImportRejectsInvalidAsset(t *testing.T) {
	store := ledger.NewMemStore(zap.NewNop())
	defer store.Close()
	good, err := model.NewAsset("a1", "producer1", "producer", 1300, 1300)
	require.NoError(t, err)
	require.NoError(t, store.Update(func(tx *ledger.Tx) error {
		return ledger.NewAssets(tx).Put(good)
	}))

	bad := &Snapshot{Items: []SnapshotItem{
		{Key: ledger.GridKey, Value: []byte(`{"logLength":0,"power":"10","unit":"KW"}`)},
		{Key: ledger.AssetKey("a2"), Value: []byte(`{"currValue":"-5","id":"a2","name":"p","orgValue":"10","type":"producer"}`)},
	}}
	err = Import(store, bad)
	assert.ErrorIs(t, err, model.ErrMalformedInput)

	mismatched := &Snapshot{Items: []SnapshotItem{
		{Key: ledger.AssetKey("a3"), Value: []byte(`{"currValue":"5","id":"a9","name":"p","orgValue":"10","type":"producer"}`)},
	}}
	assert.ErrorIs(t, Import(store, mismatched), model.ErrMalformedInput)

	garbled := &Snapshot{Items: []SnapshotItem{{Key: ledger.AssetKey("a4"), Value: []byte("not json")}}}
	assert.ErrorIs(t, Import(store, garbled), model.ErrMalformedInput)

	// The ledger is left as it was.
	require.NoError(t, store.View(func(tx *ledger.Tx) error {
		all, err := ledger.NewAssets(tx).List()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "a1", all[0].ID)
		return nil
	}))
}
