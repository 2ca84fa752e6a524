package config

import (
	"os"
	"path/filepath"
	"testing"

	"energy-ledger/internal/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	g, err := c.InitialGrid()
	require.NoError(t, err)
	assert.Equal(t, "10KW", g.String())

	seed, err := c.SeedAssets()
	require.NoError(t, err)
	require.Len(t, seed, 8)
	assert.Equal(t, "a1", seed[0].ID)
	assert.Equal(t, "1300", seed[0].CurrValue.String())
}

func TestLoadAppliesDefaultsAndAssetsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seed.yaml"), []byte(`
- {id: a1, name: producer1, type: producer, orgValue: 1300}
- {id: a4, name: consumer1, type: consumer, orgValue: 600}
`), 0o644))
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
assets_file: seed.yaml
assets:
  - {id: a4, currValue: 300}
  - {id: a9, name: consumer9, type: consumer, orgValue: 50}
grid:
  initial_power: 25KW
`), 0o644))

	c, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, BackendGoLevelDB, c.Ledger.Backend)
	assert.Equal(t, "data", c.Ledger.Dir)
	assert.Equal(t, "energy", c.Ledger.Name)
	assert.Equal(t, "8080", c.Server.Port)

	g, err := c.InitialGrid()
	require.NoError(t, err)
	assert.Equal(t, "25KW", g.String())

	seed, err := c.SeedAssets()
	require.NoError(t, err)
	require.Len(t, seed, 3)
	assert.Equal(t, "a4", seed[1].ID)
	assert.Equal(t, "600", seed[1].OrgValue.String())
	assert.Equal(t, "300", seed[1].CurrValue.String())
	assert.Equal(t, "a9", seed[2].ID)
}

func TestValidateRejects(t *testing.T) {
	c := Default()
	c.Ledger.Backend = "rocksdb"
	assert.Error(t, c.Validate())

	c = Default()
	c.Grid.InitialPower = "lots"
	assert.Error(t, c.Validate())

	c = Default()
	c.Assets = append(c.Assets, data.AssetRecord{ID: "a1", Name: "dup", Type: "producer", OrgValue: 1})
	assert.Error(t, c.Validate())

	c = Default()
	c.Assets = []data.AssetRecord{{ID: "x", Type: "battery", OrgValue: 1}}
	assert.Error(t, c.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("API_ENV", "production")
	t.Setenv("LEDGER_DIR", "/tmp/ledger")

	c := Default()
	c.ApplyEnv()
	assert.Equal(t, "9090", c.Server.Port)
	assert.Equal(t, "production", c.Server.Env)
	assert.Equal(t, "/tmp/ledger", c.Ledger.Dir)
}

func TestMergeAssetsKeepsOrder(t *testing.T) {
	base := []data.AssetRecord{{ID: "a1"}, {ID: "a2"}}
	out := MergeAssets(base, []data.AssetRecord{{ID: "a3"}, {ID: "a1", Name: "renamed"}})
	require.Len(t, out, 3)
	assert.Equal(t, "renamed", out[0].Name)
	assert.Equal(t, "a3", out[2].ID)
	assert.Empty(t, base[0].Name)
}
