package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"energy-ledger/internal/data"
	"energy-ledger/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load seed assets from a separate YAML or JSON file.
	// Inline Assets with the same id override entries from AssetsFile.
	AssetsFile string             `yaml:"assets_file"`
	Assets     []data.AssetRecord `yaml:"assets"`
	Ledger     LedgerConfig       `yaml:"ledger"`
	Grid       GridConfig         `yaml:"grid"`
	Server     ServerConfig       `yaml:"server"`
}

type LedgerConfig struct {
	Backend string `yaml:"backend"` // goleveldb | memdb
	Dir     string `yaml:"dir"`
	Name    string `yaml:"name"`
}

type GridConfig struct {
	// InitialPower may carry the unit suffix, e.g. "10KW".
	InitialPower any    `yaml:"initial_power"`
	Unit         string `yaml:"unit"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	Env            string   `yaml:"env"` // "production" switches gin and zap to release mode
	AllowedOrigins []string `yaml:"allowed_origins"`
}

const (
	BackendGoLevelDB = "goleveldb"
	BackendMemDB     = "memdb"
)

// Default is used when no config file is given: an in-memory ledger seeded
// with the demo asset set.
func Default() *Config {
	return &Config{
		Assets: DefaultAssets(),
		Ledger: LedgerConfig{Backend: BackendMemDB, Name: "energy"},
		Grid:   GridConfig{InitialPower: model.DefaultGridPower.String(), Unit: model.DefaultGridUnit},
		Server: ServerConfig{Port: "8080"},
	}
}

// DefaultAssets is the demo ledger: four producers and four consumers.
func DefaultAssets() []data.AssetRecord {
	return []data.AssetRecord{
		{ID: "a1", Name: "producer1", Type: "producer", OrgValue: 1300, CurrValue: 1300},
		{ID: "a2", Name: "producer2", Type: "producer", OrgValue: 1400, CurrValue: 1400},
		{ID: "a3", Name: "producer3", Type: "producer", OrgValue: 1500, CurrValue: 1500},
		{ID: "a4", Name: "consumer1", Type: "consumer", OrgValue: 600, CurrValue: 600},
		{ID: "a5", Name: "consumer2", Type: "consumer", OrgValue: 700, CurrValue: 700},
		{ID: "a6", Name: "consumer3", Type: "consumer", OrgValue: 800, CurrValue: 800},
		{ID: "a7", Name: "producer4", Type: "producer", OrgValue: 350, CurrValue: 350},
		{ID: "a8", Name: "consumer4", Type: "consumer", OrgValue: 450, CurrValue: 450},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.AssetsFile != "" {
		assetsPath := c.AssetsFile
		if !filepath.IsAbs(assetsPath) {
			// Prefer paths relative to the config file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), assetsPath)
			if _, err := os.Stat(cand); err == nil {
				assetsPath = cand
			}
		}
		loaded, err := data.LoadAssets(assetsPath)
		if err != nil {
			return nil, err
		}
		c.Assets = MergeAssets(loaded, c.Assets)
	}
	return &c, nil
}

// ApplyEnv overlays environment overrides: API_PORT, API_ENV, LEDGER_DIR.
func (c *Config) ApplyEnv() {
	if port := os.Getenv("API_PORT"); port != "" {
		c.Server.Port = port
	}
	if env := os.Getenv("API_ENV"); env != "" {
		c.Server.Env = env
	}
	if dir := os.Getenv("LEDGER_DIR"); dir != "" {
		c.Ledger.Dir = dir
	}
}

func (c *Config) applyDefaults() {
	if c.Ledger.Backend == "" {
		c.Ledger.Backend = BackendGoLevelDB
	}
	if c.Ledger.Name == "" {
		c.Ledger.Name = "energy"
	}
	if c.Ledger.Backend == BackendGoLevelDB && c.Ledger.Dir == "" {
		c.Ledger.Dir = "data"
	}
	if c.Grid.InitialPower == nil {
		c.Grid.InitialPower = model.DefaultGridPower.String()
	}
	if c.Grid.Unit == "" {
		c.Grid.Unit = model.DefaultGridUnit
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch c.Ledger.Backend {
	case BackendGoLevelDB, BackendMemDB:
	default:
		return fmt.Errorf("ledger.backend must be %q or %q, got %q", BackendGoLevelDB, BackendMemDB, c.Ledger.Backend)
	}
	if _, err := c.InitialGrid(); err != nil {
		return fmt.Errorf("grid config invalid: %w", err)
	}
	if _, err := c.SeedAssets(); err != nil {
		return fmt.Errorf("assets config invalid: %w", err)
	}
	return nil
}

// InitialGrid parses the configured starting grid power.
func (c *Config) InitialGrid() (model.GridState, error) {
	unit := c.Grid.Unit
	if unit == "" {
		unit = model.DefaultGridUnit
	}
	v := c.Grid.InitialPower
	if s, ok := v.(string); ok {
		v = strings.TrimSuffix(strings.TrimSpace(s), unit)
	}
	power, err := model.ParseValue(v)
	if err != nil {
		return model.GridState{}, fmt.Errorf("initial_power: %w", err)
	}
	return model.NewGridState(power, unit), nil
}

// SeedAssets converts the configured records to validated assets.
func (c *Config) SeedAssets() ([]model.Asset, error) {
	out := make([]model.Asset, 0, len(c.Assets))
	seen := make(map[string]bool, len(c.Assets))
	for i, r := range c.Assets {
		a, err := r.ToModel()
		if err != nil {
			return nil, fmt.Errorf("asset %d (%s): %w", i, r.ID, err)
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("asset %d: duplicate id %q", i, a.ID)
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out, nil
}

// MergeAssets overlays override records onto base by id. Records only in
// override are appended in their original order.
func MergeAssets(base, override []data.AssetRecord) []data.AssetRecord {
	out := make([]data.AssetRecord, len(base))
	copy(out, base)
	index := make(map[string]int, len(out))
	for i, r := range out {
		index[r.ID] = i
	}
	for _, r := range override {
		if i, ok := index[r.ID]; ok {
			out[i] = data.MergeAssetRecord(out[i], r)
			continue
		}
		index[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}
