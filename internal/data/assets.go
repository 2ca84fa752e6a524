package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"energy-ledger/internal/model"

	"gopkg.in/yaml.v3"
)

// AssetRecord is the loosely typed asset shape found in seed files, config and
// request bodies. Values may be numbers or numeric strings; ToModel coerces
// and validates them.
type AssetRecord struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	OrgValue  any    `json:"orgValue" yaml:"orgValue"`
	CurrValue any    `json:"currValue,omitempty" yaml:"currValue,omitempty"`
	Owner     string `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// ToModel converts the record. A missing currValue starts at orgValue.
func (r AssetRecord) ToModel() (model.Asset, error) {
	curr := r.CurrValue
	if curr == nil {
		curr = r.OrgValue
	}
	a, err := model.NewAsset(r.ID, r.Name, r.Type, r.OrgValue, curr)
	if err != nil {
		return model.Asset{}, err
	}
	a.Owner = r.Owner
	return a, nil
}

// RecordFromModel is the inverse of ToModel, used when exporting seeds.
func RecordFromModel(a model.Asset) AssetRecord {
	return AssetRecord{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		OrgValue:  a.OrgValue.String(),
		CurrValue: a.CurrValue.String(),
		Owner:     a.Owner,
	}
}

// MergeAssetRecord overlays non-zero fields from override onto base.
func MergeAssetRecord(base, override AssetRecord) AssetRecord {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Type != "" {
		out.Type = override.Type
	}
	if override.OrgValue != nil {
		out.OrgValue = override.OrgValue
	}
	if override.CurrValue != nil {
		out.CurrValue = override.CurrValue
	}
	if override.Owner != "" {
		out.Owner = override.Owner
	}
	return out
}

type assetsFileWrapper struct {
	Assets []AssetRecord `json:"assets" yaml:"assets"`
}

// LoadAssets reads seed assets from a .json file or a YAML file, either as a
// bare list or wrapped in an "assets" key.
func LoadAssets(path string) ([]AssetRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assets file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return decodeAssetsJSON(raw)
	}
	return decodeAssetsYAML(raw)
}

func decodeAssetsJSON(raw []byte) ([]AssetRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []AssetRecord
		if err := dec.Decode(&list); err != nil {
			return nil, fmt.Errorf("failed to parse assets file: %w", err)
		}
		return list, nil
	}
	var w assetsFileWrapper
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("failed to parse assets file: %w", err)
	}
	return w.Assets, nil
}

func decodeAssetsYAML(raw []byte) ([]AssetRecord, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("failed to parse assets file: %w", err)
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var list []AssetRecord
		if err := node.Decode(&list); err != nil {
			return nil, fmt.Errorf("failed to parse assets file: %w", err)
		}
		return list, nil
	}
	var w assetsFileWrapper
	if err := node.Decode(&w); err != nil {
		return nil, fmt.Errorf("failed to parse assets file: %w", err)
	}
	return w.Assets, nil
}
