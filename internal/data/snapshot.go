package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"energy-ledger/internal/ledger"
	"energy-ledger/internal/model"
)

// Snapshot is a raw export of every ledger record: assets, grid state and
// transaction log. Keys and values are kept as bytes (base64 in JSON) so a
// restore reproduces the ledger exactly.
type Snapshot struct {
	CreatedAt time.Time      `json:"created_at"`
	Items     []SnapshotItem `json:"items"`
}

type SnapshotItem struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

func Export(store *ledger.Store) (*Snapshot, error) {
	snap := &Snapshot{CreatedAt: time.Now().UTC()}
	err := store.View(func(tx *ledger.Tx) error {
		kvs, err := tx.Scan(nil)
		if err != nil {
			return err
		}
		snap.Items = make([]SnapshotItem, 0, len(kvs))
		for _, kv := range kvs {
			snap.Items = append(snap.Items, SnapshotItem{Key: kv.Key, Value: kv.Value})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export ledger: %w", err)
	}
	return snap, nil
}

// Import replaces the whole ledger content with the snapshot in one batch.
// Asset records are validated first; an invalid one aborts the import and
// leaves the ledger as it was.
func Import(store *ledger.Store, snap *Snapshot) error {
	for _, item := range snap.Items {
		if err := validateItem(item); err != nil {
			return fmt.Errorf("import ledger: %w", err)
		}
	}
	err := store.Update(func(tx *ledger.Tx) error {
		existing, err := tx.Scan(nil)
		if err != nil {
			return err
		}
		for _, kv := range existing {
			if err := tx.Delete(kv.Key); err != nil {
				return err
			}
		}
		for _, item := range snap.Items {
			if err := tx.Set(item.Key, item.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import ledger: %w", err)
	}
	return nil
}

func validateItem(item SnapshotItem) error {
	if len(item.Value) == 0 {
		return fmt.Errorf("%w: empty value for key %q", model.ErrMalformedInput, item.Key)
	}
	if !ledger.IsAssetKey(item.Key) {
		return nil
	}
	id, err := ledger.AssetIDFromKey(item.Key)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
	}
	a, err := ledger.DecodeAsset(item.Value)
	if err != nil {
		return fmt.Errorf("%w: asset %q: %v", model.ErrMalformedInput, id, err)
	}
	if a.ID != id {
		return fmt.Errorf("%w: asset key %q holds id %q", model.ErrMalformedInput, id, a.ID)
	}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("asset %q: %w", id, err)
	}
	return nil
}

// SaveSnapshot writes a snapshot to a JSON file
func SaveSnapshot(snap *Snapshot, filePath string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}

// LoadSnapshot loads a snapshot from a JSON file
func LoadSnapshot(filePath string) (*Snapshot, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}

	return &snap, nil
}
