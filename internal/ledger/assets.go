package ledger

import (
	"encoding/json"
	"fmt"

	"energy-ledger/internal/model"
)

// Assets translates ledger records to and from model.Asset within one
// transaction.
type Assets struct {
	tx *Tx
}

func NewAssets(tx *Tx) *Assets {
	return &Assets{tx: tx}
}

func (r *Assets) Exists(id string) (bool, error) {
	return r.tx.Has(AssetKey(id))
}

func (r *Assets) Get(id string) (model.Asset, error) {
	raw, err := r.tx.Get(AssetKey(id))
	if err != nil {
		return model.Asset{}, err
	}
	if len(raw) == 0 {
		return model.Asset{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return DecodeAsset(raw)
}

// Create stores a new asset, failing if the id is taken.
func (r *Assets) Create(a model.Asset) error {
	exists, err := r.Exists(a.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, a.ID)
	}
	return r.Put(a)
}

// Update replaces an existing asset, failing if the id is absent.
func (r *Assets) Update(a model.Asset) error {
	exists, err := r.Exists(a.ID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, a.ID)
	}
	return r.Put(a)
}

// Put writes the asset unconditionally.
func (r *Assets) Put(a model.Asset) error {
	raw, err := EncodeAsset(a)
	if err != nil {
		return err
	}
	return r.tx.Set(AssetKey(a.ID), raw)
}

func (r *Assets) Delete(id string) error {
	exists, err := r.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.tx.Delete(AssetKey(id))
}

// List returns every asset in id order.
func (r *Assets) List() ([]model.Asset, error) {
	kvs, err := r.tx.Scan(assetPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]model.Asset, 0, len(kvs))
	for _, kv := range kvs {
		a, err := DecodeAsset(kv.Value)
		if err != nil {
			id, _ := AssetIDFromKey(kv.Key)
			return nil, fmt.Errorf("asset %q: %w", id, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// EncodeAsset produces the canonical byte form of an asset. model.Asset
// declares its fields in key order, so encoding/json output is reproducible.
func EncodeAsset(a model.Asset) ([]byte, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode asset %s: %w", a.ID, err)
	}
	return raw, nil
}

func DecodeAsset(raw []byte) (model.Asset, error) {
	var a model.Asset
	if err := json.Unmarshal(raw, &a); err != nil {
		return model.Asset{}, fmt.Errorf("decode asset: %w", err)
	}
	return a, nil
}
