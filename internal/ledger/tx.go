package ledger

import (
	"bytes"
	"fmt"
	"sort"

	dbm "github.com/tendermint/tm-db"
)

// KV is one key/value pair returned by a range scan.
type KV struct {
	Key   []byte
	Value []byte
}

type pendingWrite struct {
	value   []byte
	deleted bool
}

// Tx is a single ledger invocation. Reads see the committed state overlaid
// with the transaction's own staged writes.
type Tx struct {
	db       dbm.DB
	batch    dbm.Batch
	pending  map[string]pendingWrite
	writable bool
}

func newTx(db dbm.DB, writable bool) *Tx {
	tx := &Tx{
		db:       db,
		pending:  map[string]pendingWrite{},
		writable: writable,
	}
	if writable {
		tx.batch = db.NewBatch()
	}
	return tx
}

// Get returns nil when the key is absent.
func (tx *Tx) Get(key []byte) ([]byte, error) {
	if w, ok := tx.pending[string(key)]; ok {
		if w.deleted {
			return nil, nil
		}
		return w.value, nil
	}
	v, err := tx.db.Get(key)
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return v, nil
}

func (tx *Tx) Has(key []byte) (bool, error) {
	v, err := tx.Get(key)
	if err != nil {
		return false, err
	}
	return len(v) > 0, nil
}

func (tx *Tx) Set(key, value []byte) error {
	if !tx.writable {
		return ErrReadOnly
	}
	if err := tx.batch.Set(key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	tx.pending[string(key)] = pendingWrite{value: cp(value)}
	return nil
}

func (tx *Tx) Delete(key []byte) error {
	if !tx.writable {
		return ErrReadOnly
	}
	if err := tx.batch.Delete(key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	tx.pending[string(key)] = pendingWrite{deleted: true}
	return nil
}

// Scan returns every pair whose key starts with prefix, in key order.
// A nil prefix scans the whole ledger.
func (tx *Tx) Scan(prefix []byte) ([]KV, error) {
	it, err := dbm.IteratePrefix(tx.db, prefix)
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", prefix, err)
	}
	defer it.Close()

	var out []KV
	for ; it.Valid(); it.Next() {
		if _, staged := tx.pending[string(it.Key())]; staged {
			continue
		}
		out = append(out, KV{Key: cp(it.Key()), Value: cp(it.Value())})
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("scan %q: %w", prefix, err)
	}

	staged := false
	for k, w := range tx.pending {
		if w.deleted || !bytes.HasPrefix([]byte(k), prefix) {
			continue
		}
		out = append(out, KV{Key: []byte(k), Value: w.value})
		staged = true
	}
	if staged {
		sort.Slice(out, func(i, j int) bool {
			return bytes.Compare(out[i].Key, out[j].Key) < 0
		})
	}
	return out, nil
}

func (tx *Tx) pendingWrites() int { return len(tx.pending) }

func (tx *Tx) commit() error {
	defer tx.discard()
	if len(tx.pending) == 0 {
		return nil
	}
	return tx.batch.WriteSync()
}

func (tx *Tx) discard() {
	if tx.batch != nil {
		_ = tx.batch.Close()
		tx.batch = nil
	}
	tx.pending = map[string]pendingWrite{}
}

func cp(bz []byte) []byte {
	if bz == nil {
		return nil
	}
	out := make([]byte, len(bz))
	copy(out, bz)
	return out
}
