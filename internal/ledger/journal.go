package ledger

import (
	"encoding/json"
	"fmt"

	"energy-ledger/internal/model"
)

// Journal reads and writes the grid state and transaction log records.
// Both live on the ledger next to the assets, so they commit in the same
// batch as the trade that changed them.
type Journal struct {
	tx *Tx
}

func NewJournal(tx *Tx) *Journal {
	return &Journal{tx: tx}
}

// Grid returns the stored grid state and whether one has been written yet.
func (j *Journal) Grid() (model.GridState, bool, error) {
	raw, err := j.tx.Get(GridKey)
	if err != nil {
		return model.GridState{}, false, err
	}
	if len(raw) == 0 {
		return model.GridState{}, false, nil
	}
	var g model.GridState
	if err := json.Unmarshal(raw, &g); err != nil {
		return model.GridState{}, false, fmt.Errorf("decode grid state: %w", err)
	}
	return g, true, nil
}

func (j *Journal) PutGrid(g model.GridState) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode grid state: %w", err)
	}
	return j.tx.Set(GridKey, raw)
}

func (j *Journal) PutEntry(e model.LogEntry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode log entry %d: %w", e.Seq, err)
	}
	return j.tx.Set(LogKey(e.Seq), raw)
}

// Entries returns the whole log in sequence order.
func (j *Journal) Entries() ([]model.LogEntry, error) {
	kvs, err := j.tx.Scan(logPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]model.LogEntry, 0, len(kvs))
	for _, kv := range kvs {
		var e model.LogEntry
		if err := json.Unmarshal(kv.Value, &e); err != nil {
			return nil, fmt.Errorf("decode log entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
