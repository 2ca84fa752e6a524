// Package grid folds settled trading batches into the ledger-backed grid
// power counter and transaction log.
package grid

import (
	"time"

	"energy-ledger/internal/ledger"
	"energy-ledger/internal/model"
	"energy-ledger/internal/trading"

	"github.com/shopspring/decimal"
)

// Accumulator owns the initial grid state used before the first write and the
// clock that stamps log entries.
type Accumulator struct {
	initial model.GridState
	now     func() time.Time
}

func New(initial model.GridState, now func() time.Time) *Accumulator {
	if initial.Unit == "" {
		initial.Unit = model.DefaultGridUnit
	}
	if now == nil {
		now = time.Now
	}
	return &Accumulator{initial: initial, now: now}
}

// Applied reports one batch's effect on the grid.
type Applied struct {
	Before  model.GridState
	After   model.GridState
	Delta   decimal.Decimal
	Entries []model.LogEntry
}

// State returns the stored grid state, or the initial one if nothing has
// been written yet.
func (a *Accumulator) State(j *ledger.Journal) (model.GridState, error) {
	g, ok, err := j.Grid()
	if err != nil {
		return model.GridState{}, err
	}
	if !ok {
		return a.initial, nil
	}
	return g, nil
}

// Init writes the initial grid state unless one already exists.
func (a *Accumulator) Init(j *ledger.Journal) (model.GridState, error) {
	g, ok, err := j.Grid()
	if err != nil {
		return model.GridState{}, err
	}
	if ok {
		return g, nil
	}
	if err := j.PutGrid(a.initial); err != nil {
		return model.GridState{}, err
	}
	return a.initial, nil
}

// Apply adds every settlement's grid delta to the grid power and appends
// their log lines in settlement order. An empty batch writes nothing.
// All entries of one batch share a timestamp.
func (a *Accumulator) Apply(j *ledger.Journal, batch []trading.Settlement) (Applied, error) {
	before, err := a.State(j)
	if err != nil {
		return Applied{}, err
	}
	out := Applied{Before: before, After: before, Delta: decimal.Zero}
	if len(batch) == 0 {
		return out, nil
	}

	at := a.now().UTC()
	after := before
	for _, s := range batch {
		out.Delta = out.Delta.Add(s.GridDelta)
		for _, line := range s.Lines {
			e := model.LogEntry{Seq: after.LogLength, Timestamp: at, Message: line}
			if err := j.PutEntry(e); err != nil {
				return Applied{}, err
			}
			out.Entries = append(out.Entries, e)
			after.LogLength++
		}
	}
	after.Power = before.Power.Add(out.Delta)
	if err := j.PutGrid(after); err != nil {
		return Applied{}, err
	}
	out.After = after
	return out, nil
}
