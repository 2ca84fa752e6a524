package trading

import (
	"fmt"

	"energy-ledger/internal/model"

	"github.com/shopspring/decimal"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run matches up to n pairs from the asset snapshot and settles each one in
// order. It is pure: persisting the updated assets and folding the net delta
// into the grid is the caller's job. n may be Unbounded; any other negative
// count is rejected.
func (e *Engine) Run(assets []model.Asset, n int) (*Result, error) {
	if n < 0 && n != Unbounded {
		return nil, fmt.Errorf("%w: trade count must be >= 0, got %d", model.ErrMalformedInput, n)
	}

	pairs := Match(assets, n)
	res := &Result{
		Settlements:  make([]Settlement, 0, len(pairs)),
		Rows:         make([]Row, 0, len(pairs)),
		NetGridDelta: decimal.Zero,
	}

	for idx, p := range pairs {
		s := Settle(p)
		res.NetGridDelta = res.NetGridDelta.Add(s.GridDelta)
		res.Settlements = append(res.Settlements, s)

		res.Rows = append(res.Rows, Row{
			Index: idx,

			ProducerID:   p.Producer.ID,
			ProducerName: p.Producer.Name,
			ConsumerID:   p.Consumer.ID,
			ConsumerName: p.Consumer.Name,

			Outcome: s.Outcome,

			ProducerBefore: p.Producer.CurrValue,
			ProducerAfter:  s.Producer.CurrValue,
			ConsumerBefore: p.Consumer.CurrValue,
			ConsumerAfter:  s.Consumer.CurrValue,

			TransferredKW: s.Transferred,
			FromGridKW:    s.FromGrid,

			GridDelta:    s.GridDelta,
			CumGridDelta: res.NetGridDelta,
		})
	}
	return res, nil
}

// UpdatedAssets returns the post-trade assets in settlement order,
// producer before consumer.
func (r *Result) UpdatedAssets() []model.Asset {
	out := make([]model.Asset, 0, 2*len(r.Settlements))
	for _, s := range r.Settlements {
		out = append(out, s.Producer, s.Consumer)
	}
	return out
}
