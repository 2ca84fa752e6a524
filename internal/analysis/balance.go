package analysis

import (
	"energy-ledger/internal/model"
	"energy-ledger/internal/trading"

	"github.com/shopspring/decimal"
)

// Balance is a ledger-level summary of open supply and demand.
// It does not change anything; ProjectedGridDelta is what an unbounded
// trade would add to grid power right now.
type Balance struct {
	Producers int `json:"producers"`
	Consumers int `json:"consumers"`

	TotalSupply decimal.Decimal `json:"total_supply_kw"`
	TotalDemand decimal.Decimal `json:"total_demand_kw"`
	// NetBalance is TotalSupply - TotalDemand.
	NetBalance decimal.Decimal `json:"net_balance_kw"`

	MatchablePairs     int             `json:"matchable_pairs"`
	ProjectedGridDelta decimal.Decimal `json:"projected_grid_delta_kw"`
}

func Summarize(assets []model.Asset) Balance {
	b := Balance{
		TotalSupply: decimal.Zero,
		TotalDemand: decimal.Zero,
	}
	producers, consumers := trading.Partition(assets)
	b.Producers = len(producers)
	b.Consumers = len(consumers)
	for _, p := range producers {
		b.TotalSupply = b.TotalSupply.Add(p.CurrValue)
	}
	for _, c := range consumers {
		b.TotalDemand = b.TotalDemand.Add(c.CurrValue)
	}
	b.NetBalance = b.TotalSupply.Sub(b.TotalDemand)

	// Run only fails for a negative count.
	res, _ := trading.New().Run(assets, len(assets))
	b.MatchablePairs = len(res.Settlements)
	b.ProjectedGridDelta = res.NetGridDelta
	return b
}
