package trading

import (
	"fmt"

	"energy-ledger/internal/model"

	"github.com/shopspring/decimal"
)

// Settlement captures what happened to one matched pair.
// Producer and Consumer hold the post-trade assets; Pair holds them as matched.
type Settlement struct {
	Pair Pair

	Producer model.Asset
	Consumer model.Asset

	// Transferred is the energy that flowed from producer to consumer.
	Transferred decimal.Decimal
	// FromGrid is the consumer need drawn from the grid (deficit branch only).
	FromGrid decimal.Decimal
	// GridDelta is the pair's contribution to grid power: the producer's
	// leftover on surplus, minus the deficit otherwise.
	GridDelta decimal.Decimal

	Outcome model.Outcome
	Lines   []string
}

// Settle resolves a single pair. It never fails and never mutates OrgValue;
// both CurrValues stay non-negative for non-negative inputs.
func Settle(p Pair) Settlement {
	prod, cons := p.Producer, p.Consumer
	s := Settlement{Pair: p, Producer: prod, Consumer: cons}

	if prod.CurrValue.LessThanOrEqual(cons.CurrValue) {
		deficit := cons.CurrValue.Sub(prod.CurrValue)
		s.Transferred = prod.CurrValue
		s.FromGrid = deficit
		s.GridDelta = deficit.Neg()
		s.Lines = []string{
			flowLine(prod, cons, prod.CurrValue),
			fmt.Sprintf("Producer %s exhausted. Additional %sKW taken from the grid.", prod.Name, deficit),
		}
		s.Producer.CurrValue = decimal.Zero
		s.Consumer.CurrValue = decimal.Zero
	} else {
		s.Transferred = cons.CurrValue
		s.FromGrid = decimal.Zero
		s.GridDelta = prod.CurrValue.Sub(cons.CurrValue)
		s.Lines = []string{flowLine(prod, cons, cons.CurrValue)}
		s.Producer.CurrValue = prod.CurrValue.Sub(cons.CurrValue)
		s.Consumer.CurrValue = decimal.Zero
	}
	s.Outcome = model.OutcomeFromGridDelta(s.GridDelta)
	return s
}

func flowLine(prod, cons model.Asset, kw decimal.Decimal) string {
	return fmt.Sprintf("Energy flowing from Producer %s to Consumer %s: %sKW", prod.Name, cons.Name, kw)
}
