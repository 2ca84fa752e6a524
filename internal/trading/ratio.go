package trading

import (
	"strings"

	"energy-ledger/internal/model"

	"github.com/shopspring/decimal"
)

// Ratio is the consumption/generation ratio of one matched pair:
// consumer / (producer - consumer). Defined is false when the two values
// are equal and the ratio has no value.
type Ratio struct {
	ProducerID string
	ConsumerID string
	Value      decimal.Decimal
	Defined    bool
}

func (r Ratio) String() string {
	if !r.Defined {
		return "undefined"
	}
	return r.Value.String()
}

// Ratios pairs every producer it can (same ordering as Match) and reports
// each pair's ratio. It does not settle anything.
func Ratios(assets []model.Asset) []Ratio {
	pairs := Match(assets, Unbounded)
	out := make([]Ratio, 0, len(pairs))
	for _, p := range pairs {
		r := Ratio{ProducerID: p.Producer.ID, ConsumerID: p.Consumer.ID}
		denom := p.Producer.CurrValue.Sub(p.Consumer.CurrValue)
		if !denom.IsZero() {
			r.Value = p.Consumer.CurrValue.Div(denom)
			r.Defined = true
		}
		out = append(out, r)
	}
	return out
}

// FormatRatios renders the ratio table.
func FormatRatios(ratios []Ratio) string {
	var b strings.Builder
	b.WriteString("CG Ratios:\n")
	for _, r := range ratios {
		b.WriteString("Producer: " + r.ProducerID + ", Consumer: " + r.ConsumerID + ", Ratio: " + r.String() + "\n")
	}
	return b.String()
}
