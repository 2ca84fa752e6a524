package trading

import (
	"energy-ledger/internal/model"

	"github.com/shopspring/decimal"
)

// Row is one settled pair of a trading batch.
// This is the primary artifact for "what happened" in a trade.
type Row struct {
	Index int

	ProducerID   string
	ProducerName string
	ConsumerID   string
	ConsumerName string

	Outcome model.Outcome

	ProducerBefore decimal.Decimal
	ProducerAfter  decimal.Decimal
	ConsumerBefore decimal.Decimal
	ConsumerAfter  decimal.Decimal

	TransferredKW decimal.Decimal
	FromGridKW    decimal.Decimal

	GridDelta    decimal.Decimal
	CumGridDelta decimal.Decimal
}

type Result struct {
	Settlements  []Settlement
	Rows         []Row
	NetGridDelta decimal.Decimal
}
