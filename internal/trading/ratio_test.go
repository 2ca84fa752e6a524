package trading

import (
	"testing"

	"energy-ledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatios(t *testing.T) {
	assets := []model.Asset{
		asset(t, "a2", "producer2", "producer", 1400),
		asset(t, "a4", "consumer1", "consumer", 600),
		asset(t, "a7", "producer4", "producer", 600),
		asset(t, "a8", "consumer4", "consumer", 600),
	}
	ratios := Ratios(assets)
	require.Len(t, ratios, 2)

	// 1400 pairs with the smaller consumer id on the 600 tie.
	assert.Equal(t, "a2", ratios[0].ProducerID)
	assert.Equal(t, "a4", ratios[0].ConsumerID)
	assert.True(t, ratios[0].Defined)
	assert.Equal(t, "0.75", ratios[0].String())

	assert.Equal(t, "a7", ratios[1].ProducerID)
	assert.False(t, ratios[1].Defined)
	assert.Equal(t, "undefined", ratios[1].String())
}

func TestRatiosNegative(t *testing.T) {
	ratios := Ratios([]model.Asset{
		asset(t, "p", "p", "producer", 350),
		asset(t, "c", "c", "consumer", 450),
	})
	require.Len(t, ratios, 1)
	assert.Equal(t, "-4.5", ratios[0].String())
}

func TestRatiosDoNotChangeAssets(t *testing.T) {
	assets := demoAssets(t)
	_ = Ratios(assets)
	assert.Equal(t, "1300", assets[0].CurrValue.String())
}

func TestFormatRatios(t *testing.T) {
	out := FormatRatios([]Ratio{
		{ProducerID: "a2", ConsumerID: "a4", Value: decimal.RequireFromString("0.75"), Defined: true},
		{ProducerID: "a7", ConsumerID: "a8"},
	})
	assert.Equal(t,
		"CG Ratios:\nProducer: a2, Consumer: a4, Ratio: 0.75\nProducer: a7, Consumer: a8, Ratio: undefined\n",
		out)
	assert.Equal(t, "CG Ratios:\n", FormatRatios(nil))
}
