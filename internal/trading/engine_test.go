package trading

import (
	"bytes"
	"strings"
	"testing"

	"energy-ledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRunTwoAssetSurplus(t *testing.T) {
	res, err := New().Run([]model.Asset{
		asset(t, "a2", "producer2", "producer", 1400),
		asset(t, "a4", "consumer1", "consumer", 600),
	}, 1)
	require.NoError(t, err)
	require.Len(t, res.Settlements, 1)
	assert.Equal(t, "800", res.NetGridDelta.String())

	updated := res.UpdatedAssets()
	require.Len(t, updated, 2)
	assert.Equal(t, "a2", updated[0].ID)
	assert.Equal(t, "800", updated[0].CurrValue.String())
	assert.Equal(t, "a4", updated[1].ID)
	assert.True(t, updated[1].CurrValue.IsZero())
}

func TestRunDemoLedger(t *testing.T) {
	res, err := New().Run(demoAssets(t), Unbounded)
	require.NoError(t, err)
	require.Len(t, res.Rows, 4)

	// 1050 + 800 + 600 - 450
	assert.Equal(t, "2000", res.NetGridDelta.String())
	assert.Equal(t, "1050", res.Rows[0].CumGridDelta.String())
	assert.Equal(t, "2000", res.Rows[3].CumGridDelta.String())
	assert.Equal(t, model.OutcomeDeficit, res.Rows[3].Outcome)
}

func TestRunRejectsNegativeCount(t *testing.T) {
	_, err := New().Run(demoAssets(t), -2)
	assert.ErrorIs(t, err, model.ErrMalformedInput)
}

func TestRunUnboundedSettlesEveryPair(t *testing.T) {
	res, err := New().Run(demoAssets(t), Unbounded)
	require.NoError(t, err)
	assert.Len(t, res.Settlements, 4)

	capped, err := New().Run(demoAssets(t), 100)
	require.NoError(t, err)
	assert.True(t, res.NetGridDelta.Equal(capped.NetGridDelta))
}

func TestRunZeroIsNoop(t *testing.T) {
	res, err := New().Run(demoAssets(t), 0)
	require.NoError(t, err)
	assert.Empty(t, res.Settlements)
	assert.True(t, res.NetGridDelta.IsZero())
	assert.Empty(t, res.UpdatedAssets())
}

func TestEncodeRowsCSV(t *testing.T) {
	res, err := New().Run(demoAssets(t), 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeRowsCSV(&buf, res.Rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "index,producer_id,producer_name,"))
	assert.Equal(t, "0,a3,producer3,a8,consumer4,SURPLUS,1500,1050,450,0,450,0,1050,1050", lines[1])
}

func TestPropertyRunIsDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		assets := drawAssets(rt)
		n := rapid.IntRange(0, 12).Draw(rt, "n").(int)

		a, err := New().Run(assets, n)
		if err != nil {
			rt.Fatalf("run: %v", err)
		}
		reversed := make([]model.Asset, len(assets))
		for i, x := range assets {
			reversed[len(assets)-1-i] = x
		}
		b, err := New().Run(reversed, n)
		if err != nil {
			rt.Fatalf("run: %v", err)
		}

		if !a.NetGridDelta.Equal(b.NetGridDelta) || len(a.Rows) != len(b.Rows) {
			rt.Fatalf("runs differ: %s vs %s", a.NetGridDelta, b.NetGridDelta)
		}
		for i := range a.Rows {
			if a.Rows[i].ProducerID != b.Rows[i].ProducerID || a.Rows[i].ConsumerID != b.Rows[i].ConsumerID {
				rt.Fatalf("row %d paired differently", i)
			}
		}
	})
}

func TestPropertyRunAccounting(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		assets := drawAssets(rt)
		res, err := New().Run(assets, Unbounded)
		if err != nil {
			rt.Fatalf("run: %v", err)
		}

		sum := decimal.Zero
		for _, s := range res.Settlements {
			sum = sum.Add(s.Pair.Producer.CurrValue).Sub(s.Pair.Consumer.CurrValue)
			if s.Producer.CurrValue.IsNegative() || s.Consumer.CurrValue.IsNegative() {
				rt.Fatalf("negative value after settle")
			}
		}
		if !sum.Equal(res.NetGridDelta) {
			rt.Fatalf("net delta %s, want %s", res.NetGridDelta, sum)
		}
	})
}
