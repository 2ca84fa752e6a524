package grid

import (
	"testing"
	"time"

	"energy-ledger/internal/ledger"
	"energy-ledger/internal/model"
	"energy-ledger/internal/trading"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func settlement(t *testing.T, pv, cv int) trading.Settlement {
	t.Helper()
	p, err := model.NewAsset("p", "producer", "producer", pv, pv)
	require.NoError(t, err)
	c, err := model.NewAsset("c", "consumer", "consumer", cv, cv)
	require.NoError(t, err)
	return trading.Settle(trading.Pair{Producer: p, Consumer: c})
}

func newAccumulator() *Accumulator {
	return New(model.NewGridState(model.DefaultGridPower, ""), func() time.Time { return fixedNow })
}

func TestStateFallsBackToInitial(t *testing.T) {
	s := ledger.NewMemStore(zap.NewNop())
	defer s.Close()

	acc := newAccumulator()
	require.NoError(t, s.View(func(tx *ledger.Tx) error {
		g, err := acc.State(ledger.NewJournal(tx))
		require.NoError(t, err)
		assert.Equal(t, "10KW", g.String())
		return nil
	}))
}

func TestApplyAccumulates(t *testing.T) {
	s := ledger.NewMemStore(zap.NewNop())
	defer s.Close()
	acc := newAccumulator()

	var applied Applied
	require.NoError(t, s.Update(func(tx *ledger.Tx) error {
		var err error
		applied, err = acc.Apply(ledger.NewJournal(tx), []trading.Settlement{
			settlement(t, 1400, 600),
			settlement(t, 350, 450),
		})
		return err
	}))

	assert.Equal(t, "700", applied.Delta.String())
	assert.Equal(t, "10KW", applied.Before.String())
	assert.Equal(t, "710KW", applied.After.String())
	require.Len(t, applied.Entries, 3)
	for i, e := range applied.Entries {
		assert.Equal(t, uint64(i), e.Seq)
		assert.Equal(t, fixedNow, e.Timestamp)
	}

	// The next batch continues the sequence.
	require.NoError(t, s.Update(func(tx *ledger.Tx) error {
		var err error
		applied, err = acc.Apply(ledger.NewJournal(tx), []trading.Settlement{settlement(t, 100, 300)})
		return err
	}))
	assert.Equal(t, "510KW", applied.After.String())
	assert.Equal(t, uint64(5), applied.After.LogLength)

	require.NoError(t, s.View(func(tx *ledger.Tx) error {
		entries, err := ledger.NewJournal(tx).Entries()
		require.NoError(t, err)
		require.Len(t, entries, 5)
		assert.Equal(t, "Producer producer exhausted. Additional 200KW taken from the grid.", entries[4].Message)
		return nil
	}))
}

func TestApplyEmptyBatchWritesNothing(t *testing.T) {
	s := ledger.NewMemStore(zap.NewNop())
	defer s.Close()
	acc := newAccumulator()

	require.NoError(t, s.Update(func(tx *ledger.Tx) error {
		applied, err := acc.Apply(ledger.NewJournal(tx), nil)
		require.NoError(t, err)
		assert.True(t, applied.Delta.IsZero())
		assert.Empty(t, applied.Entries)
		return nil
	}))

	require.NoError(t, s.View(func(tx *ledger.Tx) error {
		_, ok, err := ledger.NewJournal(tx).Grid()
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	}))
}

func TestInitKeepsExistingState(t *testing.T) {
	s := ledger.NewMemStore(zap.NewNop())
	defer s.Close()
	acc := newAccumulator()

	require.NoError(t, s.Update(func(tx *ledger.Tx) error {
		return ledger.NewJournal(tx).PutGrid(model.NewGridState(decimal.NewFromInt(42), "KW"))
	}))
	require.NoError(t, s.Update(func(tx *ledger.Tx) error {
		g, err := acc.Init(ledger.NewJournal(tx))
		require.NoError(t, err)
		assert.Equal(t, "42KW", g.String())
		return nil
	}))
}
