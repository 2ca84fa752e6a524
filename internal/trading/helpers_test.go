package trading

import (
	"energy-ledger/internal/model"

	"github.com/stretchr/testify/require"
)

// asset accepts both *testing.T and *rapid.T.
func asset(t require.TestingT, id, name, typ string, value any) model.Asset {
	a, err := model.NewAsset(id, name, typ, value, value)
	require.NoError(t, err)
	return a
}

// demoAssets is the stock eight-asset ledger.
func demoAssets(t require.TestingT) []model.Asset {
	return []model.Asset{
		asset(t, "a1", "producer1", "producer", 1300),
		asset(t, "a2", "producer2", "producer", 1400),
		asset(t, "a3", "producer3", "producer", 1500),
		asset(t, "a4", "consumer1", "consumer", 600),
		asset(t, "a5", "consumer2", "consumer", 700),
		asset(t, "a6", "consumer3", "consumer", 800),
		asset(t, "a7", "producer4", "producer", 350),
		asset(t, "a8", "consumer4", "consumer", 450),
	}
}

func pairIDs(pairs []Pair) [][2]string {
	out := make([][2]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, [2]string{p.Producer.ID, p.Consumer.ID})
	}
	return out
}
