package trading

import (
	"sort"

	"energy-ledger/internal/model"
)

// Unbounded asks Match for every possible pair.
const Unbounded = -1

// Pair is one producer matched with one consumer.
type Pair struct {
	Producer model.Asset
	Consumer model.Asset
}

// Match pairs the richest producers with the neediest consumers.
//
// Producers are sorted by CurrValue descending, consumers by CurrValue
// ascending, and the i-th of each are paired for i < min(#producers,
// #consumers, n). Equal values fall back to ascending id, so every replica
// derives the same pairing from the same asset set. A negative n means no cap.
//
// This is a greedy pass, not an optimal assignment.
func Match(assets []model.Asset, n int) []Pair {
	producers, consumers := Partition(assets)

	sort.Slice(producers, func(i, j int) bool {
		if c := producers[i].CurrValue.Cmp(producers[j].CurrValue); c != 0 {
			return c > 0
		}
		return producers[i].ID < producers[j].ID
	})
	sort.Slice(consumers, func(i, j int) bool {
		if c := consumers[i].CurrValue.Cmp(consumers[j].CurrValue); c != 0 {
			return c < 0
		}
		return consumers[i].ID < consumers[j].ID
	})

	limit := min(len(producers), len(consumers))
	if n >= 0 && n < limit {
		limit = n
	}
	pairs := make([]Pair, 0, limit)
	for i := 0; i < limit; i++ {
		pairs = append(pairs, Pair{Producer: producers[i], Consumer: consumers[i]})
	}
	return pairs
}

// Partition splits assets by role. Assets of any other type are ignored.
// The returned slices are copies; sorting them does not touch the input.
func Partition(assets []model.Asset) (producers, consumers []model.Asset) {
	for _, a := range assets {
		switch a.Type {
		case model.Producer:
			producers = append(producers, a)
		case model.Consumer:
			consumers = append(consumers, a)
		}
	}
	return producers, consumers
}
