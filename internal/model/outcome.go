package model

import "github.com/shopspring/decimal"

// Outcome is a human-friendly label for how one settled pair touched the grid.
// Keep these values stable; they are intended for CSV output and metrics labels.
type Outcome string

const (
	OutcomeSurplus  Outcome = "SURPLUS"  // producer covered the consumer, remainder stays available
	OutcomeBalanced Outcome = "BALANCED" // exact match, no grid draw
	OutcomeDeficit  Outcome = "DEFICIT"  // consumer need covered partly from the grid
)

func OutcomeFromGridDelta(delta decimal.Decimal) Outcome {
	switch delta.Sign() {
	case -1:
		return OutcomeDeficit
	case 1:
		return OutcomeSurplus
	default:
		return OutcomeBalanced
	}
}
