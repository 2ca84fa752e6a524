package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultGridUnit = "KW"

// DefaultGridPower is the grid buffer a fresh ledger starts with.
var DefaultGridPower = decimal.NewFromInt(10)

// GridState is the ledger-backed running grid power counter.
// LogLength is the number of transaction log entries written so far and
// doubles as the next log sequence number.
type GridState struct {
	LogLength uint64          `json:"logLength"`
	Power     decimal.Decimal `json:"power"`
	Unit      string          `json:"unit"`
}

func NewGridState(power decimal.Decimal, unit string) GridState {
	if unit == "" {
		unit = DefaultGridUnit
	}
	return GridState{Power: power, Unit: unit}
}

// String renders the power with its unit suffix, e.g. "10KW".
func (g GridState) String() string {
	return g.Power.String() + g.Unit
}

// LogEntry is one line of the transaction log.
type LogEntry struct {
	Message   string    `json:"message"`
	Seq       uint64    `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
}

func (e LogEntry) String() string {
	return fmt.Sprintf("%s - %s", e.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"), e.Message)
}

// JoinLog renders entries one per line, oldest first.
func JoinLog(entries []LogEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}
