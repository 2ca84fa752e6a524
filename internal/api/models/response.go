package models

import "time"

// AssetResponse wraps a single asset
type AssetResponse struct {
	Asset AssetView `json:"asset"`
}

// AssetView is the JSON shape of an asset
type AssetView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	OrgValue  string `json:"orgValue"`
	CurrValue string `json:"currValue"`
	Owner     string `json:"owner,omitempty"`
}

// AssetListResponse is returned by GET /api/v1/assets
type AssetListResponse struct {
	Assets []AssetView `json:"assets"`
}

// TextResponse carries one of the ledger's human-readable views
type TextResponse struct {
	Result string `json:"result"`
}

// ExistsResponse is returned by GET /api/v1/assets/:id/exists
type ExistsResponse struct {
	ID     string `json:"id"`
	Exists bool   `json:"exists"`
}

// TransferResponse reports the owner before the transfer
type TransferResponse struct {
	ID       string `json:"id"`
	OldOwner string `json:"old_owner"`
	NewOwner string `json:"new_owner"`
}

// TradeResponse represents the response from a trading batch
type TradeResponse struct {
	Result       string           `json:"result"` // "Net power change: ..., New grid power: ..."
	NetGridDelta string           `json:"net_grid_delta"`
	GridPower    string           `json:"grid_power"`
	Settlements  []SettlementView `json:"settlements"`
	Log          []string         `json:"log"`
}

// SettlementView represents one settled producer/consumer pair
type SettlementView struct {
	Index          int    `json:"index"`
	ProducerID     string `json:"producer_id"`
	ConsumerID     string `json:"consumer_id"`
	Outcome        string `json:"outcome"` // "SURPLUS", "BALANCED", "DEFICIT"
	ProducerBefore string `json:"producer_before"`
	ProducerAfter  string `json:"producer_after"`
	ConsumerBefore string `json:"consumer_before"`
	ConsumerAfter  string `json:"consumer_after"`
	GridDelta      string `json:"grid_delta"`
}

// RatiosResponse is returned by GET /api/v1/ratios
type RatiosResponse struct {
	Result string      `json:"result"`
	Ratios []RatioView `json:"ratios"`
}

// RatioView is one pair's ratio; Ratio is null when undefined
type RatioView struct {
	Producer string  `json:"producer"`
	Consumer string  `json:"consumer"`
	Ratio    *string `json:"ratio"`
	Defined  bool    `json:"defined"`
}

// LogResponse is returned by GET /api/v1/txlog
type LogResponse struct {
	Result  string     `json:"result"`
	Entries []LogEntry `json:"entries"`
}

// LogEntry is one transaction log line
type LogEntry struct {
	Seq       uint64    `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// GridResponse is returned by GET /api/v1/grid
type GridResponse struct {
	Result string `json:"result"`
	Power  string `json:"power"`
	Unit   string `json:"unit"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
