package models

// CreateAssetRequest represents the request body for creating an asset.
// Values may be JSON numbers or numeric strings. A missing orgValue is
// rejected by the service.
type CreateAssetRequest struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name"`
	Type      string `json:"type" binding:"required"` // "producer" | "consumer"
	OrgValue  any    `json:"orgValue"`
	CurrValue any    `json:"currValue,omitempty"` // default: orgValue
}

// UpdateAssetRequest replaces every mutable field of an asset
type UpdateAssetRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type" binding:"required"`
	OrgValue  any    `json:"orgValue"`
	CurrValue any    `json:"currValue"`
}

// TransferAssetRequest moves an asset to a new owner
type TransferAssetRequest struct {
	NewOwner string `json:"new_owner" binding:"required"`
}

// TradeRequest runs one trading batch of at most N pairs
type TradeRequest struct {
	N *int `json:"n" binding:"required"`
}
