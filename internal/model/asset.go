package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedInput is returned when asset fields or operation arguments
// cannot be coerced into their strict types.
var ErrMalformedInput = errors.New("malformed input")

// AssetType is the trading role of an asset.
type AssetType string

const (
	Producer AssetType = "producer"
	Consumer AssetType = "consumer"
)

func ParseAssetType(s string) (AssetType, error) {
	switch t := AssetType(strings.ToLower(strings.TrimSpace(s))); t {
	case Producer, Consumer:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown asset type %q", ErrMalformedInput, s)
	}
}

// Asset is one producer or consumer record on the ledger.
//
// Fields are declared in lexical order of their JSON keys so the encoding is
// canonical: the same asset always serializes to the same bytes.
//
// Units:
// - OrgValue: baseline supply (producer) or demand (consumer), KW
// - CurrValue: remaining supply or unmet demand for the current period, KW
type Asset struct {
	CurrValue decimal.Decimal `json:"currValue"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	OrgValue  decimal.Decimal `json:"orgValue"`
	Owner     string          `json:"owner,omitempty"`
	Type      AssetType       `json:"type"`
}

// NewAsset builds a validated asset from loosely typed values, as they arrive
// from JSON bodies or CLI arguments.
func NewAsset(id, name, typ string, orgValue, currValue any) (Asset, error) {
	t, err := ParseAssetType(typ)
	if err != nil {
		return Asset{}, err
	}
	org, err := ParseValue(orgValue)
	if err != nil {
		return Asset{}, fmt.Errorf("orgValue: %w", err)
	}
	curr, err := ParseValue(currValue)
	if err != nil {
		return Asset{}, fmt.Errorf("currValue: %w", err)
	}
	a := Asset{
		ID:        strings.TrimSpace(id),
		Name:      name,
		Type:      t,
		OrgValue:  org,
		CurrValue: curr,
	}
	if err := a.Validate(); err != nil {
		return Asset{}, err
	}
	return a, nil
}

func (a Asset) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: id is required", ErrMalformedInput)
	}
	if a.Type != Producer && a.Type != Consumer {
		return fmt.Errorf("%w: unknown asset type %q", ErrMalformedInput, a.Type)
	}
	if a.OrgValue.IsNegative() {
		return fmt.Errorf("%w: orgValue must be >= 0", ErrMalformedInput)
	}
	if a.CurrValue.IsNegative() {
		return fmt.Errorf("%w: currValue must be >= 0", ErrMalformedInput)
	}
	return nil
}

func (a Asset) IsProducer() bool { return a.Type == Producer }
func (a Asset) IsConsumer() bool { return a.Type == Consumer }

// ParseValue coerces a loosely typed numeric value into a decimal.
// Strings must hold a plain decimal number; floats must be finite.
func ParseValue(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrMalformedInput, x)
		}
		return d, nil
	case json.Number:
		return ParseValue(string(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, fmt.Errorf("%w: value must be finite", ErrMalformedInput)
		}
		return decimal.NewFromFloat(x), nil
	case float32:
		return ParseValue(float64(x))
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case nil:
		return decimal.Zero, fmt.Errorf("%w: value is required", ErrMalformedInput)
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported value type %T", ErrMalformedInput, v)
	}
}
