package ledger

import (
	"bytes"
	"fmt"

	"github.com/google/orderedcode"
)

// Key namespaces. orderedcode keeps every composite key in lexical order of
// its parts, so a prefix scan over assetNamespace returns assets sorted by id
// and a scan over logNamespace returns log entries in sequence order.
const (
	assetNamespace = "asset"
	gridNamespace  = "grid"
	logNamespace   = "txlog"
)

var (
	assetPrefix = mustKey(assetNamespace)
	logPrefix   = mustKey(logNamespace)

	// GridKey holds the single model.GridState record.
	GridKey = mustKey(gridNamespace)
)

func AssetKey(id string) []byte {
	return mustKey(assetNamespace, id)
}

func LogKey(seq uint64) []byte {
	return mustKey(logNamespace, seq)
}

// IsAssetKey reports whether key lies in the asset namespace.
func IsAssetKey(key []byte) bool {
	return bytes.HasPrefix(key, assetPrefix)
}

// AssetIDFromKey recovers the asset id from a key built by AssetKey.
func AssetIDFromKey(key []byte) (string, error) {
	var ns, id string
	remaining, err := orderedcode.Parse(string(key), &ns, &id)
	if err != nil {
		return "", fmt.Errorf("parse asset key: %w", err)
	}
	if ns != assetNamespace || len(remaining) != 0 {
		return "", fmt.Errorf("not an asset key: %q", key)
	}
	return id, nil
}

// mustKey only fails for item types orderedcode does not support, which
// would be a programming error here.
func mustKey(items ...interface{}) []byte {
	key, err := orderedcode.Append(nil, items...)
	if err != nil {
		panic(fmt.Sprintf("ledger: build key %v: %v", items, err))
	}
	return key
}
