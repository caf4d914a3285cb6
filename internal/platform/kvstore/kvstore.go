// Package kvstore is the persistence gateway: a small key/value store holding
// JSON-encoded sequences under well-known keys.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Keys used by the application. Values are JSON arrays.
const (
	KeyFocusSessions = "focusSessions"
	KeyNotes         = "notes"
)

// Gateway loads and saves raw values. Load reports ok=false when the key has
// never been written.
type Gateway interface {
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
}

// Watcher is implemented by backends that can report writes made by other
// processes. The channel carries the changed key and closes when ctx ends.
type Watcher interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// LoadSeq decodes the sequence stored under key. ok is false when the key is
// absent; a malformed value is returned as an error.
func LoadSeq[T any](ctx context.Context, g Gateway, key string) ([]T, bool, error) {
	raw, ok, err := g.Load(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, true, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, true, nil
}

// SaveSeq encodes items as a JSON array (never null) and stores it under key.
func SaveSeq[T any](ctx context.Context, g Gateway, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return g.Save(ctx, key, raw)
}
