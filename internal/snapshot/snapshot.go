// Package snapshot is the durability boundary for client state: carts and
// session identity are written through to a key-value slot on every mutation
// and read back once at hydration time.
package snapshot

import (
	"context"
	"errors"
)

// Store persists JSON snapshots under fixed keys. Values must round-trip
// exactly through Save and Load.
type Store interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dst any) error
	Delete(ctx context.Context, key string) error
}

var ErrNoSnapshot = errors.New("no snapshot stored under key")

// Key namespaces, kept stable so slots survive process restarts.
const (
	CartKeyPrefix    = "cart-storage:"
	SessionKeyPrefix = "auth-storage:"
)

func CartKey(userID string) string {
	return CartKeyPrefix + userID
}

func SessionKey(userID string) string {
	return SessionKeyPrefix + userID
}
