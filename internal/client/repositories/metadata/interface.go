// Package metadata stores small scalar values of the client (the session
// slot) in a key/value table of the local database.
package metadata

import (
	"context"
)

// Keys of the session slot.
const (
	KeyAccessToken = "access_token"
	KeyUserID      = "user_id"
	KeyIssuedAt    = "issued_at"
)

// SessionKeys lists every key that belongs to the session slot.
var SessionKeys = []string{KeyAccessToken, KeyUserID, KeyIssuedAt}

// Repository is a key/value store. Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteKeys(ctx context.Context, keys ...string) error
}
