package metadata

import (
	"context"
)

// Repository is a small key-value store for client state that must survive
// restarts: the remembered login, access token, and similar flags.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Well-known keys.
const (
	KeyRememberedUser = "remembered_user"
	KeyAccessToken    = "access_token"
)
