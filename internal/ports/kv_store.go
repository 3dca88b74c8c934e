package ports

import "context"

// KeyValueStore is the persistence primitive behind the session store: a
// string store keyed by name. Get returns domain.ErrKeyNotFound for a key
// that was never set.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}
