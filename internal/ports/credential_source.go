package ports

import "context"

// CredentialSource resolves the static API credential sent with every
// backend request. An empty value with a nil error means "no credential".
type CredentialSource interface {
	Lookup(ctx context.Context) (string, error)
}
