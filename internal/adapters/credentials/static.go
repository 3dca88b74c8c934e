package credentials

import (
	"context"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/ports"
)

// Static returns a fixed credential, typically read from config or the
// environment.
type Static string

var _ ports.CredentialSource = Static("")

func (s Static) Lookup(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(s), nil
}
