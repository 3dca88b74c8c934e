package credentials

import (
	"context"
	"errors"
	"io"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/ports"
	"github.com/charmbracelet/log"
)

// Chain asks each source in order and returns the first non-empty
// credential. Failing sources are skipped, so a missing credential never
// blocks a request.
type Chain struct {
	sources []ports.CredentialSource
	logger  *log.Logger
}

var _ ports.CredentialSource = (*Chain)(nil)

func NewChain(logger *log.Logger, sources ...ports.CredentialSource) *Chain {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	kept := make([]ports.CredentialSource, 0, len(sources))
	for _, source := range sources {
		if source != nil {
			kept = append(kept, source)
		}
	}

	return &Chain{sources: kept, logger: logger}
}

func (c *Chain) Lookup(ctx context.Context) (string, error) {
	for i, source := range c.sources {
		value, err := source.Lookup(ctx)
		if err != nil {
			if shouldStop(err) {
				return "", err
			}
			c.logger.Debug("credential source failed", "index", i, "err", err)
			continue
		}
		if value != "" {
			return value, nil
		}
	}

	return "", nil
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
