package credentials

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/ports"
)

var ErrPassUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, args ...string) (stdout string, stderr string, err error)

// Pass reads the credential from a `pass` entry. Only the first line of the
// entry is used, matching how pass stores passwords.
type Pass struct {
	Ref string
	run runFunc
}

var _ ports.CredentialSource = (*Pass)(nil)

func NewPass(ref string) *Pass {
	return &Pass{Ref: strings.TrimSpace(ref), run: runPassCommand}
}

func (p *Pass) Lookup(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.Ref == "" {
		return "", nil
	}

	stdout, stderr, err := p.run(ctx, "show", p.Ref)
	if err != nil {
		if stderr == "" {
			return "", fmt.Errorf("pass show %q: %w", p.Ref, err)
		}
		return "", fmt.Errorf("pass show %q: %w: %s", p.Ref, err, stderr)
	}

	first, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSpace(first), nil
}

func runPassCommand(ctx context.Context, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrPassUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
