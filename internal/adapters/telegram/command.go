package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/hamster-tapper-cli/internal/domain"
	"github.com/bnema/hamster-tapper-cli/internal/ports"
)

var ErrCommandUnavailable = errors.New("web view command unavailable")

type runFunc func(ctx context.Context, command string, args ...string) (stdout string, stderr string, err error)

// CommandSource shells out to a user-configured helper that drives the
// messaging client and prints the mini-app web-view URL on stdout. Keeping
// the client behind an external command means the agent never holds the
// account credentials itself.
type CommandSource struct {
	command string
	args    []string
	run     runFunc
}

var _ ports.WebAppDataSource = (*CommandSource)(nil)

func NewCommandSource(source domain.WebViewSource) *CommandSource {
	return &CommandSource{
		command: source.Command,
		args:    source.Args,
		run:     runCommand,
	}
}

// WebAppData runs the helper and extracts the init-data blob from its
// output. A helper reporting a revoked or deactivated session yields
// domain.ErrInvalidSession so the caller stops instead of retrying.
func (s *CommandSource) WebAppData(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, s.command, s.args...)
	if err != nil {
		if isSessionRevoked(stderr) || isSessionRevoked(stdout) {
			return "", fmt.Errorf("web view command %q: %w", s.command, domain.ErrInvalidSession)
		}
		if stderr != "" {
			return "", fmt.Errorf("web view command %q: %w: %s", s.command, err, stderr)
		}
		return "", fmt.Errorf("web view command %q: %w", s.command, err)
	}

	output := strings.TrimSpace(stdout)
	if output == "" {
		return "", fmt.Errorf("web view command %q produced no output", s.command)
	}

	// Helpers may print the full web-view URL or the already-extracted blob.
	if strings.Contains(output, "tgWebAppData=") {
		return ExtractWebAppData(output)
	}

	return output, nil
}

func runCommand(ctx context.Context, command string, args ...string) (string, string, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", fmt.Errorf("%w: %s", ErrCommandUnavailable, command)
		}
		return "", "", fmt.Errorf("locate web view command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
