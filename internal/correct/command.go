package correct

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
)

const defaultCommandTimeout = 60 * time.Second

// CommandCorrector pipes the essay through an external program on stdin and
// reads the corrected text from stdout. This is how heavyweight model-based
// correctors that need their own runtime are plugged in.
type CommandCorrector struct {
	path    string
	args    []string
	timeout time.Duration
}

type CommandOption func(*CommandCorrector)

// WithTimeout bounds a single correction run. Non-positive values are ignored.
func WithTimeout(d time.Duration) CommandOption {
	return func(c *CommandCorrector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewCommandCorrector parses command with shell quoting rules.
func NewCommandCorrector(command string, opts ...CommandOption) (*CommandCorrector, error) {
	argv, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse corrector command: %w", err)
	}
	if len(argv) == 0 {
		return nil, errors.New("corrector command is empty")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, fmt.Errorf("corrector command %q: %w", argv[0], err)
	}
	c := &CommandCorrector{path: path, args: argv[1:], timeout: defaultCommandTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *CommandCorrector) Name() string { return "command:" + c.path }

func (c *CommandCorrector) Correct(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	procCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	//nolint:gosec // G204: path and args come from operator configuration
	cmd := exec.CommandContext(procCtx, c.path, c.args...)
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("corrector failed: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("corrector failed: %w", err)
	}
	out := strings.TrimRight(stdout.String(), "\r\n")
	if strings.TrimSpace(out) == "" {
		return "", errors.New("corrector produced no output")
	}
	return out, nil
}
