// Package gitconfig applies a git identity to the user's global git
// configuration by running `git config --global`.
package gitconfig

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/cli/safeexec"
)

const (
	// KeyName is the git config key for the author/committer name.
	KeyName = "user.name"
	// KeyEmail is the git config key for the author/committer email.
	KeyEmail = "user.email"
)

// ErrApply wraps any failure to launch git or a non-zero exit from it.
var ErrApply = errors.New("git config failed")

// Applier is the interface for applying an identity to git.
// Use the interface for testability; the default implementation shells out to git.
type Applier interface {
	// Apply sets user.name and user.email in the global git configuration.
	Apply(ctx context.Context, name, email string) error
}

// Identity is a name/email pair as currently configured in git.
type Identity struct {
	Name  string
	Email string
}

// runFn runs a command with its output discarded.
type runFn func(ctx context.Context, bin string, args ...string) error

// outputFn runs a command and returns its standard output.
type outputFn func(ctx context.Context, bin string, args ...string) ([]byte, error)

// Global is the default Applier, operating on `git config --global`.
type Global struct {
	binary   string
	lookPath func(string) (string, error)
	run      runFn
	output   outputFn
}

// NewGlobal returns a Global that invokes binary ("git" when empty).
func NewGlobal(binary string) *Global {
	if binary == "" {
		binary = "git"
	}
	return &Global{
		binary:   binary,
		lookPath: safeexec.LookPath,
		run:      execRun,
		output:   execOutput,
	}
}

// Binary returns the configured git binary name or path.
func (g *Global) Binary() string {
	return g.binary
}

// LookPath resolves the git binary to an absolute path.
func (g *Global) LookPath() (string, error) {
	path, err := g.lookPath(g.binary)
	if err != nil {
		return "", fmt.Errorf("%w: locating %s: %v", ErrApply, g.binary, err)
	}
	return path, nil
}

// Apply sets user.name, then user.email. The second key is not attempted
// if the first fails.
func (g *Global) Apply(ctx context.Context, name, email string) error {
	if err := g.Set(ctx, KeyName, name); err != nil {
		return err
	}
	return g.Set(ctx, KeyEmail, email)
}

// Set runs `git config --global <key> <value>`. Only the exit status is observed.
func (g *Global) Set(ctx context.Context, key, value string) error {
	bin, err := g.LookPath()
	if err != nil {
		return err
	}
	slog.Debug("running git config", "bin", bin, "key", key, "value", value)
	if err := g.run(ctx, bin, "config", "--global", key, value); err != nil {
		return fmt.Errorf("%w: git config --global %s %q: %v", ErrApply, key, value, err)
	}
	return nil
}

// Get returns the global value for key, or "" if it is unset.
func (g *Global) Get(ctx context.Context, key string) (string, error) {
	bin, err := g.LookPath()
	if err != nil {
		return "", err
	}
	out, err := g.output(ctx, bin, "config", "--global", "--get", key)
	if err != nil {
		// git config --get exits 1 when the key is not set.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", fmt.Errorf("%w: git config --global --get %s: %v", ErrApply, key, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Current returns the identity in the global git configuration.
func (g *Global) Current(ctx context.Context) (Identity, error) {
	name, err := g.Get(ctx, KeyName)
	if err != nil {
		return Identity{}, err
	}
	email, err := g.Get(ctx, KeyEmail)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Name: name, Email: email}, nil
}

func execRun(ctx context.Context, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	// Nil Stdout/Stderr are connected to the null device.
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}

func execOutput(ctx context.Context, bin string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).Output()
}
