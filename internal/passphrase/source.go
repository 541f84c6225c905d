package passphrase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/envseal/internal/envelope"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	logger "github.com/PolarWolf314/envseal/internal/logging"
)

// Source yields a passphrase.
type Source interface {
	Resolve(ctx context.Context) ([]byte, error)
	Name() string
}

// Zero overwrites a resolved passphrase.
func Zero(b []byte) {
	envelope.Wipe(b)
}

// Literal is a passphrase given directly.
type Literal struct {
	Value []byte
}

func (l Literal) Name() string { return "literal" }

func (l Literal) Resolve(ctx context.Context) ([]byte, error) {
	if len(l.Value) == 0 {
		return nil, fmt.Errorf("%w: empty passphrase", kerrors.ErrPassphraseUnavailable)
	}
	return append([]byte(nil), l.Value...), nil
}

// Env reads the passphrase from an environment variable.
type Env struct {
	Var string

	// Lookup replaces os.LookupEnv when set.
	Lookup func(string) (string, bool)
}

func (e Env) Name() string { return "env:" + e.Var }

func (e Env) Resolve(ctx context.Context) ([]byte, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	value, ok := lookup(e.Var)
	if !ok || value == "" {
		return nil, fmt.Errorf("%w: $%s is not set", kerrors.ErrPassphraseUnavailable, e.Var)
	}
	return []byte(value), nil
}

// File reads the first line of a file. A leading "~/" is expanded to the
// home directory.
type File struct {
	Path string
	Log  logger.Logger
}

func (f File) Name() string { return "file:" + f.Path }

func (f File) Resolve(ctx context.Context) ([]byte, error) {
	path, err := expandHome(f.Path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", kerrors.ErrPassphraseUnavailable, f.Path)
		}
		return nil, fmt.Errorf("failed to stat passphrase file: %w", err)
	}
	if info.Mode().Perm()&0077 != 0 {
		f.Log.WarnfAlways("Passphrase file %s is accessible by other users (mode %04o)", f.Path, info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase file: %w", err)
	}
	defer Zero(data)

	line, _, _ := strings.Cut(string(data), "\n")
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return nil, fmt.Errorf("%w: %s is empty", kerrors.ErrPassphraseUnavailable, f.Path)
	}
	return []byte(line), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Chain tries each source in order and returns the first passphrase found.
type Chain []Source

func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name()
	}
	return strings.Join(names, " > ")
}

func (c Chain) Resolve(ctx context.Context) ([]byte, error) {
	var tried []string
	for _, s := range c {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := s.Resolve(ctx)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, kerrors.ErrPassphraseUnavailable) {
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}
		tried = append(tried, s.Name())
	}
	return nil, fmt.Errorf("%w: tried %s", kerrors.ErrPassphraseUnavailable, strings.Join(tried, ", "))
}
