package workflows

import (
	"fmt"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	logger "github.com/PolarWolf314/envseal/internal/logging"
	"github.com/PolarWolf314/envseal/internal/passphrase"
)

// PassphraseOptions selects where a passphrase comes from.
type PassphraseOptions struct {
	// Dir is the directory to run in. Defaults to the working directory.
	Dir string

	// Overrides take precedence over the configured source.
	Overrides passphrase.Overrides

	// Label is shown by an interactive prompt.
	Label string

	// Confirm asks for the passphrase twice when prompting.
	Confirm bool

	Log logger.Logger
}

// PassphraseSource builds the passphrase source for the project containing
// Dir. A configured passphrase file is relative to the project root.
func PassphraseSource(opts PassphraseOptions) (passphrase.Source, error) {
	proj, err := loadProject(opts.Dir)
	if err != nil {
		return nil, err
	}

	cfg := proj.config.Passphrase
	if cfg.File != "" && !filepath.IsAbs(cfg.File) && !strings.HasPrefix(cfg.File, "~") {
		cfg.File = filepath.Join(proj.root, cfg.File)
	}
	if cfg.KeyringKey == "" {
		cfg.KeyringKey = proj.name
	}

	return passphrase.FromConfig(cfg, opts.Overrides, opts.Label, opts.Confirm, opts.Log)
}

// ProjectKeyring returns the keyring entry configured for the project
// containing dir.
func ProjectKeyring(dir string) (passphrase.Keyring, error) {
	proj, err := loadProject(dir)
	if err != nil {
		return passphrase.Keyring{}, err
	}

	k := passphrase.Keyring{
		Service: proj.config.Passphrase.KeyringService,
		Key:     proj.config.Passphrase.KeyringKey,
	}
	if k.Service == "" {
		k.Service = "envseal"
	}
	if k.Key == "" {
		k.Key = proj.name
	}
	if k.Key == "" {
		return k, fmt.Errorf("%w: keyring key is not configured", kerrors.ErrInvalidConfig)
	}
	return k, nil
}
