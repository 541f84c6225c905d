package passphrase

import (
	"fmt"

	"github.com/PolarWolf314/envseal/internal/configs"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	logger "github.com/PolarWolf314/envseal/internal/logging"
)

// Overrides are command-line choices that take precedence over the project
// configuration. At most one should be set.
type Overrides struct {
	Literal string
	EnvVar  string
	File    string
	Keyring bool
	Prompt  bool
}

func (o Overrides) count() int {
	n := 0
	for _, set := range []bool{o.Literal != "", o.EnvVar != "", o.File != "", o.Keyring, o.Prompt} {
		if set {
			n++
		}
	}
	return n
}

// FromConfig builds the source for cfg and overrides. Without overrides the
// configured source is used, falling back to a prompt for env and keyring
// sources. label and confirm configure any prompt.
func FromConfig(cfg configs.PassphraseConfig, o Overrides, label string, confirm bool, log logger.Logger) (Source, error) {
	if o.count() > 1 {
		return nil, fmt.Errorf("%w: choose only one passphrase source", kerrors.ErrInvalidInput)
	}

	prompt := Prompt{Label: label, Confirm: confirm}
	keyring := Keyring{Service: cfg.KeyringService, Key: cfg.KeyringKey}
	if keyring.Service == "" {
		keyring.Service = "envseal"
	}

	switch {
	case o.Literal != "":
		log.Debugf("Using passphrase from the command line")
		return Literal{Value: []byte(o.Literal)}, nil
	case o.EnvVar != "":
		return Env{Var: o.EnvVar}, nil
	case o.File != "":
		return File{Path: o.File, Log: log}, nil
	case o.Keyring:
		if keyring.Key == "" {
			return nil, fmt.Errorf("%w: keyring key is not configured", kerrors.ErrInvalidInput)
		}
		return keyring, nil
	case o.Prompt:
		return prompt, nil
	}

	envVar := cfg.EnvVar
	if envVar == "" {
		envVar = configs.DefaultPassphraseEnvVar
	}

	switch cfg.Source {
	case "", configs.SourceEnv:
		return Chain{Env{Var: envVar}, prompt}, nil
	case configs.SourceFile:
		return File{Path: cfg.File, Log: log}, nil
	case configs.SourceKeyring:
		return Chain{keyring, prompt}, nil
	case configs.SourcePrompt:
		return prompt, nil
	default:
		return nil, fmt.Errorf("%w: unknown passphrase source %q", kerrors.ErrInvalidConfig, cfg.Source)
	}
}
