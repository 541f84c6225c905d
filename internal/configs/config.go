package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// ConfigFileName is the project configuration file. Its directory is the
// project root.
const ConfigFileName = ".envseal.toml"

// Passphrase sources.
const (
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceKeyring = "keyring"
	SourcePrompt  = "prompt"
)

// DefaultPassphraseEnvVar is read when the source is "env".
const DefaultPassphraseEnvVar = "ENVSEAL_PASSPHRASE"

type ProjectConfig struct {
	Files      FilesConfig      `toml:"files"`
	Transform  TransformConfig  `toml:"transform"`
	Passphrase PassphraseConfig `toml:"passphrase"`
	Audit      AuditConfig      `toml:"audit"`
}

type FilesConfig struct {
	// Patterns are literal paths, directories or doublestar globs, relative
	// to the project root.
	Patterns     []string `toml:"patterns"`
	Backup       bool     `toml:"backup"`
	BackupSuffix string   `toml:"backup_suffix"`
}

type TransformConfig struct {
	Policy   string `toml:"policy"`
	FailFast bool   `toml:"fail_fast"`
	Workers  int    `toml:"workers"`
}

type PassphraseConfig struct {
	Source         string `toml:"source"`
	EnvVar         string `toml:"env_var"`
	File           string `toml:"file"`
	KeyringService string `toml:"keyring_service"`
	KeyringKey     string `toml:"keyring_key"`
}

type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// DefaultProjectConfig returns the configuration written by "envseal init".
func DefaultProjectConfig(projectName string) *ProjectConfig {
	if projectName == "" {
		projectName = "default"
	}
	return &ProjectConfig{
		Files: FilesConfig{
			Patterns:     []string{".env"},
			Backup:       true,
			BackupSuffix: ".bak",
		},
		Transform: TransformConfig{
			Policy:  "all",
			Workers: 1,
		},
		Passphrase: PassphraseConfig{
			Source:         SourceEnv,
			EnvVar:         DefaultPassphraseEnvVar,
			KeyringService: "envseal",
			KeyringKey:     projectName,
		},
		Audit: AuditConfig{
			Enabled: true,
			Path:    filepath.Join(".envseal", "audit.jsonl"),
		},
	}
}

// LoadProjectConfig reads the configuration at path. Keys missing from the
// file keep their default values.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	projectName := filepath.Base(filepath.Dir(path))
	config := DefaultProjectConfig(projectName)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveProjectConfig writes config to path, replacing any existing file.
func SaveProjectConfig(path string, config *ProjectConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save project config: %w", err)
	}

	return nil
}

// Validate checks values that the loader cannot check by type alone.
func (c *ProjectConfig) Validate() error {
	switch strings.ToLower(c.Transform.Policy) {
	case "", "all", "marked-only":
	default:
		return fmt.Errorf("%w: transform.policy must be \"all\" or \"marked-only\", got %q", kerrors.ErrInvalidConfig, c.Transform.Policy)
	}

	if c.Transform.Workers < 0 {
		return fmt.Errorf("%w: transform.workers must not be negative", kerrors.ErrInvalidConfig)
	}

	switch c.Passphrase.Source {
	case "", SourceEnv, SourcePrompt:
	case SourceFile:
		if c.Passphrase.File == "" {
			return fmt.Errorf("%w: passphrase.file is required when source is \"file\"", kerrors.ErrInvalidConfig)
		}
	case SourceKeyring:
		if c.Passphrase.KeyringService == "" || c.Passphrase.KeyringKey == "" {
			return fmt.Errorf("%w: passphrase.keyring_service and passphrase.keyring_key are required when source is \"keyring\"", kerrors.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown passphrase.source %q", kerrors.ErrInvalidConfig, c.Passphrase.Source)
	}

	if c.Files.Backup && c.Files.BackupSuffix == "" {
		return fmt.Errorf("%w: files.backup_suffix is required when backups are enabled", kerrors.ErrInvalidConfig)
	}

	return nil
}

// ResolvePath makes a config-relative path absolute against the project root.
func (s *ProjectSettings) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.ProjectPath, path)
}
