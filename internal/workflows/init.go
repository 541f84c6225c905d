package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/envseal/internal/audit"
	"github.com/PolarWolf314/envseal/internal/configs"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/files"
	"github.com/PolarWolf314/envseal/internal/utils"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Dir is the project root to create. Defaults to the working directory.
	Dir string

	// Force overwrites an existing .envseal.toml.
	Force bool

	// PassphraseSource is written to the config when set.
	PassphraseSource string

	// PassphraseFile selects the "file" source with this path.
	PassphraseFile string
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	ProjectName string
	ProjectPath string
	ConfigPath  string

	// GitignoreUpdated reports whether backup patterns were added to
	// .gitignore.
	GitignoreUpdated bool
}

// Init writes a default .envseal.toml and keeps plaintext backups out of git.
//
// Returns ErrConfigExists if the directory already has a config and Force is
// not set.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	dir := opts.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		dir = cwd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, configs.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrConfigExists, configPath)
	}

	name := utils.GetProjectName(dir)
	config := configs.DefaultProjectConfig(name)
	if opts.PassphraseSource != "" {
		config.Passphrase.Source = opts.PassphraseSource
	}
	if opts.PassphraseFile != "" {
		config.Passphrase.Source = configs.SourceFile
		config.Passphrase.File = opts.PassphraseFile
	}

	if err := configs.SaveProjectConfig(configPath, config); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Join(dir, files.StateDir), 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", files.StateDir, err)
	}

	updated, err := ensureGitignore(dir, config.Files.BackupSuffix)
	if err != nil {
		return nil, fmt.Errorf("updating .gitignore: %w", err)
	}

	entry := audit.NewEntry("init")
	audit.Log(filepath.Join(dir, config.Audit.Path), entry)

	return &InitResult{
		ProjectName:      name,
		ProjectPath:      dir,
		ConfigPath:       configPath,
		GitignoreUpdated: updated,
	}, nil
}

// backupIgnorePatterns are the .gitignore lines that hide backups written
// with suffix.
func backupIgnorePatterns(suffix string) []string {
	return []string{".env*" + suffix, "*.env" + suffix}
}

// ensureGitignore adds backup patterns to .gitignore in git repositories.
// It reports whether the file was changed.
func ensureGitignore(dir, suffix string) (bool, error) {
	if suffix == "" {
		return false, nil
	}
	path := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if _, statErr := os.Stat(filepath.Join(dir, ".git")); statErr != nil {
			// Not a git repository.
			return false, nil
		}
	} else if err != nil {
		return false, err
	}

	existing := make(map[string]bool)
	for _, line := range strings.Split(string(content), "\n") {
		existing[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, pattern := range backupIgnorePatterns(suffix) {
		if !existing[pattern] {
			missing = append(missing, pattern)
		}
	}
	if len(missing) == 0 {
		return false, nil
	}

	var b strings.Builder
	b.Write(content)
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		b.WriteString("\n")
	}
	b.WriteString("# envseal plaintext backups\n")
	for _, pattern := range missing {
		b.WriteString(pattern + "\n")
	}

	return true, files.WriteAtomic(path, []byte(b.String()), 0644)
}
