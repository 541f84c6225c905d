package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/PolarWolf314/envseal/internal/configs"
	"github.com/PolarWolf314/envseal/internal/dotenv"
	"github.com/PolarWolf314/envseal/internal/transform"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	// Dir is the directory to run in. Defaults to the working directory.
	Dir string
}

// Doctor runs health checks on the envseal project.
//
// The doctor workflow checks:
//   - Project configuration validity
//   - Passphrase source availability and file permissions
//   - Gitignore configuration for plaintext backups
//   - Leftover plaintext backups
//   - Values still waiting to be sealed, and lines that cannot be parsed
func Doctor(ctx context.Context, opts DoctorOptions) (*DoctorResult, error) {
	proj, loadErr := loadProject(opts.Dir)

	var results []CheckResult
	results = append(results, checkProjectConfig(proj, loadErr))

	if loadErr == nil {
		checks := []func(*project) CheckResult{
			checkPassphraseSource,
			checkGitignore,
			checkLeftoverBackups,
			checkUnsealedValues,
		}
		for _, check := range checks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results = append(results, check(proj))
		}
	}

	// Collect suggestions (deduplicated).
	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
	}, nil
}

// checkProjectConfig checks if the project config exists and parses correctly.
func checkProjectConfig(proj *project, loadErr error) CheckResult {
	const name = "Project configuration"

	if loadErr != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to load %s: %v", configs.ConfigFileName, loadErr),
			Suggestion: "Fix the errors in " + configs.ConfigFileName + " or recreate it with 'envseal init --force'",
		}
	}

	if !proj.initialized {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    "No " + configs.ConfigFileName + " found, using defaults",
			Suggestion: "Run 'envseal init' to create a project configuration",
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: "Project configuration valid",
	}
}

// checkPassphraseSource checks that the configured source can yield a
// passphrase without prompting.
func checkPassphraseSource(proj *project) CheckResult {
	const name = "Passphrase source"
	cfg := proj.config.Passphrase

	switch cfg.Source {
	case configs.SourceFile:
		path := cfg.File
		if rest, ok := strings.CutPrefix(path, "~/"); ok {
			if home, err := os.UserHomeDir(); err == nil {
				path = filepath.Join(home, rest)
			}
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(proj.root, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return CheckResult{
				Name:       name,
				Status:     CheckError,
				Message:    fmt.Sprintf("Passphrase file %s not found", cfg.File),
				Suggestion: "Create the passphrase file or change passphrase.source",
			}
		}
		if runtime.GOOS != "windows" && info.Mode().Perm()&0077 != 0 {
			return CheckResult{
				Name:       name,
				Status:     CheckWarning,
				Message:    fmt.Sprintf("Passphrase file has permissions %04o (should be 0600)", info.Mode().Perm()),
				Suggestion: fmt.Sprintf("Run: chmod 600 %s", cfg.File),
			}
		}
	case configs.SourceKeyring:
		return CheckResult{
			Name:    name,
			Status:  CheckPass,
			Message: fmt.Sprintf("Using keyring entry %s/%s", cfg.KeyringService, cfg.KeyringKey),
		}
	case configs.SourcePrompt:
		return CheckResult{
			Name:    name,
			Status:  CheckPass,
			Message: "Passphrase is entered interactively",
		}
	default:
		envVar := cfg.EnvVar
		if envVar == "" {
			envVar = configs.DefaultPassphraseEnvVar
		}
		if os.Getenv(envVar) == "" {
			return CheckResult{
				Name:       name,
				Status:     CheckWarning,
				Message:    fmt.Sprintf("$%s is not set, commands will prompt", envVar),
				Suggestion: fmt.Sprintf("Export %s or store the passphrase with 'envseal keyring set'", envVar),
			}
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: "Passphrase source available",
	}
}

// checkGitignore checks that plaintext backups are ignored by git.
func checkGitignore(proj *project) CheckResult {
	const name = "Gitignore configuration"

	if !proj.config.Files.Backup {
		return CheckResult{Name: name, Status: CheckPass, Message: "Backups are disabled"}
	}

	content, err := os.ReadFile(filepath.Join(proj.root, ".gitignore"))
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    "No .gitignore file found",
			Suggestion: "Add to .gitignore: " + strings.Join(backupIgnorePatterns(proj.config.Files.BackupSuffix), ", "),
		}
	}
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to read .gitignore: %v", err),
			Suggestion: "Check that the .gitignore file is accessible",
		}
	}

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, proj.config.Files.BackupSuffix) {
			return CheckResult{
				Name:    name,
				Status:  CheckPass,
				Message: "Backup patterns found in .gitignore",
			}
		}
	}

	return CheckResult{
		Name:       name,
		Status:     CheckWarning,
		Message:    "Plaintext backups are not ignored by git",
		Suggestion: "Add to .gitignore: " + strings.Join(backupIgnorePatterns(proj.config.Files.BackupSuffix), ", "),
	}
}

// checkLeftoverBackups looks for backup copies next to the configured files.
func checkLeftoverBackups(proj *project) CheckResult {
	const name = "Plaintext backups"

	envFiles, err := proj.resolveFiles(nil)
	if err != nil {
		return CheckResult{Name: name, Status: CheckPass, Message: "No .env files found"}
	}

	var leftovers []string
	for _, path := range envFiles {
		backup := path + proj.config.Files.BackupSuffix
		if _, err := os.Stat(backup); err == nil {
			leftovers = append(leftovers, proj.rel(backup))
		}
	}

	if len(leftovers) > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Found %d backup file(s) that may hold plaintext: %s", len(leftovers), strings.Join(leftovers, ", ")),
			Suggestion: "Delete backups once the sealed files are verified",
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "No leftover backups"}
}

// checkUnsealedValues reports values the configured policy would still seal.
func checkUnsealedValues(proj *project) CheckResult {
	const name = "Unsealed values"

	envFiles, err := proj.resolveFiles(nil)
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("No .env files found: %v", err),
			Suggestion: "Check files.patterns in " + configs.ConfigFileName,
		}
	}

	policy, _ := transform.ParsePolicy(proj.config.Transform.Policy)

	var pending, invalid int
	var pendingFiles []string
	for _, path := range envFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return CheckResult{
				Name:       name,
				Status:     CheckError,
				Message:    fmt.Sprintf("Failed to read %s: %v", proj.rel(path), err),
				Suggestion: "Check that the project directory is accessible",
			}
		}
		status := transform.Inspect(dotenv.Parse(string(data)))

		n := status.Marked
		if policy == transform.PolicyAll {
			n += status.Plain
		}
		if n > 0 {
			pending += n
			pendingFiles = append(pendingFiles, proj.rel(path))
		}
		invalid += status.Invalid
	}

	if pending > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Found %d value(s) waiting to be sealed in %s", pending, strings.Join(pendingFiles, ", ")),
			Suggestion: "Run 'envseal encrypt' to seal them",
		}
	}
	if invalid > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("All values sealed, but %d line(s) could not be parsed", invalid),
			Suggestion: "Run 'envseal status --verbose' to see the unparsed lines",
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: fmt.Sprintf("All values in %d file(s) sealed", len(envFiles)),
	}
}

// calculateDoctorSummary calculates the counts of checks by status.
func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
