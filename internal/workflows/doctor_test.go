package workflows

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/PolarWolf314/envseal/internal/configs"
)

func findCheck(t *testing.T, result *DoctorResult, name string) CheckResult {
	t.Helper()
	for _, check := range result.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("Check %q not found", name)
	return CheckResult{}
}

func TestDoctorHealthyProject(t *testing.T) {
	t.Setenv(configs.DefaultPassphraseEnvVar, string(testPassphrase))
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git: %v", err)
	}
	if _, err := Init(context.Background(), InitOptions{Dir: dir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	writeFile(t, filepath.Join(dir, ".env"), "A=1\n")
	if _, err := Seal(context.Background(), SealOptions{Dir: dir, Passphrase: testPassphrase, NoBackup: true, Codec: testCodec()}); err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	result, err := Doctor(context.Background(), DoctorOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if result.Summary.Warnings != 0 || result.Summary.Errors != 0 {
		t.Errorf("Expected a clean report, got %+v: %+v", result.Summary, result.Checks)
	}
	if result.Summary.Passed != 5 {
		t.Errorf("Expected 5 passed checks, got %d", result.Summary.Passed)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("Expected no suggestions, got %v", result.Suggestions)
	}
}

func TestDoctorFindsProblems(t *testing.T) {
	t.Setenv(configs.DefaultPassphraseEnvVar, "")
	dir := setupProject(t, nil)
	writeFile(t, filepath.Join(dir, ".env"), "A=1\nB=ENC[v1]:todo\n")
	writeFile(t, filepath.Join(dir, ".env.bak"), "A=1\n")

	result, err := Doctor(context.Background(), DoctorOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}

	tests := []struct {
		check string
		want  CheckStatus
	}{
		{"Project configuration", CheckPass},
		{"Passphrase source", CheckWarning},
		{"Gitignore configuration", CheckWarning},
		{"Plaintext backups", CheckWarning},
		{"Unsealed values", CheckWarning},
	}
	for _, tt := range tests {
		if got := findCheck(t, result, tt.check).Status; got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.check, tt.want, got)
		}
	}
	if result.Summary.Warnings != 4 {
		t.Errorf("Expected 4 warnings, got %d", result.Summary.Warnings)
	}
	if len(result.Suggestions) != 4 {
		t.Errorf("Expected 4 suggestions, got %v", result.Suggestions)
	}
}

func TestDoctorInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, configs.ConfigFileName), "[transform]\nworkers = -1\n")

	result, err := Doctor(context.Background(), DoctorOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if len(result.Checks) != 1 {
		t.Fatalf("Expected only the config check, got %d checks", len(result.Checks))
	}
	if result.Checks[0].Status != CheckError {
		t.Errorf("Expected an error, got %s", result.Checks[0].Status)
	}
	if result.Summary.Errors != 1 {
		t.Errorf("Expected 1 error, got %d", result.Summary.Errors)
	}
}

func TestDoctorUninitialized(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "A=1\n")

	result, err := Doctor(context.Background(), DoctorOptions{Dir: dir})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	if got := findCheck(t, result, "Project configuration").Status; got != CheckWarning {
		t.Errorf("Expected a warning, got %s", got)
	}
}

func TestDoctorPassphraseFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("File permissions not enforced on Windows")
	}

	dir := setupProject(t, func(c *configs.ProjectConfig) {
		c.Passphrase.Source = configs.SourceFile
		c.Passphrase.File = "secret.pass"
	})
	writeFile(t, filepath.Join(dir, ".env"), "A=1\n")

	t.Run("missing", func(t *testing.T) {
		result, err := Doctor(context.Background(), DoctorOptions{Dir: dir})
		if err != nil {
			t.Fatalf("Doctor failed: %v", err)
		}
		if got := findCheck(t, result, "Passphrase source").Status; got != CheckError {
			t.Errorf("Expected error for a missing file, got %s", got)
		}
	})

	t.Run("world readable", func(t *testing.T) {
		path := filepath.Join(dir, "secret.pass")
		writeFile(t, path, "pw\n")
		if err := os.Chmod(path, 0644); err != nil {
			t.Fatalf("Chmod failed: %v", err)
		}
		result, err := Doctor(context.Background(), DoctorOptions{Dir: dir})
		if err != nil {
			t.Fatalf("Doctor failed: %v", err)
		}
		if got := findCheck(t, result, "Passphrase source").Status; got != CheckWarning {
			t.Errorf("Expected warning for loose permissions, got %s", got)
		}
	})

	t.Run("private", func(t *testing.T) {
		path := filepath.Join(dir, "secret.pass")
		if err := os.Chmod(path, 0600); err != nil {
			t.Fatalf("Chmod failed: %v", err)
		}
		result, err := Doctor(context.Background(), DoctorOptions{Dir: dir})
		if err != nil {
			t.Fatalf("Doctor failed: %v", err)
		}
		if got := findCheck(t, result, "Passphrase source").Status; got != CheckPass {
			t.Errorf("Expected pass, got %s", got)
		}
	})
}

func TestCheckStatusString(t *testing.T) {
	tests := []struct {
		status CheckStatus
		want   string
	}{
		{CheckPass, "pass"},
		{CheckWarning, "warning"},
		{CheckError, "error"},
		{CheckStatus(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
