package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/PolarWolf314/envseal/internal/envelope"
	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

func TestSealUnsealCommands(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "seal", "hunter2", "--passphrase", cliPassphrase)
	if err != nil {
		t.Fatalf("seal failed: %v\n%s", err, output)
	}
	token := strings.TrimSpace(output)
	if !envelope.IsSealed(token) {
		t.Fatalf("Expected a token, got %q", output)
	}

	output, err = runCLI(t, "unseal", token, "--passphrase", cliPassphrase)
	if err != nil {
		t.Fatalf("unseal failed: %v\n%s", err, output)
	}
	if strings.TrimSpace(output) != "hunter2" {
		t.Errorf("Expected hunter2, got %q", output)
	}

	_, err = runCLI(t, "unseal", token, "--passphrase", "wrong")
	if !errors.Is(err, kerrors.ErrAuthentication) {
		t.Errorf("Expected ErrAuthentication, got %v", err)
	}
}

func TestEnvCommandFormats(t *testing.T) {
	tempDir := setupTestEnvironment(t)
	writeEnvFile(t, tempDir, ".env", "NAME=it's me\nPORT=8080\n")

	tests := []struct {
		format string
		check  func(t *testing.T, output string)
	}{
		{"dotenv", func(t *testing.T, output string) {
			if output != "NAME=it's me\nPORT=8080\n" {
				t.Errorf("Unexpected dotenv output %q", output)
			}
		}},
		{"shell", func(t *testing.T, output string) {
			if !strings.Contains(output, `export NAME='it'\''s me'`) {
				t.Errorf("Expected quoted export, got %q", output)
			}
		}},
		{"json", func(t *testing.T, output string) {
			var env map[string]string
			if err := json.Unmarshal([]byte(output), &env); err != nil {
				t.Fatalf("Output is not JSON: %v\n%s", err, output)
			}
			if env["PORT"] != "8080" {
				t.Errorf("Expected PORT=8080, got %v", env)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			output, err := runCLI(t, "env", "--format", tt.format, "--passphrase", cliPassphrase)
			if err != nil {
				t.Fatalf("env failed: %v\n%s", err, output)
			}
			tt.check(t, output)
		})
	}

	if _, err := runCLI(t, "env", "--format", "yaml", "--passphrase", cliPassphrase); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"", "''"},
		{"it's", `'it'\''s'`},
		{"$HOME", "'$HOME'"},
	}
	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}
