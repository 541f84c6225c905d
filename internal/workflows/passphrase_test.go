package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/envseal/internal/configs"
	"github.com/PolarWolf314/envseal/internal/passphrase"
)

func TestPassphraseSourceFileRelativeToRoot(t *testing.T) {
	dir := setupProject(t, func(c *configs.ProjectConfig) {
		c.Passphrase.Source = configs.SourceFile
		c.Passphrase.File = "secret.pass"
	})
	writeFile(t, filepath.Join(dir, "secret.pass"), "from-file\n")
	sub := filepath.Join(dir, "services", "api")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	source, err := PassphraseSource(PassphraseOptions{Dir: sub})
	if err != nil {
		t.Fatalf("PassphraseSource failed: %v", err)
	}
	got, err := source.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if string(got) != "from-file" {
		t.Errorf("Expected from-file, got %q", got)
	}
}

func TestPassphraseSourceOverride(t *testing.T) {
	dir := setupProject(t, nil)

	source, err := PassphraseSource(PassphraseOptions{
		Dir:       dir,
		Overrides: passphrase.Overrides{Literal: "on-the-command-line"},
	})
	if err != nil {
		t.Fatalf("PassphraseSource failed: %v", err)
	}
	got, err := source.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if string(got) != "on-the-command-line" {
		t.Errorf("Expected the literal override, got %q", got)
	}
}

func TestPassphraseSourceEnv(t *testing.T) {
	t.Setenv(configs.DefaultPassphraseEnvVar, "from-env")
	dir := setupProject(t, nil)

	source, err := PassphraseSource(PassphraseOptions{Dir: dir})
	if err != nil {
		t.Fatalf("PassphraseSource failed: %v", err)
	}
	got, err := source.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if string(got) != "from-env" {
		t.Errorf("Expected from-env, got %q", got)
	}
}

func TestProjectKeyring(t *testing.T) {
	dir := setupProject(t, func(c *configs.ProjectConfig) {
		c.Passphrase.KeyringService = "acme"
		c.Passphrase.KeyringKey = "billing"
	})

	k, err := ProjectKeyring(dir)
	if err != nil {
		t.Fatalf("ProjectKeyring failed: %v", err)
	}
	if k.Service != "acme" || k.Key != "billing" {
		t.Errorf("Expected acme/billing, got %s/%s", k.Service, k.Key)
	}
}
