package workflows

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// sealedProject returns a project whose .env was sealed with testPassphrase,
// and the plaintext it held.
func sealedProject(t *testing.T) (string, string) {
	t.Helper()
	dir := setupProject(t, nil)
	original := "# keys\nAPI_KEY=abc123\nexport DB_PASS=\"hunter2\" # prod\n"
	writeFile(t, filepath.Join(dir, ".env"), original)

	if _, err := Seal(context.Background(), SealOptions{
		Dir:        dir,
		Passphrase: testPassphrase,
		NoBackup:   true,
		Codec:      testCodec(),
	}); err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	return dir, original
}

func TestRevealRestoresOriginal(t *testing.T) {
	dir, original := sealedProject(t)

	result, err := Reveal(context.Background(), RevealOptions{
		Dir:        dir,
		Passphrase: testPassphrase,
		NoBackup:   true,
		Codec:      testCodec(),
	})
	if err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	if result.Changed() != 2 {
		t.Errorf("Expected 2 revealed values, got %d", result.Changed())
	}
	if got := readFile(t, filepath.Join(dir, ".env")); got != original {
		t.Errorf("Expected original content back:\nwant %q\ngot  %q", original, got)
	}
}

func TestRevealToStdout(t *testing.T) {
	dir, original := sealedProject(t)
	envPath := filepath.Join(dir, ".env")
	sealed := readFile(t, envPath)

	result, err := Reveal(context.Background(), RevealOptions{
		Dir:        dir,
		Passphrase: testPassphrase,
		Stdout:     true,
		Codec:      testCodec(),
	})
	if err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	if result.Files[0].Content != original {
		t.Errorf("Expected revealed content %q, got %q", original, result.Files[0].Content)
	}
	if got := readFile(t, envPath); got != sealed {
		t.Error("Reveal to stdout must not modify the file")
	}
}

func TestRevealToOutputPath(t *testing.T) {
	dir, original := sealedProject(t)
	out := filepath.Join(dir, "plain", ".env.local")

	if _, err := Reveal(context.Background(), RevealOptions{
		Dir:        dir,
		Passphrase: testPassphrase,
		OutputPath: out,
		Codec:      testCodec(),
	}); err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	if got := readFile(t, out); got != original {
		t.Errorf("Expected output file to hold %q, got %q", original, got)
	}
}

func TestRevealOutputPathNeedsOneFile(t *testing.T) {
	dir := setupProject(t, nil)
	writeFile(t, filepath.Join(dir, ".env"), "A=1\n")
	writeFile(t, filepath.Join(dir, ".env.local"), "B=2\n")

	_, err := Reveal(context.Background(), RevealOptions{
		Dir:          dir,
		FilePatterns: []string{"."},
		Passphrase:   testPassphrase,
		OutputPath:   filepath.Join(dir, "out.env"),
		Codec:        testCodec(),
	})
	if !errors.Is(err, kerrors.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestRevealWrongPassphrase(t *testing.T) {
	dir, _ := sealedProject(t)
	envPath := filepath.Join(dir, ".env")
	sealed := readFile(t, envPath)

	result, err := Reveal(context.Background(), RevealOptions{
		Dir:        dir,
		Passphrase: otherPassphrase,
		Codec:      testCodec(),
	})
	if err != nil {
		t.Fatalf("Reveal should report line errors, not fail: %v", err)
	}
	if result.Failed() != 2 {
		t.Errorf("Expected 2 failed lines, got %d", result.Failed())
	}
	for _, lineErr := range result.Files[0].Errors {
		if !errors.Is(lineErr, kerrors.ErrAuthentication) {
			t.Errorf("Expected ErrAuthentication, got %v", lineErr)
		}
	}
	if got := readFile(t, envPath); got != sealed {
		t.Error("File should not change when nothing was revealed")
	}
}

func TestRevealFailFast(t *testing.T) {
	dir, _ := sealedProject(t)

	_, err := Reveal(context.Background(), RevealOptions{
		Dir:        dir,
		Passphrase: otherPassphrase,
		FailFast:   true,
		Codec:      testCodec(),
	})
	if !errors.Is(err, kerrors.ErrAuthentication) {
		t.Errorf("Expected ErrAuthentication, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), ".env") {
		t.Errorf("Expected error to name the file, got %v", err)
	}
}
