package workflows

import (
	"context"
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

func TestRotate(t *testing.T) {
	dir, _ := sealedProject(t)

	result, err := Rotate(context.Background(), RotateOptions{
		Dir:           dir,
		OldPassphrase: testPassphrase,
		NewPassphrase: otherPassphrase,
		NoBackup:      true,
		Codec:         testCodec(),
	})
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if result.Changed() != 2 {
		t.Errorf("Expected 2 rotated values, got %d", result.Changed())
	}

	env, err := Load(context.Background(), LoadOptions{Dir: dir, Passphrase: otherPassphrase, Codec: testCodec()})
	if err != nil {
		t.Fatalf("Load with the new passphrase failed: %v", err)
	}
	if env["API_KEY"] != "abc123" || env["DB_PASS"] != "hunter2" {
		t.Errorf("Unexpected values after rotation: %v", env)
	}

	if _, err := Load(context.Background(), LoadOptions{Dir: dir, Passphrase: testPassphrase, Codec: testCodec()}); !errors.Is(err, kerrors.ErrAuthentication) {
		t.Errorf("Expected the old passphrase to fail with ErrAuthentication, got %v", err)
	}
}

func TestRotateWrongOldPassphrase(t *testing.T) {
	dir, _ := sealedProject(t)

	result, err := Rotate(context.Background(), RotateOptions{
		Dir:           dir,
		OldPassphrase: []byte("not it"),
		NewPassphrase: otherPassphrase,
		Codec:         testCodec(),
	})
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if result.Changed() != 0 || result.Failed() != 2 {
		t.Errorf("Expected 0 changed and 2 failed, got %d and %d", result.Changed(), result.Failed())
	}

	// Values keep their old tokens.
	if _, err := Load(context.Background(), LoadOptions{Dir: dir, Passphrase: testPassphrase, Codec: testCodec()}); err != nil {
		t.Errorf("Values should still open with the original passphrase: %v", err)
	}
}

func TestRotateInvalidPassphrases(t *testing.T) {
	dir, _ := sealedProject(t)

	tests := []struct {
		name    string
		old     []byte
		new     []byte
		wantErr error
	}{
		{"missing old", nil, otherPassphrase, kerrors.ErrInvalidInput},
		{"missing new", testPassphrase, nil, kerrors.ErrInvalidInput},
		{"same passphrase", testPassphrase, testPassphrase, kerrors.ErrPassphraseMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rotate(context.Background(), RotateOptions{
				Dir:           dir,
				OldPassphrase: tt.old,
				NewPassphrase: tt.new,
				Codec:         testCodec(),
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
