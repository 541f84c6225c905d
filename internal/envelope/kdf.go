package envelope

import (
	"fmt"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"golang.org/x/crypto/argon2"
)

// KDF holds the Argon2id cost parameters.
type KDF struct {
	Time    uint32 // iterations
	Memory  uint32 // in KiB
	Threads uint8
}

// DefaultKDF is the cost used by the v1 token scheme.
var DefaultKDF = KDF{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 4,
}

func (k KDF) validate() error {
	if k.Time == 0 || k.Threads == 0 {
		return fmt.Errorf("%w: argon2 time and threads must be at least 1", kerrors.ErrInvalidInput)
	}
	if k.Memory < 8*uint32(k.Threads) {
		return fmt.Errorf("%w: argon2 memory must be at least %d KiB", kerrors.ErrInvalidInput, 8*uint32(k.Threads))
	}
	return nil
}

// DeriveKey derives a KeySize key from a passphrase and salt using Argon2id.
// The same inputs always produce the same key.
func DeriveKey(passphrase, salt []byte, kdf KDF) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: passphrase must not be empty", kerrors.ErrInvalidInput)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", kerrors.ErrInvalidInput, SaltSize, len(salt))
	}
	if err := kdf.validate(); err != nil {
		return nil, err
	}

	return argon2.IDKey(passphrase, salt, kdf.Time, kdf.Memory, kdf.Threads, KeySize), nil
}
