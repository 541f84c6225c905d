package passphrase

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// Opener opens the keyring for a service.
type Opener func(service string) (keyring.Keyring, error)

// OpenSystemKeyring opens the platform's native keyring. File-based
// fallbacks are not allowed since they would need a passphrase of their own.
func OpenSystemKeyring(service string) (keyring.Keyring, error) {
	return keyring.Open(keyring.Config{
		ServiceName: service,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
		},
		KeychainTrustApplication: true,
	})
}

// Keyring reads the passphrase stored under Key for Service.
type Keyring struct {
	Service string
	Key     string

	// Open replaces OpenSystemKeyring when set.
	Open Opener
}

func (k Keyring) Name() string { return "keyring:" + k.Service + "/" + k.Key }

func (k Keyring) open() (keyring.Keyring, error) {
	open := k.Open
	if open == nil {
		open = OpenSystemKeyring
	}
	ring, err := open(k.Service)
	if err != nil {
		return nil, fmt.Errorf("%w: keyring unavailable: %v", kerrors.ErrPassphraseUnavailable, err)
	}
	return ring, nil
}

func (k Keyring) Resolve(ctx context.Context) ([]byte, error) {
	ring, err := k.open()
	if err != nil {
		return nil, err
	}

	item, err := ring.Get(k.Key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: no keyring entry %s", kerrors.ErrPassphraseUnavailable, k.Key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keyring entry %s: %w", k.Key, err)
	}
	if len(item.Data) == 0 {
		return nil, fmt.Errorf("%w: keyring entry %s is empty", kerrors.ErrPassphraseUnavailable, k.Key)
	}
	return item.Data, nil
}

// Store saves passphrase in the keyring, replacing any existing entry.
func (k Keyring) Store(passphrase []byte) error {
	if len(passphrase) == 0 {
		return fmt.Errorf("%w: passphrase must not be empty", kerrors.ErrInvalidInput)
	}
	ring, err := k.open()
	if err != nil {
		return err
	}
	return ring.Set(keyring.Item{
		Key:         k.Key,
		Data:        passphrase,
		Label:       "envseal passphrase (" + k.Key + ")",
		Description: "Passphrase used by envseal to seal .env values",
	})
}

// Delete removes the entry. Deleting a missing entry is not an error.
func (k Keyring) Delete() error {
	ring, err := k.open()
	if err != nil {
		return err
	}
	if err := ring.Remove(k.Key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete keyring entry %s: %w", k.Key, err)
	}
	return nil
}
