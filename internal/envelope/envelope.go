package envelope

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"runtime"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

// Codec seals and unseals values with a fixed key derivation cost.
// A Codec holds no key material and is safe for concurrent use.
type Codec struct {
	kdf  KDF
	rand io.Reader
}

// Option configures a Codec.
type Option func(*Codec)

// WithKDF overrides the Argon2id cost. Tokens sealed with a non-default
// cost can only be opened by a Codec using the same cost.
func WithKDF(kdf KDF) Option {
	return func(c *Codec) {
		c.kdf = kdf
	}
}

// WithRandom overrides the source of salts and nonces.
func WithRandom(r io.Reader) Option {
	return func(c *Codec) {
		c.rand = r
	}
}

// New returns a Codec using DefaultKDF unless overridden.
func New(opts ...Option) *Codec {
	c := &Codec{
		kdf:  DefaultKDF,
		rand: rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultCodec backs the package-level Seal and Unseal.
var DefaultCodec = New()

// Seal encrypts plaintext under passphrase and returns a token.
func Seal(plaintext, passphrase []byte) (string, error) {
	return DefaultCodec.Seal(plaintext, passphrase)
}

// Unseal opens a token produced by Seal.
func Unseal(token string, passphrase []byte) ([]byte, error) {
	return DefaultCodec.Unseal(token, passphrase)
}

// KDF returns the key derivation cost used by c.
func (c *Codec) KDF() KDF {
	return c.kdf
}

// Seal encrypts plaintext under passphrase. A new salt and nonce are drawn
// for every call.
func (c *Codec) Seal(plaintext, passphrase []byte) (string, error) {
	if len(passphrase) == 0 {
		return "", fmt.Errorf("%w: passphrase must not be empty", kerrors.ErrInvalidInput)
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(c.rand, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	aead, wipe, err := c.newAEAD(passphrase, salt)
	if err != nil {
		return "", err
	}
	defer wipe()

	token := &Token{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
	}
	return token.String(), nil
}

// Unseal decrypts token with passphrase. It returns ErrFormat when the token
// is malformed and ErrAuthentication when the integrity check fails.
func (c *Codec) Unseal(token string, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: passphrase must not be empty", kerrors.ErrInvalidInput)
	}

	t, err := ParseToken(token)
	if err != nil {
		return nil, err
	}

	aead, wipe, err := c.newAEAD(passphrase, t.Salt)
	if err != nil {
		return nil, err
	}
	defer wipe()

	plaintext, err := aead.Open(nil, t.Nonce, t.Ciphertext, nil)
	if err != nil {
		return nil, kerrors.ErrAuthentication
	}
	return plaintext, nil
}

// newAEAD derives the key for salt and returns the AEAD along with a func
// that zeroes the key.
func (c *Codec) newAEAD(passphrase, salt []byte) (cipher.AEAD, func(), error) {
	key, err := DeriveKey(passphrase, salt, c.kdf)
	if err != nil {
		return nil, nil, err
	}
	wipe := func() { Wipe(key) }

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		wipe()
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return aead, wipe, nil
}

// Wipe overwrites b with zeros. Use it on plaintext and passphrases once
// they are no longer needed.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
