package envelope

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// Version is the token format tag.
	Version = "v1"

	// Prefix marks a value as an envelope token (or, in marked-only mode,
	// as a value flagged for sealing).
	Prefix = "ENC[" + Version + "]:"

	// SaltSize is the Argon2id salt length in bytes.
	SaltSize = 16

	// NonceSize is the XChaCha20-Poly1305 nonce length in bytes.
	NonceSize = chacha20poly1305.NonceSizeX

	// KeySize is the derived key length in bytes.
	KeySize = chacha20poly1305.KeySize
)

// Strict decoding rejects non-zero padding bits, so every altered character
// of a token changes the decoded bytes or fails to decode.
var b64 = base64.URLEncoding.Strict()

// Token is a decoded envelope.
type Token struct {
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// String serializes the token, marker included.
func (t *Token) String() string {
	// Marshalling a map of strings cannot fail.
	body, _ := json.Marshal(map[string]string{
		"s": b64.EncodeToString(t.Salt),
		"n": b64.EncodeToString(t.Nonce),
		"c": b64.EncodeToString(t.Ciphertext),
	})
	return Prefix + b64.EncodeToString(body)
}

// ParseToken decodes a marker-prefixed token and checks its structure.
// It does not verify authenticity.
func ParseToken(value string) (*Token, error) {
	if !HasMarker(value) {
		return nil, fmt.Errorf("%w: missing %s prefix", kerrors.ErrFormat, Prefix)
	}

	body, err := b64.DecodeString(Payload(value))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFormat, err)
	}

	// Decoding into a map keeps field names exact; struct decoding would
	// accept "S" for "s".
	var fields map[string]string
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFormat, err)
	}

	t := &Token{}
	for _, f := range []struct {
		name string
		dst  *[]byte
	}{
		{"s", &t.Salt},
		{"n", &t.Nonce},
		{"c", &t.Ciphertext},
	} {
		raw, ok := fields[f.name]
		if !ok {
			return nil, fmt.Errorf("%w: missing field %q", kerrors.ErrFormat, f.name)
		}
		decoded, err := b64.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", kerrors.ErrFormat, f.name, err)
		}
		*f.dst = decoded
	}

	if len(t.Salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt is %d bytes, want %d", kerrors.ErrFormat, len(t.Salt), SaltSize)
	}
	if len(t.Nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce is %d bytes, want %d", kerrors.ErrFormat, len(t.Nonce), NonceSize)
	}
	if len(t.Ciphertext) < chacha20poly1305.Overhead {
		return nil, fmt.Errorf("%w: ciphertext shorter than the authentication tag", kerrors.ErrFormat)
	}

	return t, nil
}

// HasMarker reports whether value starts with the token prefix, regardless
// of what follows it.
func HasMarker(value string) bool {
	return strings.HasPrefix(value, Prefix)
}

// Payload returns value with the token prefix removed.
func Payload(value string) string {
	return strings.TrimPrefix(value, Prefix)
}

// IsSealed reports whether value is a structurally valid token.
func IsSealed(value string) bool {
	_, err := ParseToken(value)
	return err == nil
}
