// Package envelope seals individual values into self-describing tokens.
//
// A token is the literal marker ENC[v1]: followed by the base64url encoding
// of a small JSON object:
//
//	{"s": <salt>, "n": <nonce>, "c": <ciphertext>}
//
// Each field is itself base64url encoded. The salt feeds Argon2id, which
// turns the passphrase into a 256-bit key; the nonce and key drive
// XChaCha20-Poly1305, whose authentication tag is part of the ciphertext.
//
// # Guarantees
//
//   - Every Seal call draws a fresh salt and nonce, so sealing the same
//     plaintext twice never yields the same token.
//   - Unseal is all-or-nothing. A wrong passphrase or a modified token
//     returns ErrAuthentication and no plaintext.
//   - IsSealed only inspects structure. It never derives a key, which keeps
//     classification of whole files cheap.
//
// # Key Derivation
//
// The Argon2id cost is fixed for the v1 scheme (see DefaultKDF) because the
// token does not record it. A Codec built WithKDF produces tokens that only
// a Codec with the same parameters can open; tests use this to keep the
// memory cost small.
package envelope
