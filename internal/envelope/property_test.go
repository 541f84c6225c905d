package envelope

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestEnvelopeProperties checks the laws every token must satisfy for
// arbitrary plaintexts and passphrases.
func TestEnvelopeProperties(t *testing.T) {
	codec := newTestCodec(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	passphrases := gen.AnyString().SuchThat(func(s string) bool { return s != "" })

	properties.Property("unseal(seal(p, k), k) == p", prop.ForAll(
		func(plaintext, passphrase string) bool {
			token, err := codec.Seal([]byte(plaintext), []byte(passphrase))
			if err != nil {
				return false
			}
			got, err := codec.Unseal(token, []byte(passphrase))
			return err == nil && bytes.Equal(got, []byte(plaintext))
		},
		gen.AnyString(),
		passphrases,
	))

	properties.Property("sealed values are detected", prop.ForAll(
		func(plaintext, passphrase string) bool {
			token, err := codec.Seal([]byte(plaintext), []byte(passphrase))
			return err == nil && IsSealed(token)
		},
		gen.AnyString(),
		passphrases,
	))

	properties.Property("plain values without the marker are never sealed", prop.ForAll(
		func(value string) bool {
			return !IsSealed(value)
		},
		gen.AnyString().SuchThat(func(s string) bool { return !HasMarker(s) }),
	))

	properties.Property("another passphrase never opens the token", prop.ForAll(
		func(plaintext, passphrase string) bool {
			token, err := codec.Seal([]byte(plaintext), []byte(passphrase))
			if err != nil {
				return false
			}
			got, err := codec.Unseal(token, []byte(passphrase+"x"))
			return err != nil && got == nil
		},
		gen.AnyString(),
		passphrases,
	))

	properties.TestingRun(t)
}
