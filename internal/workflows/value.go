package workflows

import (
	"context"

	"github.com/PolarWolf314/envseal/internal/envelope"
)

// SealValue seals a single value, for pasting into a .env file by hand.
// An empty value is sealed like any other, matching what encrypt does for
// KEY= lines. A nil codec means envelope.DefaultCodec.
func SealValue(ctx context.Context, codec *envelope.Codec, value, passphrase []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if codec == nil {
		codec = envelope.DefaultCodec
	}
	return codec.Seal(value, passphrase)
}

// UnsealValue unseals a single token. A nil codec means
// envelope.DefaultCodec.
func UnsealValue(ctx context.Context, codec *envelope.Codec, token string, passphrase []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if codec == nil {
		codec = envelope.DefaultCodec
	}
	return codec.Unseal(token, passphrase)
}
