package passphrase

import (
	"bytes"
	"context"
	"fmt"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
	"github.com/PolarWolf314/envseal/internal/utils"
)

// ReadFunc reads one hidden line after printing prompt.
type ReadFunc func(prompt string) ([]byte, error)

// Prompt asks for the passphrase on the terminal. With Confirm set it is
// asked twice and both entries must match.
type Prompt struct {
	Label   string
	Confirm bool

	// Read replaces terminal input when set.
	Read ReadFunc
}

func (p Prompt) Name() string { return "prompt" }

func (p Prompt) Resolve(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	read := p.Read
	if read == nil {
		var err error
		if read, err = terminalReader(); err != nil {
			return nil, err
		}
	}

	label := p.Label
	if label == "" {
		label = "Passphrase"
	}

	first, err := read(label + ": ")
	if err != nil {
		return nil, err
	}
	if len(first) == 0 {
		return nil, fmt.Errorf("%w: empty passphrase entered", kerrors.ErrInvalidInput)
	}
	if !p.Confirm {
		return first, nil
	}

	second, err := read("Confirm " + label + ": ")
	if err != nil {
		Zero(first)
		return nil, err
	}
	defer Zero(second)
	if !bytes.Equal(first, second) {
		Zero(first)
		return nil, kerrors.ErrPassphraseMismatch
	}
	return first, nil
}

// terminalReader reads from stdin when it is a terminal and from the
// controlling TTY otherwise, so values can still be piped in.
func terminalReader() (ReadFunc, error) {
	switch {
	case utils.IsTerminal():
		return utils.ReadPassphrase, nil
	case utils.IsTTYAvailable():
		return utils.ReadPassphraseFromTTY, nil
	default:
		return nil, fmt.Errorf("%w: no terminal to prompt on", kerrors.ErrPassphraseUnavailable)
	}
}
