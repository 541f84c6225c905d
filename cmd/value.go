package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/envseal/internal/passphrase"
	"github.com/PolarWolf314/envseal/internal/utils"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	sealPassphrase   passphraseFlags
	unsealPassphrase passphraseFlags
)

func init() {
	sealPassphrase.register(sealCmd.Flags(), "", true)
	unsealPassphrase.register(unsealCmd.Flags(), "", true)
}

func resetValueCommandState() {
	sealPassphrase = passphraseFlags{}
	unsealPassphrase = passphraseFlags{}
}

// valueArg returns the single argument, or stdin without its trailing
// newline when no argument was given.
func valueArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := utils.ReadStdin()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

var sealCmd = &cobra.Command{
	Use:   "seal [value]",
	Short: "Seal a single value",
	Long: `Seals one value and prints the ENC[v1] token, for pasting into a .env file.

The value is read from stdin when not given, which keeps it out of shell
history.

Examples:
  echo -n 'hunter2' | envseal seal
  envseal seal 'hunter2' --passphrase-env MY_PASS`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting seal command")
		ctx := context.Background()

		value, err := valueArg(args)
		if err != nil {
			return err
		}

		pass, err := resolveSealingPassphrase(ctx, sealPassphrase)
		if err != nil {
			cmd.PrintErrln(formatError(err))
			return err
		}
		defer passphrase.Zero(pass)

		token, err := workflows.SealValue(ctx, nil, []byte(value), pass)
		if err != nil {
			cmd.PrintErrln(formatError(err))
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var unsealCmd = &cobra.Command{
	Use:   "unseal [token]",
	Short: "Unseal a single ENC[v1] token",
	Long: `Unseals one token and prints the plaintext.

The token is read from stdin when not given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting unseal command")
		ctx := context.Background()

		token, err := valueArg(args)
		if err != nil {
			return err
		}

		pass, err := resolvePassphrase(ctx, unsealPassphrase, "Passphrase", false)
		if err != nil {
			cmd.PrintErrln(formatError(err))
			return err
		}
		defer passphrase.Zero(pass)

		plaintext, err := workflows.UnsealValue(ctx, nil, strings.TrimSpace(token), pass)
		if err != nil {
			cmd.PrintErrln(formatError(err))
			return err
		}
		defer passphrase.Zero(plaintext)

		fmt.Fprintln(cmd.OutOrStdout(), string(plaintext))
		return nil
	},
}
