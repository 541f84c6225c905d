package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/envseal/internal/passphrase"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	decryptStdout     bool
	decryptOutput     string
	decryptPassphrase passphraseFlags
	decryptTransform  transformFlags
)

func init() {
	decryptCmd.Flags().BoolVar(&decryptStdout, "stdout", false, "print the revealed files instead of writing them")
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "write the revealed file to this path instead (single file only)")
	decryptCmd.MarkFlagsMutuallyExclusive("stdout", "output")
	decryptPassphrase.register(decryptCmd.Flags(), "", true)
	decryptTransform.register(decryptCmd.Flags())
}

func resetDecryptCommandState() {
	decryptStdout = false
	decryptOutput = ""
	decryptPassphrase = passphraseFlags{}
	decryptTransform = transformFlags{}
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [files...]",
	Short: "Reveal the sealed values of .env files",
	Long: `Unseals every sealed value of the given .env files, or of the files
configured in .envseal.toml, and writes the plaintext back in place.

With --stdout or --output the source files are left sealed.

Examples:
  envseal decrypt                          # Reveal the configured files in place
  envseal decrypt --stdout .env            # Print the plaintext
  envseal decrypt -o .env.local .env       # Write the plaintext elsewhere`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		ctx := context.Background()

		pass, err := resolvePassphrase(ctx, decryptPassphrase, "Passphrase", false)
		if err != nil {
			cmd.Println(formatError(err))
			return err
		}
		defer passphrase.Zero(pass)

		opts := workflows.RevealOptions{
			FilePatterns: args,
			Passphrase:   pass,
			Stdout:       decryptStdout,
			OutputPath:   decryptOutput,
			DryRun:       decryptTransform.dryRun,
			NoBackup:     decryptTransform.noBackup,
			FailFast:     decryptTransform.failFast,
			Workers:      decryptTransform.workers,
			Log:          Logger,
		}

		if decryptStdout {
			// Plaintext goes to stdout, so nothing else may.
			result, err := workflows.Reveal(ctx, opts)
			if err != nil {
				cmd.PrintErrln(formatError(err))
				return err
			}
			for _, f := range result.Files {
				if len(result.Files) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", f.Path)
				}
				fmt.Fprint(cmd.OutOrStdout(), f.Content)
				for _, lineErr := range f.Errors {
					cmd.PrintErrln(f.Path + ": " + lineErr.Error())
				}
			}
			return errLinesFailed(&result.FilesResult)
		}

		spinner, cleanup := startSpinner("Revealing environment files...", verbose)
		defer cleanup()

		result, err := workflows.Reveal(ctx, opts)
		if err != nil {
			Logger.Errorf("Reveal failed: %v", err)
			spinner.FinalMSG = formatError(err)
			return err
		}

		Logger.Infof("Decrypt command completed: %d changed, %d failed", result.Changed(), result.Failed())
		finalMessage := formatFilesResult(&result.FilesResult, "revealed")
		if decryptOutput != "" && !result.DryRun {
			finalMessage += "\n" + "Written to " + decryptOutput
		}
		spinner.FinalMSG = finalMessage
		return errLinesFailed(&result.FilesResult)
	},
}
