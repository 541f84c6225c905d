package cmd

import (
	"context"

	"github.com/PolarWolf314/envseal/internal/passphrase"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	encryptMarkedOnly bool
	encryptPassphrase passphraseFlags
	encryptTransform  transformFlags
)

func init() {
	encryptCmd.Flags().BoolVar(&encryptMarkedOnly, "marked-only", false, "seal only values written as ENC[v1]:<plaintext>")
	encryptPassphrase.register(encryptCmd.Flags(), "", true)
	encryptTransform.register(encryptCmd.Flags())
}

func resetEncryptCommandState() {
	encryptMarkedOnly = false
	encryptPassphrase = passphraseFlags{}
	encryptTransform = transformFlags{}
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [files...]",
	Short: "Seal the values of .env files in place",
	Long: `Seals every plaintext value of the given .env files, or of the files
configured in .envseal.toml. Keys, comments and formatting are kept.

Values that are already sealed are left alone, so running encrypt again
changes nothing. With --marked-only, only values written as
ENC[v1]:<plaintext> are sealed.

Files can be paths, directories or glob patterns such as 'services/**/.env*'.

Examples:
  envseal encrypt                        # Seal the configured files
  envseal encrypt .env.production        # Seal one file
  envseal encrypt --marked-only          # Seal only marked values
  envseal encrypt --dry-run              # Show what would be sealed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		ctx := context.Background()

		pass, err := resolveSealingPassphrase(ctx, encryptPassphrase)
		if err != nil {
			cmd.Println(formatError(err))
			return err
		}
		defer passphrase.Zero(pass)

		spinner, cleanup := startSpinner("Sealing environment files...", verbose)
		defer cleanup()

		result, err := workflows.Seal(ctx, workflows.SealOptions{
			FilePatterns: args,
			Passphrase:   pass,
			MarkedOnly:   encryptMarkedOnly,
			DryRun:       encryptTransform.dryRun,
			NoBackup:     encryptTransform.noBackup,
			FailFast:     encryptTransform.failFast,
			Workers:      encryptTransform.workers,
			Log:          Logger,
		})
		if err != nil {
			Logger.Errorf("Seal failed: %v", err)
			spinner.FinalMSG = formatError(err)
			return err
		}

		Logger.Infof("Encrypt command completed with policy %s: %d changed, %d failed", result.Policy, result.Changed(), result.Failed())
		spinner.FinalMSG = formatFilesResult(&result.FilesResult, "sealed")
		return errLinesFailed(&result.FilesResult)
	},
}
