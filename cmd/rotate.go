package cmd

import (
	"context"

	"github.com/PolarWolf314/envseal/internal/passphrase"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/PolarWolf314/envseal/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	rotateOld       passphraseFlags
	rotateNew       passphraseFlags
	rotateTransform transformFlags
)

func init() {
	rotateOld.register(rotateCmd.Flags(), "", true)
	rotateNew.register(rotateCmd.Flags(), "new-", false)
	rotateTransform.register(rotateCmd.Flags())
}

func resetRotateCommandState() {
	rotateOld = passphraseFlags{}
	rotateNew = passphraseFlags{}
	rotateTransform = transformFlags{}
}

var rotateCmd = &cobra.Command{
	Use:   "rotate [files...]",
	Short: "Re-seal every sealed value under a new passphrase",
	Long: `Unseals each sealed value with the current passphrase and seals it again
with a new one. Plain values are left alone.

The current passphrase comes from the usual sources; the new one from the
--new-passphrase flags, or is asked for twice.

Remember to update the stored passphrase afterwards, for example with
'envseal keyring set'.

Examples:
  envseal rotate                                   # Prompt for the new passphrase
  envseal rotate --new-passphrase-env NEW_PASS     # Read it from $NEW_PASS`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting rotate command")
		ctx := context.Background()

		oldPass, err := resolvePassphrase(ctx, rotateOld, "Current passphrase", false)
		if err != nil {
			cmd.Println(formatError(err))
			return err
		}
		defer passphrase.Zero(oldPass)

		newPass, err := resolveNewPassphrase(ctx, rotateNew)
		if err != nil {
			cmd.Println(formatError(err))
			return err
		}
		defer passphrase.Zero(newPass)

		spinner, cleanup := startSpinner("Rotating sealed values...", verbose)
		defer cleanup()

		result, err := workflows.Rotate(ctx, workflows.RotateOptions{
			FilePatterns:  args,
			OldPassphrase: oldPass,
			NewPassphrase: newPass,
			DryRun:        rotateTransform.dryRun,
			NoBackup:      rotateTransform.noBackup,
			FailFast:      rotateTransform.failFast,
			Workers:       rotateTransform.workers,
			Log:           Logger,
		})
		if err != nil {
			Logger.Errorf("Rotate failed: %v", err)
			spinner.FinalMSG = formatError(err)
			return err
		}

		Logger.Infof("Rotate command completed: %d changed, %d failed", result.Changed(), result.Failed())
		finalMessage := formatFilesResult(&result.FilesResult, "rotated")
		if result.Changed() > 0 && !result.DryRun {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Update the stored passphrase, for example with " + ui.Code.Sprint("envseal keyring set")
		}
		spinner.FinalMSG = finalMessage
		return errLinesFailed(&result.FilesResult)
	},
}
