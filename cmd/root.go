package cmd

import (
	logger "github.com/PolarWolf314/envseal/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "envseal",
		Short: "Seal the values of .env files so they can be committed",
		Long: `envseal encrypts the values of .env files in place with a passphrase.

Keys, comments, blank lines and formatting stay readable, so sealed files
diff cleanly and can be committed to version control. Each value becomes
an ENC[v1]:... token that only the passphrase opens.

Mark individual values for sealing by writing them as ENC[v1]:<plaintext>
and running 'envseal encrypt --marked-only'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(rotateCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(sealCmd)
	RootCmd.AddCommand(unsealCmd)
	RootCmd.AddCommand(envCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(keyringCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(doctorCmd)
	RootCmd.AddCommand(versionCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetEncryptCommandState()
	resetDecryptCommandState()
	resetRotateCommandState()
	resetStatusCommandState()
	resetValueCommandState()
	resetEnvCommandState()
	resetInitCommandState()
	resetKeyringCommandState()
	resetLogCommandState()
	resetDoctorCommandState()
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
