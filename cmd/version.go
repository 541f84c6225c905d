package cmd

import (
	"fmt"
	"runtime"
	buildinfo "runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/PolarWolf314/envseal/cmd.Version=...".
var Version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the envseal version",
	Run: func(cmd *cobra.Command, args []string) {
		if verbose {
			fmt.Println()
			banner := figure.NewColorFigure("envseal", "small", "green", true)
			banner.Print()
			fmt.Println()
		}
		fmt.Printf("envseal %s (%s, %s/%s)\n", version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

// version returns the linked version, or the module version when installed
// with go install.
func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := buildinfo.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}
