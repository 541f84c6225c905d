package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/envseal/cmd"
	"github.com/PolarWolf314/envseal/internal/ui"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("Error:")+" "+err.Error())
		os.Exit(1)
	}
}
