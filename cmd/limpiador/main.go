// Command limpiador filters one list against another from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/limpiador/internal/cli"
	"github.com/JonMunkholm/limpiador/internal/core"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		if core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
