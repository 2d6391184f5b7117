// Command scoretool works with saved score files from the command line.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scorewriter/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "scoretool",
	Short:   "Engrave and inspect score files",
	Long:    `Engrave and inspect score files without opening the editor.`,
	Version: fmt.Sprintf("%s (built %s, commit %s)", version.Version, version.BuildTime, version.GitCommit),
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
