package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pwmfan/pwmfan-controller/internal/ui"
)

const Version = "1.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pwmfan_controller",
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln(Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
