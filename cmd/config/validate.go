package config

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pwmfan/pwmfan-controller/cmd/global"
	"github.com/pwmfan/pwmfan-controller/internal/configuration"
	"github.com/pwmfan/pwmfan-controller/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  `Loads the configuration file and reports every entry that would be replaced by its default`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// note: config file path parameter comes from the root command (-c)
		configPath := global.ConfigPath()
		ui.Info("Using configuration file at: %s", configPath)

		_, report := configuration.NewResolver(configPath).Resolve()
		if !printReport(report) {
			os.Exit(1)
		}

		ui.Success("Config looks good! :)")
	},
}

func init() {
	Command.AddCommand(validateCmd)
}

// printReport prints all problems of the report and returns true if there were none
func printReport(report configuration.Report) bool {
	if !report.Loaded() {
		if report.LoadErr != nil {
			ui.Error("Unable to load %s (%s): %v", report.Path, report.Outcome, report.LoadErr)
		} else {
			ui.Error("Unable to load %s (%s)", report.Path, report.Outcome)
		}
		return false
	}

	for _, issue := range report.Issues {
		ui.Error("%s", issue)
	}
	if len(report.Issues) > 0 {
		ui.Error("Validation failed: %d invalid entries", len(report.Issues))
		return false
	}
	return true
}
