package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pwmfan/pwmfan-controller/cmd/config"
	"github.com/pwmfan/pwmfan-controller/cmd/curve"
	"github.com/pwmfan/pwmfan-controller/cmd/global"
	"github.com/pwmfan/pwmfan-controller/internal"
	"github.com/pwmfan/pwmfan-controller/internal/controller"
	"github.com/pwmfan/pwmfan-controller/internal/ui"
)

const (
	exitOk          = 0
	exitFatal       = 1
	exitInterrupted = 130
)

var mode string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "pwmfan_controller",
	Short:   "A daemon to control a PWM fan based on temperature.",
	Version: Version,
	Long: `pwmfan_controller regulates a PWM fan of a single board computer
through the sysfs PWM interface, based on a temperature curve.

The configuration is read from /etc/pwmfan_config.json by default
and reloaded automatically when the file changes.`,
	Args: cobra.NoArgs,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		if mode == internal.ModeAuto {
			printHeader()
		}

		err := internal.RunDaemon(internal.Options{
			ConfigPath: global.ConfigPath(),
			Mode:       mode,
			Verbose:    global.Verbose,
		})
		os.Exit(exitCode(err))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is /etc/pwmfan_config.json)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", internal.ModeAuto, "Operating mode: auto | manual")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(curve.Command)
	rootCmd.AddCommand(detectCmd)
}

func setupUi() {
	if global.Verbose {
		ui.SetLevel(ui.LevelInfo)
	} else {
		ui.SetLevel(ui.LevelWarning)
	}

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

func printHeader() {
	pterm.DefaultHeader.Println("pwmfan_controller " + Version)
}

// exitCode maps the result of the daemon to the process exit code
func exitCode(err error) int {
	var initErr *controller.InitializationError
	switch {
	case err == nil:
		return exitOk
	case errors.Is(err, internal.ErrInterrupted):
		return exitInterrupted
	case errors.As(err, &initErr):
		ui.Critical("%v", initErr)
		for _, advice := range initErr.Advice() {
			ui.Printfln("  - %s", advice)
		}
		return exitFatal
	default:
		ui.Critical("%v", err)
		return exitFatal
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(setupUi)

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFatal)
	}
}
