package config

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pwmfan/pwmfan-controller/cmd/global"
	"github.com/pwmfan/pwmfan-controller/internal/configuration"
	"github.com/pwmfan/pwmfan-controller/internal/ui"
	"github.com/pwmfan/pwmfan-controller/internal/util"
)

var force bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes the default configuration",
	Long:  `Writes the default configuration for the detected board to the configuration file`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := global.ConfigPath()
		if err := writeDefaults(configuration.NewResolver(configPath), force); err != nil {
			return err
		}
		ui.Success("Default configuration written to %s", configPath)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")
	Command.AddCommand(initCmd)
}

func writeDefaults(resolver *configuration.Resolver, force bool) error {
	if util.PathExists(resolver.ConfigPath) && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite it", resolver.ConfigPath)
	}

	data, err := json.MarshalIndent(resolver.Defaults(), "", "  ")
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(resolver.ConfigPath, append(data, '\n'))
}
