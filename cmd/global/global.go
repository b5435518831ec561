package global

import (
	"github.com/mgutz/ansi"
	"github.com/mitchellh/go-homedir"
	"github.com/tomlazar/table"

	"github.com/pwmfan/pwmfan-controller/internal/configuration"
	"github.com/pwmfan/pwmfan-controller/internal/ui"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// ConfigPath returns the configuration file selected with --config, with "~" expanded
func ConfigPath() string {
	if CfgFile == "" {
		return configuration.DefaultConfigPath
	}
	path, err := homedir.Expand(CfgFile)
	if err != nil {
		ui.Warning("Unable to expand config path %s: %v", CfgFile, err)
		return CfgFile
	}
	return path
}

func TableConfig() *table.Config {
	return &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	}
}
