package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/pwmfan/pwmfan-controller/cmd/global"
	"github.com/pwmfan/pwmfan-controller/internal/configuration"
	"github.com/pwmfan/pwmfan-controller/internal/fans"
	"github.com/pwmfan/pwmfan-controller/internal/sensors"
	"github.com/pwmfan/pwmfan-controller/internal/ui"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects the board model, all PWM channels and thermal zones and prints them as a list`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		model := configuration.DetectModel(configuration.DefaultModelPath)
		if model == "" {
			model = "unknown"
		}
		ui.Printfln("> Board: %s", model)
		ui.Printfln("")

		var channelRows [][]string
		for _, channel := range fans.FindChannels(fans.DefaultPwmClassPath) {
			name := "-"
			if channel.Path != "" {
				name = filepath.Base(channel.Path)
			}
			channelRows = append(channelRows, []string{
				filepath.Base(channel.Chip), channel.Npwm, name, channel.Enable, channel.Period, channel.DutyCycle,
			})
		}
		ui.Printfln("> PWM channels")
		printTable([]string{"Chip", "Channels", "Channel", "Enabled", "Period", "Duty Cycle"}, channelRows)

		var zoneRows [][]string
		for _, zone := range sensors.FindThermalZones(sensors.DefaultThermalClassPath) {
			value := "N/A"
			if zone.Valid {
				value = fmt.Sprintf("%.1f", zone.Value)
			}
			zoneRows = append(zoneRows, []string{filepath.Base(zone.Path), zone.Type, zone.TempPath, value})
		}
		ui.Printfln("> Thermal zones")
		printTable([]string{"Zone", "Type", "Path", "Temperature (°C)"}, zoneRows)
	},
}

func printTable(headers []string, rows [][]string) {
	if len(rows) <= 0 {
		ui.Printfln("  none found")
		ui.Printfln("")
		return
	}
	var buf bytes.Buffer
	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	if err := tab.WriteTable(&buf, global.TableConfig()); err != nil {
		ui.Error("Unable to print table: %v", err)
		return
	}
	ui.Printfln("%s", buf.String())
}
