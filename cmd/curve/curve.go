package curve

import (
	"bytes"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"

	"github.com/pwmfan/pwmfan-controller/cmd/global"
	"github.com/pwmfan/pwmfan-controller/internal/configuration"
	"github.com/pwmfan/pwmfan-controller/internal/curves"
	"github.com/pwmfan/pwmfan-controller/internal/ui"
)

const (
	plotMargin = 5.0
	plotStep   = 0.5
)

var Command = &cobra.Command{
	Use:   "curve",
	Short: "Print the effective fan curve",
	Long:  `Prints the rules of the effective fan curve together with a graph of the resulting duty cycle`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config, _ := configuration.NewResolver(global.ConfigPath()).Resolve()

		var buf bytes.Buffer
		tab := table.Table{
			Headers: []string{"Temperature (°C)", "Duty (%)"},
			Rows:    ruleRows(config.Curve),
		}
		if err := tab.WriteTable(&buf, global.TableConfig()); err != nil {
			ui.Error("Unable to print table: %v", err)
			return
		}
		ui.Printfln("%s", buf.String())

		graph, err := plot(config.Curve)
		if err != nil {
			ui.Error("%v", err)
			return
		}
		ui.Printfln("%s", graph)
		ui.Printfln("")
	},
}

func ruleRows(curve []configuration.CurveRule) [][]string {
	var rows [][]string
	for _, rule := range curve {
		rows = append(rows, []string{fmt.Sprintf("%g", rule.Temp), fmt.Sprintf("%d", rule.Duty)})
	}
	return rows
}

// plot renders the duty cycle from shortly below the first to shortly above the last threshold
func plot(curve []configuration.CurveRule) (string, error) {
	if len(curve) <= 0 {
		return "", fmt.Errorf("curve is empty")
	}
	from := curve[0].Temp - plotMargin
	to := curve[len(curve)-1].Temp + plotMargin

	values := curves.Sample(curve, from, to, plotStep)
	if len(values) <= 0 {
		return "", fmt.Errorf("curve could not be evaluated")
	}

	caption := fmt.Sprintf("Duty (%%) from %g°C to %g°C", from, to)
	return asciigraph.Plot(
		values,
		asciigraph.Height(15),
		asciigraph.Width(100),
		asciigraph.Caption(caption),
	), nil
}
