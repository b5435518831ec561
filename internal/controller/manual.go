package controller

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pwmfan/pwmfan-controller/internal/fans"
	"github.com/pwmfan/pwmfan-controller/internal/ui"
	"github.com/pwmfan/pwmfan-controller/internal/util"
)

const (
	manualPrompt       = "Set duty cycle (%) or 'quit' > "
	manualInvalidInput = "Invalid input. Please enter a number (0-100) or 'quit'."
	quitCommand        = "quit"
)

// ManualController applies duty cycles read line by line from an input
type ManualController struct {
	fan    fans.Fan
	input  io.Reader
	output io.Writer
	period int64
}

func NewManualController(fan fans.Fan, input io.Reader, output io.Writer) *ManualController {
	return &ManualController{
		fan:    fan,
		input:  input,
		output: output,
		period: -1,
	}
}

// Initialize brings up the channel, a failure is fatal for manual mode
func (m *ManualController) Initialize() error {
	ui.Info("Starting manual mode")
	period, herr := fans.Initialize(m.fan)
	if herr != nil {
		return &InitializationError{Cause: herr}
	}
	m.period = period
	ui.Info("PWM initialized for manual mode, period: %d ns", period)
	return nil
}

// Run returns once the user quits, the input ends or ctx is cancelled
func (m *ManualController) Run(ctx context.Context) error {
	if m.period <= 0 {
		if err := m.Initialize(); err != nil {
			return err
		}
	}

	lines := make(chan string)
	go m.readLines(ctx, lines)

	for {
		_, _ = fmt.Fprint(m.output, manualPrompt)
		select {
		case <-ctx.Done():
			ui.Info("Exiting manual mode")
			return nil
		case line, ok := <-lines:
			if !ok {
				_, _ = fmt.Fprintln(m.output)
				ui.Info("End of input, exiting manual mode")
				return nil
			}
			if quit := m.handle(line); quit {
				ui.Info("Exiting manual mode")
				return nil
			}
		}
	}
}

func (m *ManualController) readLines(ctx context.Context, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(m.input)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		ui.Error("Error reading input: %v", err)
	}
}

// handle applies a single line of input, returns true if the user asked to quit
func (m *ManualController) handle(line string) bool {
	command := strings.ToLower(strings.TrimSpace(line))
	if command == quitCommand {
		return true
	}

	percent, err := strconv.ParseFloat(command, 64)
	if err != nil || !util.IsFinite(percent) {
		_, _ = fmt.Fprintln(m.output, manualInvalidInput)
		return false
	}

	if m.fan.SetDutyCycle(percent, m.period) {
		ui.Info("Manually set duty cycle to %.1f%%", util.Coerce(percent, fans.MinDutyPercent, fans.MaxDutyPercent))
	}
	return false
}
