package ui

import (
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test %d"
	a := 5
	Printfln(msg, a)
	// Output:
	// This is a test 5
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetLevel(LevelDebug)
	defer SetLevel(LevelInfo)

	msg := "This is a test: %d"
	a := 5
	Debug(msg, a)
	// Output:
	// DEBUG: This is a test: 5
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetLevel(LevelInfo)

	msg := "This is a test: %d"
	a := 5
	Info(msg, a)
	// Output:
	// INFO: This is a test: 5
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetLevel(LevelWarning)
	defer SetLevel(LevelInfo)

	Info("not printed")
	Warning("This is a test: %d", 5)
	// Output:
	// WARNING: This is a test: 5
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetLevel(LevelError)
	defer SetLevel(LevelInfo)

	msg := "This is a test: %v"
	a := os.ErrClosed
	Warning("not printed")
	Error(msg, a)
	// Output:
	// ERROR: This is a test: file already closed
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{" Warning ", LevelWarning},
		{"warn", LevelWarning},
		{"ERROR", LevelError},
		{"critical", LevelCritical},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			// WHEN
			result, err := ParseLevel(tc.input)

			// THEN
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	// WHEN
	result, err := ParseLevel("LOUD")

	// THEN
	assert.Error(t, err)
	assert.Equal(t, LevelWarning, result)
}

func TestSetLevel(t *testing.T) {
	defer SetLevel(LevelInfo)

	// WHEN
	SetLevel(LevelDebug)

	// THEN
	assert.Equal(t, LevelDebug, GetLevel())
	assert.True(t, pterm.PrintDebugMessages)

	// WHEN
	SetLevel(LevelError)

	// THEN
	assert.Equal(t, "ERROR", GetLevel().String())
	assert.False(t, pterm.PrintDebugMessages)
}
