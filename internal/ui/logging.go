package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"go.uber.org/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

var levelNames = map[Level]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

var currentLevel = atomic.NewInt32(int32(LevelInfo))

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int32(l))
}

// ParseLevel maps a log level name (case-insensitive) to a Level.
func ParseLevel(name string) (Level, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if normalized == "WARN" {
		normalized = "WARNING"
	}
	for level, levelName := range levelNames {
		if levelName == normalized {
			return level, nil
		}
	}
	return LevelWarning, fmt.Errorf("unknown log level: %q", name)
}

// SetLevel sets the minimum level a message needs to be printed.
func SetLevel(level Level) {
	currentLevel.Store(int32(level))
	pterm.PrintDebugMessages = level <= LevelDebug
}

func GetLevel() Level {
	return Level(currentLevel.Load())
}

func enabled(level Level) bool {
	return level >= GetLevel()
}

func Printf(format string, a ...interface{}) {
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	pterm.Printfln(format, a...)
}

func Debug(format string, a ...interface{}) {
	if !enabled(LevelDebug) {
		return
	}
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	if !enabled(LevelInfo) {
		return
	}
	pterm.Info.Printfln(format, a...)
}

func Success(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	if !enabled(LevelWarning) {
		return
	}
	pterm.Warning.Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	if !enabled(LevelError) {
		return
	}
	pterm.Error.Printfln(format, a...)
}

// Critical prints an error that ends the process, without exiting itself.
func Critical(format string, a ...interface{}) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "CRITICAL", Style: pterm.Error.Prefix.Style}).Printfln(format, a...)
}

// Fatal prints the message and terminates the process with exit code 1.
func Fatal(format string, a ...interface{}) {
	pterm.Fatal.Printfln(format, a...)
}
