package xlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pme-sh/hostsfile/config"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const domainW = 10

func formatTimestamp(i any) string {
	ms, _ := i.(json.Number)
	msi, _ := ms.Int64()
	if msi == 0 {
		return ""
	}
	ts := time.UnixMilli(msi)
	if now := time.Now(); ts.YearDay() != now.YearDay() || ts.Year() != now.Year() {
		return ts.Format("2006-01-02 15:04:05")
	}
	return ts.Format(time.Kitchen)
}

func formatDomain(i any) string {
	n, ok := i.(string)
	if !ok {
		return ""
	}
	if x := domainW - len(n); x > 0 {
		n += strings.Repeat(" ", x)
	}
	return fmt.Sprintf("│ \x1b[1m%s\x1b[0m", n)
}

func NewConsoleWriter(f io.Writer) LevelWriter {
	level := LevelInfo
	if *config.Verbose {
		level = LevelDebug
	}
	var out io.Writer = f
	if file, ok := f.(*os.File); ok && term.IsTerminal(int(file.Fd())) && !*config.Dumb {
		out = &zerolog.ConsoleWriter{
			Out:             f,
			FormatTimestamp: formatTimestamp,
			FormatCaller:    formatDomain,
			FieldsExclude:   []string{zerolog.ErrorStackFieldName},
		}
	}
	return &zerolog.FilteredLevelWriter{
		Level:  level,
		Writer: zerolog.LevelWriterAdapter{Writer: out},
	}
}
func StderrWriter() LevelWriter { return NewConsoleWriter(os.Stderr) }

// Reconfigure rebuilds the default output once flags are parsed. The log file,
// if any, receives every level.
func Reconfigure(logFile string) {
	writers := []io.Writer{StderrWriter()}
	if logFile != "" && logFile != "stderr" && logFile != "stdout" {
		if w := FileWriter(logFile); w != nil {
			writers = append(writers, w)
		}
	}
	SetDefaultOutput(writers...)
	if *config.Verbose {
		SetLoggerLevel(LevelDebug)
	} else {
		SetLoggerLevel(LevelInfo)
	}
}
