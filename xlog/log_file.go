package xlog

import (
	"io"
	"path/filepath"
	"sync"

	"github.com/pme-sh/hostsfile/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LogRetentionDays = 28
	LogMaxSizeMB     = 4
	LogCompress      = false
)

var loggers sync.Map // string -> *lumberjack.Logger

func newLogger(s string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename: s,
		MaxSize:  LogMaxSizeMB,
		MaxAge:   LogRetentionDays,
		Compress: LogCompress,
	}
}

type noCloser struct {
	io.Writer
}

func (noCloser) Close() error { return nil }

// FileWriter returns a rotating writer for name. Relative names are placed
// in the log directory, "stderr" maps to the default output and "null" to nil.
func FileWriter(name string) (wc io.WriteCloser) {
	switch name {
	case "", "stdout", "stderr":
		return noCloser{DefaultWriter{}}
	case "null", "NUL", "/dev/null":
		return nil
	}
	if !filepath.IsAbs(name) {
		name = config.LogDir.File(name)
	}
	l, _ := loggers.LoadOrStore(name, newLogger(name))
	return l.(*lumberjack.Logger)
}
