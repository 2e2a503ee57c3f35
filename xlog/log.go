package xlog

import (
	"fmt"
	"io"
	llog "log"
	"log/slog"

	pkgerr "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

type Logger = zerolog.Logger
type Level = zerolog.Level
type LevelWriter = zerolog.LevelWriter
type Event = zerolog.Event

const (
	LevelDebug    = zerolog.DebugLevel
	LevelInfo     = zerolog.InfoLevel
	LevelWarn     = zerolog.WarnLevel
	LevelError    = zerolog.ErrorLevel
	LevelFatal    = zerolog.FatalLevel
	LevelSuppress = zerolog.Disabled
	LevelTrace    = zerolog.TraceLevel
)

var defaultOutput io.Writer = StderrWriter()

type DefaultWriter struct{}

func (DefaultWriter) Write(p []byte) (n int, err error) { return defaultOutput.Write(p) }
func (DefaultWriter) WriteLevel(l Level, p []byte) (n int, err error) {
	if lw, ok := defaultOutput.(LevelWriter); ok {
		return lw.WriteLevel(l, p)
	}
	return defaultOutput.Write(p)
}

// Not safe for concurrent use.
func SetDefaultOutput(w ...io.Writer) {
	defaultOutput = zerolog.MultiLevelWriter(w...)
}

func WrapStackError(err error) error {
	return pkgerr.WithStack(err)
}

func init() {
	log.Logger = *NewDomain("hostsfile")

	slog.SetDefault(ToSlog(&log.Logger))
	llog.Default().SetOutput(log.Logger.With().Str("src", "log").Logger())
	llog.Default().SetFlags(0)

	zerolog.LevelFieldName = "l"
	zerolog.TimestampFieldName = "t"
	zerolog.MessageFieldName = "msg"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerolog.CallerFieldName = DomainFieldName
	zerolog.DefaultContextLogger = &log.Logger
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// SetLoggerLevel sets the global logger level.
func SetLoggerLevel(level Level) {
	zerolog.SetGlobalLevel(level)
}

// ErrStack starts a new message with error level and the stack trace of err,
// or with info level if err is nil.
//
// You must call Msg on the returned event in order to send the event.
func ErrStack(err any) *Event {
	if err != nil {
		e, ok := err.(error)
		if !ok {
			e = pkgerr.New(fmt.Sprint(err))
		} else {
			e = WrapStackError(e)
		}
		return log.Logger.Error().Stack().Err(e)
	}
	return log.Logger.Info()
}

// Debug starts a new message with debug level.
//
// You must call Msg on the returned event in order to send the event.
func Debug() *Event {
	return log.Logger.Debug()
}
