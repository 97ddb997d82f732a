package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

// ParseLevel: desconocido o vacío => Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	}
	return Info
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case Debug:
		return zerolog.DebugLevel
	case Warn:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// ZeroLogger implementa Logger sobre zerolog.
type ZeroLogger struct {
	zl zerolog.Logger
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Output por defecto es stdout.
	Output io.Writer
}

func New(opts Options) Logger {
	var w io.Writer = os.Stdout
	if opts.Output != nil {
		w = opts.Output
	}
	if opts.Format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	ctx := zerolog.New(w).Level(opts.Level.zerolog()).With().Timestamp()
	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}

	return &ZeroLogger{zl: ctx.Logger()}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME=vet-clinic (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

// Nop descarta todo. Útil en tests.
func Nop() Logger {
	return &ZeroLogger{zl: zerolog.Nop()}
}

func (l *ZeroLogger) With(fields map[string]any) Logger {
	fields = clean(fields)
	if len(fields) == 0 {
		return l
	}
	return &ZeroLogger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]any) { l.log(l.zl.Debug(), msg, fields) }
func (l *ZeroLogger) Info(msg string, fields map[string]any)  { l.log(l.zl.Info(), msg, fields) }
func (l *ZeroLogger) Warn(msg string, fields map[string]any)  { l.log(l.zl.Warn(), msg, fields) }
func (l *ZeroLogger) Error(msg string, fields map[string]any) { l.log(l.zl.Error(), msg, fields) }

func (l *ZeroLogger) log(ev *zerolog.Event, msg string, fields map[string]any) {
	if ev == nil {
		return
	}
	if f := clean(fields); len(f) > 0 {
		ev = ev.Fields(f)
	}
	ev.Msg(msg)
}

// clean descarta keys vacías; los errores se loguean como string.
func clean(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		out[k] = v
	}
	return out
}
