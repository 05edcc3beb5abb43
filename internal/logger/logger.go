// Package logger builds the zap logger shared by objtool's components.
//
// Components take a child logger with For at construction time; import jobs
// add their fixed fields with Job so every line of one job can be grepped by
// its id.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Field keys shared by the importer, watcher and CLI.
const (
	KeyJob    = "job"
	KeySource = "source"
	KeyTook   = "took"
)

// Rotation of the JSON log file.
const (
	fileMaxSizeMB  = 50
	fileMaxBackups = 3
	fileMaxAgeDays = 7
)

// Log is the process-wide logger. It discards everything until Init or Set
// replaces it.
var Log = zap.NewNop()

// Options selects the sinks of a logger.
type Options struct {
	Level   string    // debug, info, warn or error; empty means info
	File    string    // Rotating JSON log file, empty for none
	Console io.Writer // Human-readable output, nil for stderr
	NoColor bool      // Plain level names on the console
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if opts.Level != "" {
		var err error
		if lvl, err = zapcore.ParseLevel(opts.Level); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	levelEnc := zapcore.CapitalColorLevelEncoder
	if opts.NoColor {
		levelEnc = zapcore.CapitalLevelEncoder
	}
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(zapcore.TimeEncoderOfLayout("15:04:05"), levelEnc, zapcore.StringDurationEncoder)),
			zapcore.Lock(zapcore.AddSync(console)),
			lvl,
		),
	}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    fileMaxSizeMB,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAgeDays,
			Compress:   true,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig(zapcore.ISO8601TimeEncoder, zapcore.LowercaseLevelEncoder, zapcore.MillisDurationEncoder)),
			zapcore.AddSync(rotator),
			lvl,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

func encoderConfig(timeEnc zapcore.TimeEncoder, levelEnc zapcore.LevelEncoder, durEnc zapcore.DurationEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "component",
		MessageKey:       "msg",
		EncodeTime:       timeEnc,
		EncodeLevel:      levelEnc,
		EncodeDuration:   durEnc,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
}

// Init replaces Log with a logger writing to stderr and, when logFile is
// set, to a rotating JSON file.
func Init(level, logFile string) error {
	l, err := New(Options{Level: level, File: logFile})
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set replaces Log. A nil logger restores the no-op default.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Log = l
}

// For returns the logger of one component, such as "importer" or "watch".
func For(component string) *zap.Logger {
	return Log.Named(component)
}

// Job returns l with the fixed fields of one import job.
func Job(l *zap.Logger, id uuid.UUID, source fmt.Stringer) *zap.Logger {
	return l.With(zap.Stringer(KeyJob, id), zap.Stringer(KeySource, source))
}

// Took is the elapsed-time field.
func Took(d time.Duration) zap.Field {
	return zap.Duration(KeyTook, d)
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}
