// Package logging emits JSON Lines log records in the schema the
// analytics engine recognizes: asctime, levelname, feature, user,
// correlation_id, message. Files rotate via lumberjack, so a long-lived
// producer stays analyzable with ParseGlob("app.log*").
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// asctimeLayout mirrors Python logging's default asctime, millisecond
// suffix included. The parser discards the suffix.
const asctimeLayout = "2006-01-02 15:04:05,000"

// Writer produces schema-faithful JSONL records.
type Writer struct {
	log  *zap.Logger
	sink *lumberjack.Logger
}

// New opens a rotating JSONL writer at path (1 MB per file, 3 backups,
// matching the original rotation policy).
func New(path string) *Writer {
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1,
		MaxBackups: 3,
	}

	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:     "asctime",
		LevelKey:    "levelname",
		MessageKey:  "message",
		EncodeTime:  zapcore.TimeEncoderOfLayout(asctimeLayout),
		EncodeLevel: encodeLevel,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(sink), zapcore.DebugLevel)

	return &Writer{log: zap.New(core), sink: sink}
}

// Event writes one record. An empty correlationID is omitted from the
// output, matching records that belong to no batch run.
func (w *Writer) Event(level, feature, user, correlationID, message string) {
	fields := []zap.Field{
		zap.String("feature", feature),
		zap.String("user", user),
	}
	if correlationID != "" {
		fields = append(fields, zap.String("correlation_id", correlationID))
	}

	switch strings.ToUpper(level) {
	case "ERROR":
		w.log.Error(message, fields...)
	case "WARNING":
		w.log.Warn(message, fields...)
	case "DEBUG":
		w.log.Debug(message, fields...)
	default:
		w.log.Info(message, fields...)
	}
}

// Close flushes and releases the underlying file.
func (w *Writer) Close() error {
	_ = w.log.Sync()
	return w.sink.Close()
}

// encodeLevel spells levels the way Python logging does; zap's stock
// capital encoder would print WARN instead of WARNING.
func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == zapcore.WarnLevel {
		enc.AppendString("WARNING")
		return
	}
	enc.AppendString(l.CapitalString())
}
