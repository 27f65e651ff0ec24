package corost

import (
	"context"
	"log/slog"
	"time"

	"github.com/joeycumines/logiface"
)

// LogEvent adapts log/slog to logiface.Event. Named LogEvent rather than
// plain Event because this package's own [Event] type is the wait/notify
// primitive.
type LogEvent struct {
	logiface.UnimplementedEvent

	logger *slogLogger
	attrs  []slog.Attr
	msg    string
	level  logiface.Level
}

// Level returns the logiface.Level this event was created at.
func (e *LogEvent) Level() logiface.Level {
	if e == nil {
		return logiface.LevelDisabled
	}
	return e.level
}

// AddField adds an arbitrary field via slog.Any.
func (e *LogEvent) AddField(key string, val any) {
	if e == nil {
		return
	}
	e.attrs = append(e.attrs, slog.Any(key, val))
}

// AddMessage sets the event's message.
func (e *LogEvent) AddMessage(msg string) bool {
	if e == nil {
		return false
	}
	e.msg = msg
	return true
}

// AddError adds an error field.
func (e *LogEvent) AddError(err error) bool {
	if e == nil {
		return false
	}
	e.attrs = append(e.attrs, slog.Any("error", err))
	return true
}

// AddString adds a string field, avoiding the AddField boxing allocation.
func (e *LogEvent) AddString(key, val string) bool {
	if e == nil {
		return false
	}
	e.attrs = append(e.attrs, slog.String(key, val))
	return true
}

// AddInt adds an int field.
func (e *LogEvent) AddInt(key string, val int) bool {
	if e == nil {
		return false
	}
	e.attrs = append(e.attrs, slog.Int64(key, int64(val)))
	return true
}

// AddDuration adds a time.Duration field.
func (e *LogEvent) AddDuration(key string, val time.Duration) bool {
	if e == nil {
		return false
	}
	e.attrs = append(e.attrs, slog.Duration(key, val))
	return true
}

// slogLogger implements logiface.EventFactory[*LogEvent] and
// logiface.Writer[*LogEvent] over an slog.Handler.
type slogLogger struct {
	handler slog.Handler
}

func (l *slogLogger) NewEvent(level logiface.Level) *LogEvent {
	return &LogEvent{logger: l, level: level}
}

func (l *slogLogger) Write(event *LogEvent) error {
	if event == nil {
		return nil
	}
	rec := slog.NewRecord(time.Now(), toSlogLevel(event.level), event.msg, 0)
	rec.AddAttrs(event.attrs...)
	return l.handler.Handle(context.Background(), rec)
}

func toSlogLevel(l logiface.Level) slog.Level {
	switch {
	case l <= logiface.LevelError:
		return slog.LevelError
	case l <= logiface.LevelWarning:
		return slog.LevelWarn
	case l <= logiface.LevelInformational:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// NewSlogLogger builds a *logiface.Logger[*LogEvent] that writes through the
// given slog.Handler, at minimum severity level.
func NewSlogLogger(handler slog.Handler, level logiface.Level) *logiface.Logger[*LogEvent] {
	backend := &slogLogger{handler: handler}
	return logiface.New[*LogEvent](
		logiface.WithEventFactory[*LogEvent](backend),
		logiface.WithWriter[*LogEvent](backend),
		logiface.WithLevel[*LogEvent](level),
	)
}

var discard *logiface.Logger[*LogEvent]

// discardLogger returns a shared logger with logging disabled, used as the
// Loop/Run default so every call site can log unconditionally.
func discardLogger() *logiface.Logger[*LogEvent] {
	if discard == nil {
		discard = logiface.New[*LogEvent](logiface.WithLevel[*LogEvent](logiface.LevelDisabled))
	}
	return discard
}
