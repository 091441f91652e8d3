package toast

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// LogSink writes toasts to a structured logger
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Show(t Toast) error {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	level := slog.LevelInfo
	switch t.Level {
	case LevelWarning:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	}
	l.Log(context.Background(), level, t.Title, "kind", t.Kind, "body", t.Body, "sound", t.Sound, "at", t.At)
	return nil
}

// WriterSink prints one line per toast, ringing the terminal bell for sound cues
type WriterSink struct {
	mu   sync.Mutex
	w    io.Writer
	bell bool
}

// NewWriterSink creates a sink printing to w
func NewWriterSink(w io.Writer, bell bool) *WriterSink {
	return &WriterSink{w: w, bell: bell}
}

func (s *WriterSink) Show(t Toast) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := ""
	if t.Sound && s.bell {
		prefix = "\a"
	}
	_, err := fmt.Fprintf(s.w, "%s%s %s\n", prefix, t.At.Format("15:04:05"), t)
	return err
}
