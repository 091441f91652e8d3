// Package toast turns real-time frames into user-visible notifications.
package toast

import (
	"fmt"
	"time"

	"github.com/firesafetykz/portal/internal/domain"
)

// Level controls how prominently a toast is shown
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Toast is one user-visible notification
type Toast struct {
	Kind  domain.FrameType
	Level Level
	Title string
	Body  string
	// Sound asks the sink to play an audible cue
	Sound bool
	At    time.Time
}

func (t Toast) String() string {
	if t.Body == "" {
		return fmt.Sprintf("[%s] %s", t.Level, t.Title)
	}
	return fmt.Sprintf("[%s] %s: %s", t.Level, t.Title, t.Body)
}

// Sink displays toasts somewhere: a log, a terminal, a chat channel
type Sink interface {
	Show(t Toast) error
}
