package board

import "time"

// Level is the severity of a board notification
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient, non-blocking message for the user
type Notification struct {
	Level   Level
	Message string
	ItemID  int
	Time    time.Time
}

// maxNotifications bounds the queue when nobody drains it (e.g. the CLI)
const maxNotifications = 20

func (s *service) notify(level Level, itemID int, message string) {
	s.notes = append(s.notes, Notification{Level: level, Message: message, ItemID: itemID, Time: s.now()})
	if len(s.notes) > maxNotifications {
		s.notes = s.notes[len(s.notes)-maxNotifications:]
	}
}
