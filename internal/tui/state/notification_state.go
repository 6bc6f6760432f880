package state

import "charm.land/lipgloss/v2"

// NotificationLevel represents the severity of a notification.
type NotificationLevel int

const (
	// LevelInfo represents informational notifications (blue, bell icon)
	LevelInfo NotificationLevel = iota
	// LevelWarning represents warnings such as a failed refresh (yellow)
	LevelWarning
	// LevelError represents errors such as a rolled back move (red)
	LevelError
)

// maxNotifications bounds the stack shown on screen
const maxNotifications = 5

// Notification represents a single notification message with a severity level.
type Notification struct {
	Level   NotificationLevel
	Message string
}

// NotificationState manages notification display state.
// Notifications never block input; they are cleared on the next key press.
type NotificationState struct {
	notifications []Notification
	windowWidth   int
	windowHeight  int
}

// NewNotificationState creates a new NotificationState with no notifications.
func NewNotificationState() *NotificationState {
	return &NotificationState{}
}

// Add adds a new notification. Only the most recent ones are kept.
func (s *NotificationState) Add(level NotificationLevel, message string) {
	s.notifications = append(s.notifications, Notification{
		Level:   level,
		Message: message,
	})
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}
}

// Clear removes all notifications.
func (s *NotificationState) Clear() {
	s.notifications = nil
}

// All returns all current notifications.
func (s *NotificationState) All() []Notification {
	return s.notifications
}

// HasAny returns true if there are any notifications.
func (s *NotificationState) HasAny() bool {
	return len(s.notifications) > 0
}

// SetWindowSize updates the window dimensions for positioning calculations.
func (s *NotificationState) SetWindowSize(width, height int) {
	s.windowWidth = width
	s.windowHeight = height
}

// GetLayers creates floating layers for all active notifications.
// Notifications are stacked vertically in the top-right corner of the screen.
func (s *NotificationState) GetLayers(renderFunc func(Notification) string) []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	if s.windowWidth == 0 {
		return layers
	}

	row := 0
	for _, notification := range s.notifications {
		view := renderFunc(notification)
		height := lipgloss.Height(view)
		if row+height >= s.windowHeight {
			break
		}

		col := max(s.windowWidth-lipgloss.Width(view)-1, 0)
		layers = append(layers, lipgloss.NewLayer(view).X(col).Y(row))
		row += height + 1
	}
	return layers
}
