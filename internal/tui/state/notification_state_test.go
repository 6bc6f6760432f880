package state

import (
	"strings"
	"testing"
)

func TestNotificationState_AddKeepsMostRecent(t *testing.T) {
	s := NewNotificationState()
	for i := range maxNotifications + 2 {
		s.Add(LevelInfo, strings.Repeat("x", i+1))
	}

	all := s.All()
	if len(all) != maxNotifications {
		t.Fatalf("len(All()) = %d, want %d", len(all), maxNotifications)
	}
	if got := all[len(all)-1].Message; len(got) != maxNotifications+2 {
		t.Errorf("last message = %q, want the newest", got)
	}

	s.Clear()
	if s.HasAny() {
		t.Error("HasAny() after Clear() = true")
	}
}

// TestNotificationState_GetLayersNeedsWindow ensures nothing is placed before the size is known.
// Edge case: First frame before WindowSizeMsg.
func TestNotificationState_GetLayersNeedsWindow(t *testing.T) {
	s := NewNotificationState()
	s.Add(LevelError, "boom")

	if got := s.GetLayers(func(n Notification) string { return n.Message }); len(got) != 0 {
		t.Errorf("GetLayers() without window size = %d layers, want 0", len(got))
	}
}

func TestNotificationState_GetLayersStopsAtBottom(t *testing.T) {
	s := NewNotificationState()
	s.SetWindowSize(80, 6)
	for range 4 {
		s.Add(LevelWarning, "one\ntwo")
	}

	// each banner takes 2 rows plus a gap; only two fit in 6 rows
	got := s.GetLayers(func(n Notification) string { return n.Message })
	if len(got) != 2 {
		t.Errorf("GetLayers() = %d layers, want 2", len(got))
	}
}
