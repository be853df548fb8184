package app

import (
	"testing"
	"time"

	"github.com/animemax/animemax-server/internal/domain"
)

func TestNewEpisodeNotifications(t *testing.T) {
	now := time.Now().UTC()
	sub := domain.NotificationSubscription{
		UserID:       "u1",
		MediaID:      42,
		Title:        "Frieren",
		LastNotified: 3,
	}

	notifs := NewEpisodeNotifications(sub, 5, now)
	if len(notifs) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifs))
	}
	if notifs[0].EpisodeNumber != 4 || notifs[1].EpisodeNumber != 5 {
		t.Fatalf("unexpected episode numbers: %d, %d", notifs[0].EpisodeNumber, notifs[1].EpisodeNumber)
	}
	if notifs[0].ID == "" || notifs[0].ID == notifs[1].ID {
		t.Fatalf("notification ids must be unique and non-empty")
	}
	for _, n := range notifs {
		if n.UserID != "u1" || n.MediaID != 42 || n.Title != "Frieren" {
			t.Fatalf("notification lost subscription identity: %+v", n)
		}
		if n.Read {
			t.Fatalf("new notification must start unread")
		}
	}
}

func TestNewEpisodeNotifications_NoNewEpisodes(t *testing.T) {
	sub := domain.NotificationSubscription{LastNotified: 5}
	if got := NewEpisodeNotifications(sub, 5, time.Now()); got != nil {
		t.Fatalf("expected nil for unchanged count, got %v", got)
	}
	if got := NewEpisodeNotifications(sub, 3, time.Now()); got != nil {
		t.Fatalf("expected nil for shrunk count, got %v", got)
	}
}
