package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/animemax/animemax-server/internal/domain"
)

func TestNotificationsRepository_SubscriptionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationsRepository(openTestDB(t).SQL)

	sub := domain.NotificationSubscription{
		UserID:          "u1",
		MediaID:         42,
		Title:           "Frieren",
		Provider:        "hianime",
		ProviderMediaID: "frieren-18542",
		LastNotified:    12,
	}
	if err := repo.Subscribe(ctx, sub); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := repo.Subscribe(ctx, sub); err != nil {
		t.Fatalf("Subscribe(duplicate): %v", err)
	}

	subs, err := repo.ListSubscriptions(ctx, "u1")
	if err != nil {
		t.Fatalf("ListSubscriptions: %v", err)
	}
	if len(subs) != 1 || subs[0].LastNotified != 12 {
		t.Fatalf("unexpected subscriptions: %+v", subs)
	}

	all, err := repo.AllSubscriptions(ctx, 0)
	if err != nil {
		t.Fatalf("AllSubscriptions: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 subscription, got %d", len(all))
	}

	if err := repo.Unsubscribe(ctx, "u1", 42); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	subs, _ = repo.ListSubscriptions(ctx, "u1")
	if len(subs) != 0 {
		t.Fatalf("expected empty subscriptions, got %+v", subs)
	}
}

func TestNotificationsRepository_WatermarkNeverRegresses(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationsRepository(openTestDB(t).SQL)

	sub := domain.NotificationSubscription{
		UserID: "u1", MediaID: 42, Title: "Frieren",
		Provider: "hianime", ProviderMediaID: "frieren-18542", LastNotified: 10,
	}
	if err := repo.Subscribe(ctx, sub); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := repo.SetLastNotified(ctx, "u1", 42, 15); err != nil {
		t.Fatalf("SetLastNotified: %v", err)
	}
	if err := repo.SetLastNotified(ctx, "u1", 42, 13); err != nil {
		t.Fatalf("SetLastNotified(lower): %v", err)
	}

	subs, err := repo.ListSubscriptions(ctx, "u1")
	if err != nil {
		t.Fatalf("ListSubscriptions: %v", err)
	}
	if subs[0].LastNotified != 15 {
		t.Fatalf("watermark regressed: %d", subs[0].LastNotified)
	}
}

func TestNotificationsRepository_ReadMarking(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationsRepository(openTestDB(t).SQL)

	now := time.Now().UTC()
	notifs := []domain.Notification{
		{ID: "n1", UserID: "u1", MediaID: 42, Title: "Frieren", EpisodeNumber: 13, CreatedAt: now},
		{ID: "n2", UserID: "u1", MediaID: 42, Title: "Frieren", EpisodeNumber: 14, CreatedAt: now.Add(time.Second)},
		{ID: "n3", UserID: "u2", MediaID: 42, Title: "Frieren", EpisodeNumber: 13, CreatedAt: now},
	}
	if err := repo.AddNotifications(ctx, notifs); err != nil {
		t.Fatalf("AddNotifications: %v", err)
	}

	unread, err := repo.ListNotifications(ctx, "u1", true)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(unread) != 2 {
		t.Fatalf("expected 2 unread, got %d", len(unread))
	}

	if err := repo.MarkNotificationsRead(ctx, "u1", []string{"n1"}); err != nil {
		t.Fatalf("MarkNotificationsRead: %v", err)
	}
	unread, _ = repo.ListNotifications(ctx, "u1", true)
	if len(unread) != 1 || unread[0].ID != "n2" {
		t.Fatalf("expected n2 unread, got %+v", unread)
	}

	// Empty id list marks everything for the user, and only that user.
	if err := repo.MarkNotificationsRead(ctx, "u1", nil); err != nil {
		t.Fatalf("MarkNotificationsRead(all): %v", err)
	}
	unread, _ = repo.ListNotifications(ctx, "u1", true)
	if len(unread) != 0 {
		t.Fatalf("expected none unread, got %+v", unread)
	}
	other, _ := repo.ListNotifications(ctx, "u2", true)
	if len(other) != 1 {
		t.Fatalf("other user's notifications touched: %+v", other)
	}
}
