package domain

import "time"

// NotificationSubscription tracks one media a user wants new-episode
// notifications for, with the last episode count already notified.
type NotificationSubscription struct {
	UserID          string    `json:"userId"`
	MediaID         int       `json:"mediaId"`
	Title           string    `json:"title"`
	Provider        string    `json:"provider"`
	ProviderMediaID string    `json:"providerMediaId"`
	LastNotified    int       `json:"lastNotifiedEpisode"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Notification is one new-episode event delivered to a user.
type Notification struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	MediaID       int       `json:"mediaId"`
	Title         string    `json:"title"`
	EpisodeNumber int       `json:"episodeNumber"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"createdAt"`
}
