package app

import (
	"context"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/animemax/animemax-server/internal/domain"
	"github.com/animemax/animemax-server/internal/ports"
)

// EpisodeNotifier periodically checks subscribed media for newly aired
// episodes and appends one notification per new episode. Checks are
// best-effort: a provider failure skips the subscription until next tick.
type EpisodeNotifier struct {
	logger   zerolog.Logger
	repo     ports.NotificationRepository
	resolver *Resolver

	TickInterval time.Duration
	BatchSize    int
}

func NewEpisodeNotifier(logger zerolog.Logger, repo ports.NotificationRepository, resolver *Resolver) *EpisodeNotifier {
	return &EpisodeNotifier{
		logger:       logger,
		repo:         repo,
		resolver:     resolver,
		TickInterval: 15 * time.Minute,
		BatchSize:    50,
	}
}

func (n *EpisodeNotifier) Run(ctx context.Context) {
	interval := n.TickInterval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			n.logger.Info().Msg("episode notifier stopped")
			return
		case <-ticker.C:
			n.tick(ctx)
		}
	}
}

func (n *EpisodeNotifier) tick(ctx context.Context) {
	limit := n.BatchSize
	if limit <= 0 {
		limit = 50
	}
	subs, err := n.repo.AllSubscriptions(ctx, limit)
	if err != nil {
		n.logger.Error().Err(err).Msg("notifier subscription query failed")
		return
	}

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		src, err := n.resolver.Source(sub.Provider)
		if err != nil {
			n.logger.Warn().Str("provider", sub.Provider).Msg("notifier skipping unknown provider")
			continue
		}
		episodes, err := src.EpisodeList(ctx, sub.ProviderMediaID)
		if err != nil {
			n.logger.Warn().Err(err).Str("media", sub.ProviderMediaID).Msg("notifier episode check failed")
			continue
		}

		notifs := NewEpisodeNotifications(sub, len(episodes), time.Now().UTC())
		if len(notifs) == 0 {
			continue
		}
		if err := n.repo.AddNotifications(ctx, notifs); err != nil {
			n.logger.Error().Err(err).Str("user", sub.UserID).Msg("notifier append failed")
			continue
		}
		if err := n.repo.SetLastNotified(ctx, sub.UserID, sub.MediaID, len(episodes)); err != nil {
			n.logger.Error().Err(err).Str("user", sub.UserID).Msg("notifier watermark update failed")
		}
	}
}

// NewEpisodeNotifications diffs the available episode count against the
// subscription's watermark and emits one notification per new episode.
func NewEpisodeNotifications(sub domain.NotificationSubscription, available int, now time.Time) []domain.Notification {
	if available <= sub.LastNotified {
		return nil
	}
	out := make([]domain.Notification, 0, available-sub.LastNotified)
	for ep := sub.LastNotified + 1; ep <= available; ep++ {
		out = append(out, domain.Notification{
			ID:            xid.New().String(),
			UserID:        sub.UserID,
			MediaID:       sub.MediaID,
			Title:         sub.Title,
			EpisodeNumber: ep,
			CreatedAt:     now,
		})
	}
	return out
}
