package ports

import (
	"context"

	"github.com/animemax/animemax-server/internal/domain"
)

// ResolverSource is the slice of a provider client the aggregator needs:
// typed search candidates and an episode list for a chosen candidate.
type ResolverSource interface {
	SearchCandidates(ctx context.Context, query string) ([]domain.Candidate, error)
	EpisodeList(ctx context.Context, id string) ([]domain.Episode, error)
}
