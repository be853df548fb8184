package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"

	"github.com/animemax/animemax-server/internal/domain"
	"github.com/animemax/animemax-server/internal/ports"
)

// ResolveRequest carries a free-text title plus the optional disambiguators
// a caller may know about the media it is looking for.
type ResolveRequest struct {
	Title string

	// Format narrows candidates to a declared type (TV, Movie, OVA...).
	Format string
	// Dub narrows candidates to those reporting dubbed (or Hindi) episodes.
	Dub bool
	// TotalEpisodes narrows candidates to those reporting this sub count.
	TotalEpisodes int
	// IDToMatch prefers the candidate with this provider id, when present.
	IDToMatch string
}

// Resolver turns an approximate title into a concrete candidate list or a
// playable episode list for one provider. Every filter is advisory: a
// filter that would empty a non-empty set is discarded, so a non-empty
// search always yields something plausible.
type Resolver struct {
	sources map[string]ports.ResolverSource
}

func NewResolver() *Resolver {
	return &Resolver{sources: map[string]ports.ResolverSource{}}
}

func (r *Resolver) Register(provider string, src ports.ResolverSource) {
	r.sources[strings.ToLower(provider)] = src
}

// Source returns the registered client for a provider name.
func (r *Resolver) Source(provider string) (ports.ResolverSource, error) {
	return r.source(provider)
}

func (r *Resolver) source(provider string) (ports.ResolverSource, error) {
	src, ok := r.sources[strings.ToLower(provider)]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q: %w", provider, ports.ErrNotFound)
	}
	return src, nil
}

// advisory applies pred only if it leaves at least one candidate.
func advisory(cands []domain.Candidate, pred func(domain.Candidate) bool) []domain.Candidate {
	filtered := lo.Filter(cands, func(c domain.Candidate, _ int) bool { return pred(c) })
	if len(filtered) == 0 {
		return cands
	}
	return filtered
}

type resolution struct {
	normalized string
	pool       []domain.Candidate // post-format search results
	exact      []domain.Candidate // exact normalized-title matches
}

func (r *Resolver) search(ctx context.Context, src ports.ResolverSource, req ResolveRequest) (resolution, error) {
	normalized := NormalizeTitle(CorrectTitle(req.Title))

	results, err := src.SearchCandidates(ctx, normalized)
	if err != nil {
		// A provider that signals empty search with not-found is treated
		// the same as one returning an empty array.
		if errors.Is(err, ports.ErrNotFound) {
			return resolution{normalized: normalized}, nil
		}
		return resolution{}, err
	}
	if len(results) == 0 {
		return resolution{normalized: normalized}, nil
	}

	pool := results
	if req.Format != "" {
		pool = advisory(pool, func(c domain.Candidate) bool {
			return strings.EqualFold(c.Type, req.Format)
		})
	}

	exact := lo.Filter(pool, func(c domain.Candidate, _ int) bool {
		return NormalizeTitle(c.Title) == normalized
	})

	return resolution{normalized: normalized, pool: pool, exact: exact}, nil
}

// Candidates runs the search and filter cascade and returns the narrowed
// candidate set. A nil result means the provider search itself was empty.
func (r *Resolver) Candidates(ctx context.Context, provider string, req ResolveRequest) ([]domain.Candidate, error) {
	src, err := r.source(provider)
	if err != nil {
		return nil, err
	}
	res, err := r.search(ctx, src, req)
	if err != nil {
		return nil, err
	}
	if len(res.pool) == 0 {
		return nil, nil
	}

	// An exact title match is already unambiguous; the remaining filters
	// only narrow inexact sets.
	if len(res.exact) > 0 {
		return res.exact, nil
	}
	return r.narrow(res.pool, req), nil
}

// narrow applies the remaining advisory filters (dub availability, total
// episode count) to an already title-matched set.
func (r *Resolver) narrow(cands []domain.Candidate, req ResolveRequest) []domain.Candidate {
	out := cands
	if req.Dub {
		out = advisory(out, func(c domain.Candidate) bool { return c.Episodes.Dub > 0 })
	}
	if req.TotalEpisodes > 0 {
		out = advisory(out, func(c domain.Candidate) bool { return c.Episodes.Sub == req.TotalEpisodes })
	}
	return out
}

// Episodes resolves the best candidate and fetches its episode list.
// A nil result means resolution failed: empty search, or an empty final
// episode list. Provider transport errors propagate.
func (r *Resolver) Episodes(ctx context.Context, provider string, req ResolveRequest) (*domain.ResolvedEpisodes, error) {
	src, err := r.source(provider)
	if err != nil {
		return nil, err
	}
	res, err := r.search(ctx, src, req)
	if err != nil {
		return nil, err
	}
	if len(res.pool) == 0 {
		return nil, nil
	}

	working := res.exact
	if len(working) == 0 {
		// Broaden to substring containment against the normalized title,
		// keeping the full set's head as the guess of last resort.
		working = lo.Filter(res.pool, func(c domain.Candidate, _ int) bool {
			return strings.Contains(NormalizeTitle(c.Title), res.normalized)
		})
		if len(working) > 1 {
			byDistance(working, res.normalized)
		}
		if len(working) == 0 {
			working = res.pool[:1]
		}
	}
	working = r.narrow(working, req)

	chosen := working[0]
	if req.IDToMatch != "" {
		if byID, ok := lo.Find(working, func(c domain.Candidate) bool { return c.ID == req.IDToMatch }); ok {
			chosen = byID
		}
	}

	episodes, err := src.EpisodeList(ctx, chosen.ID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(episodes) == 0 {
		return nil, nil
	}

	counts := chosen.Episodes
	if counts.Sub == 0 && counts.Dub == 0 {
		counts = working[0].Episodes
	}
	return &domain.ResolvedEpisodes{
		EpisodesSub: counts.Sub,
		EpisodesDub: counts.Dub,
		Episodes:    episodes,
	}, nil
}

// byDistance orders candidates by Levenshtein distance between their
// normalized title and the query, closest first.
func byDistance(cands []domain.Candidate, normalized string) {
	sort.SliceStable(cands, func(i, j int) bool {
		return levenshtein.Distance(NormalizeTitle(cands[i].Title), normalized) <
			levenshtein.Distance(NormalizeTitle(cands[j].Title), normalized)
	})
}
