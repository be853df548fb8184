package app

import (
	"context"
	"testing"

	"github.com/animemax/animemax-server/internal/domain"
	"github.com/animemax/animemax-server/internal/ports"
)

type fakeSource struct {
	results   []domain.Candidate
	episodes  map[string][]domain.Episode
	searchErr error
	queries   []string
}

func (f *fakeSource) SearchCandidates(_ context.Context, query string) ([]domain.Candidate, error) {
	f.queries = append(f.queries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeSource) EpisodeList(_ context.Context, id string) ([]domain.Episode, error) {
	eps, ok := f.episodes[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return eps, nil
}

func newTestResolver(src *fakeSource) *Resolver {
	r := NewResolver()
	r.Register("test", src)
	return r
}

func TestResolver_UnknownProvider(t *testing.T) {
	r := NewResolver()
	if _, err := r.Episodes(context.Background(), "nope", ResolveRequest{Title: "x"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestResolver_EmptySearchYieldsNil(t *testing.T) {
	src := &fakeSource{}
	r := newTestResolver(src)

	got, err := r.Episodes(context.Background(), "test", ResolveRequest{Title: "Nothing"})
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil result for empty search, got %+v", got)
	}
}

func TestResolver_NotFoundSearchYieldsNil(t *testing.T) {
	src := &fakeSource{searchErr: ports.ErrNotFound}
	r := newTestResolver(src)

	got, err := r.Episodes(context.Background(), "test", ResolveRequest{Title: "Nothing"})
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil result, got %+v", got)
	}
}

func TestResolver_ExactTitleWins(t *testing.T) {
	src := &fakeSource{
		results: []domain.Candidate{
			{ID: "bleach-tybw", Title: "Bleach: Thousand-Year Blood War"},
			{ID: "bleach", Title: "Bleach", Episodes: domain.EpisodeCounts{Sub: 366}},
		},
		episodes: map[string][]domain.Episode{
			"bleach": {{ID: "bleach-1", Number: 1}},
		},
	}
	r := newTestResolver(src)

	got, err := r.Episodes(context.Background(), "test", ResolveRequest{Title: "Bleach"})
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if got == nil || len(got.Episodes) != 1 || got.Episodes[0].ID != "bleach-1" {
		t.Fatalf("expected exact match episodes, got %+v", got)
	}
	if got.EpisodesSub != 366 {
		t.Fatalf("expected sub count from chosen candidate, got %d", got.EpisodesSub)
	}
}

// A punctuated catalog title never matches the plain query exactly or by
// containment, so resolution falls back to the first search result.
func TestResolver_DefaultsToFirstResult(t *testing.T) {
	src := &fakeSource{
		results: []domain.Candidate{
			{ID: "naruto", Title: "Naruto"},
			{ID: "naruto-shippuden", Title: "Naruto: Shippuden"},
		},
		episodes: map[string][]domain.Episode{
			"naruto": {{ID: "naruto-1", Number: 1}},
		},
	}
	r := newTestResolver(src)

	got, err := r.Episodes(context.Background(), "test", ResolveRequest{Title: "Naruto Shippuden"})
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if got == nil || got.Episodes[0].ID != "naruto-1" {
		t.Fatalf("expected first-result fallback, got %+v", got)
	}
}

func TestResolver_DubFilterIsAdvisory(t *testing.T) {
	src := &fakeSource{
		results: []domain.Candidate{
			{ID: "a", Title: "One Piece"},
			{ID: "b", Title: "One Piece", Episodes: domain.EpisodeCounts{Sub: 10, Dub: 10}},
		},
		episodes: map[string][]domain.Episode{
			"a": {{ID: "a-1", Number: 1}},
			"b": {{ID: "b-1", Number: 1}},
		},
	}
	r := newTestResolver(src)

	got, err := r.Episodes(context.Background(), "test", ResolveRequest{Title: "One Piece", Dub: true})
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if got == nil || got.Episodes[0].ID != "b-1" {
		t.Fatalf("expected dubbed candidate, got %+v", got)
	}

	// No candidate is dubbed: the filter must not empty the set.
	src2 := &fakeSource{
		results:  []domain.Candidate{{ID: "a", Title: "One Piece"}},
		episodes: map[string][]domain.Episode{"a": {{ID: "a-1", Number: 1}}},
	}
	r2 := newTestResolver(src2)
	got2, err := r2.Episodes(context.Background(), "test", ResolveRequest{Title: "One Piece", Dub: true})
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if got2 == nil || got2.Episodes[0].ID != "a-1" {
		t.Fatalf("advisory dub filter emptied the set: %+v", got2)
	}
}

func TestResolver_IDToMatchPreferred(t *testing.T) {
	src := &fakeSource{
		results: []domain.Candidate{
			{ID: "frieren", Title: "Frieren"},
			{ID: "frieren-s2", Title: "Frieren"},
		},
		episodes: map[string][]domain.Episode{
			"frieren":    {{ID: "f-1", Number: 1}},
			"frieren-s2": {{ID: "f2-1", Number: 1}},
		},
	}
	r := newTestResolver(src)

	got, err := r.Episodes(context.Background(), "test", ResolveRequest{Title: "Frieren", IDToMatch: "frieren-s2"})
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if got == nil || got.Episodes[0].ID != "f2-1" {
		t.Fatalf("expected id-matched candidate, got %+v", got)
	}
}

func TestResolver_EmptyEpisodeListYieldsNil(t *testing.T) {
	src := &fakeSource{
		results:  []domain.Candidate{{ID: "x", Title: "X"}},
		episodes: map[string][]domain.Episode{"x": {}},
	}
	r := newTestResolver(src)

	got, err := r.Episodes(context.Background(), "test", ResolveRequest{Title: "X"})
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for empty episode list, got %+v", got)
	}
}

func TestResolver_CandidatesFormatFilter(t *testing.T) {
	src := &fakeSource{
		results: []domain.Candidate{
			{ID: "movie", Title: "Suzume", Type: "Movie"},
			{ID: "tv", Title: "Suzume", Type: "TV"},
		},
	}
	r := newTestResolver(src)

	cands, err := r.Candidates(context.Background(), "test", ResolveRequest{Title: "Suzume", Format: "movie"})
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(cands) != 1 || cands[0].ID != "movie" {
		t.Fatalf("expected format-filtered candidates, got %+v", cands)
	}

	// A format nobody declares is advisory, not fatal.
	cands, err = r.Candidates(context.Background(), "test", ResolveRequest{Title: "Suzume", Format: "OVA"})
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("advisory format filter emptied the set: %+v", cands)
	}
}

func TestResolver_SearchUsesCorrectedNormalizedTitle(t *testing.T) {
	src := &fakeSource{}
	r := newTestResolver(src)

	_, _ = r.Episodes(context.Background(), "test", ResolveRequest{Title: "Naruto Shippuuden"})
	if len(src.queries) != 1 || src.queries[0] != "naruto shippuden" {
		t.Fatalf("expected corrected normalized query, got %v", src.queries)
	}
}
