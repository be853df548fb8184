package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/animemax/animemax-server/internal/ports"
)

func TestHiAnimeSuccessFalseIsNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer upstream.Close()

	p := NewHiAnime(upstream.URL)
	if _, err := p.Episodes(context.Background(), "ghost"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHiAnimeEmptySourcesIsNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"sources":[]}}`))
	}))
	defer upstream.Close()

	p := NewHiAnime(upstream.URL)
	if _, err := p.Sources(context.Background(), "ep-1", "hd-1", "sub"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHiAnimeSearchCandidates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "bleach" {
			t.Errorf("unexpected query: %q", r.URL.Query().Get("q"))
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"animes":[
			{"id":"bleach-806","name":"Bleach","type":"TV","episodes":{"sub":366,"dub":366}}
		]}}`))
	}))
	defer upstream.Close()

	p := NewHiAnime(upstream.URL)
	cands, err := p.SearchCandidates(context.Background(), "bleach")
	if err != nil {
		t.Fatalf("SearchCandidates: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	c := cands[0]
	if c.ID != "bleach-806" || c.Title != "Bleach" || c.Episodes.Sub != 366 || c.Episodes.Dub != 366 {
		t.Fatalf("unexpected candidate: %+v", c)
	}
}

func TestAniwatchStatusCodes(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/anime/episodes/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/anime/episodes/broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`{"episodes":[{"episodeId":"x?ep=1","number":1}]}`))
		}
	}))
	defer upstream.Close()

	p := NewAniwatch(upstream.URL)
	ctx := context.Background()

	if _, err := p.Episodes(ctx, "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("404 must map to ErrNotFound, got %v", err)
	}
	if _, err := p.Episodes(ctx, "broken"); !errors.Is(err, ports.ErrUpstream) {
		t.Fatalf("5xx must map to ErrUpstream, got %v", err)
	}
	eps, err := p.EpisodeList(ctx, "ok")
	if err != nil {
		t.Fatalf("EpisodeList: %v", err)
	}
	if len(eps) != 1 || eps[0].ID != "x?ep=1" {
		t.Fatalf("unexpected episodes: %+v", eps)
	}
}

func TestConsumetDubMapping(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/anime/gogoanime/bleach" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"results":[
			{"id":"bleach","title":"Bleach","subOrDub":"sub"},
			{"id":"bleach-dub","title":"Bleach (Dub)","subOrDub":"dub"}
		]}`))
	}))
	defer upstream.Close()

	p := NewConsumet(upstream.URL, "gogoanime")
	cands, err := p.SearchCandidates(context.Background(), "bleach")
	if err != nil {
		t.Fatalf("SearchCandidates: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].Episodes.Dub != 0 || cands[1].Episodes.Dub == 0 {
		t.Fatalf("dub-only mapping broken: %+v", cands)
	}
}
