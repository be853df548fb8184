package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/animemax/animemax-server/internal/app"
	"github.com/animemax/animemax-server/internal/httpjson"
	"github.com/animemax/animemax-server/internal/ports"
)

func (s *Server) resolveRoutes(r chi.Router) {
	r.Route("/resolve/{provider}", func(r chi.Router) {
		r.Get("/", s.handleResolveEpisodes)
		r.Get("/candidates", s.handleResolveCandidates)
	})
}

func resolveRequest(r *http.Request) (app.ResolveRequest, bool) {
	q := r.URL.Query()
	req := app.ResolveRequest{
		Title:     firstOf(q.Get("title"), q.Get("q")),
		Format:    q.Get("format"),
		IDToMatch: q.Get("id"),
	}
	if req.Title == "" {
		return req, false
	}
	// hindi is the legacy spelling of the dub flag.
	req.Dub, _ = strconv.ParseBool(firstOf(q.Get("dub"), q.Get("hindi")))
	req.TotalEpisodes, _ = strconv.Atoi(firstOf(q.Get("totalEpisodes"), q.Get("episodes")))
	return req, true
}

func firstOf(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// handleResolveEpisodes maps a free-text title to the chosen candidate's
// episode list on one provider.
func (s *Server) handleResolveEpisodes(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	req, ok := resolveRequest(r)
	if !ok {
		httpjson.WriteError(w, http.StatusBadRequest, "missing required parameter: title")
		return
	}

	resolved, err := s.resolver.Episodes(r.Context(), provider, req)
	if err != nil {
		s.writeResolveError(w, r, provider, err)
		return
	}
	if resolved == nil {
		httpjson.Write(w, http.StatusNotFound, map[string]any{
			"message": "No match found",
			"results": nil,
		})
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "Episodes for: " + req.Title,
		"results": resolved,
	})
}

// handleResolveCandidates exposes the narrowed candidate set without
// fetching episodes, for callers that want to pick their own match.
func (s *Server) handleResolveCandidates(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	req, ok := resolveRequest(r)
	if !ok {
		httpjson.WriteError(w, http.StatusBadRequest, "missing required parameter: title")
		return
	}

	cands, err := s.resolver.Candidates(r.Context(), provider, req)
	if err != nil {
		s.writeResolveError(w, r, provider, err)
		return
	}
	if len(cands) == 0 {
		httpjson.Write(w, http.StatusNotFound, map[string]any{
			"message": "No match found",
			"results": []any{},
		})
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "Candidates for: " + req.Title,
		"results": cands,
	})
}

func (s *Server) writeResolveError(w http.ResponseWriter, r *http.Request, provider string, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		httpjson.WriteError(w, http.StatusNotFound, "unknown provider: "+provider)
		return
	}
	hlog.FromRequest(r).Error().Err(err).Str("provider", provider).Msg("resolve failed")
	httpjson.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
}
