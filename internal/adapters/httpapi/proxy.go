package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/hlog"

	"github.com/animemax/animemax-server/internal/httpjson"
	"github.com/animemax/animemax-server/internal/ports"
)

// envelope is the uniform proxy response body. Results carries the upstream
// payload verbatim; the edge never reshapes provider JSON.
type envelope struct {
	Message string          `json:"message,omitempty"`
	Results json.RawMessage `json:"results"`
}

// proxyOp describes one cached upstream operation. The handler derived from
// it always walks the same path: validate, cache lookup, fetch, store.
type proxyOp struct {
	// name tags log lines for this operation.
	name string
	// required query parameters; a missing one is a 400 before any work.
	required []string
	// defaults fill optional parameters before key derivation, so the
	// explicit and implicit spellings of a request share a cache entry.
	defaults map[string]string
	// key derives the cache key from the (defaulted) query.
	key func(q url.Values) string
	// fetch performs the upstream call.
	fetch func(ctx context.Context, q url.Values) (json.RawMessage, error)
	// message builds the envelope message for served payloads.
	message func(q url.Values) string
	// notFound is the 404 envelope message.
	notFound string
	// emptyList selects the [] placeholder over null for 404 results.
	emptyList bool
}

func (op proxyOp) placeholder() json.RawMessage {
	if op.emptyList {
		return json.RawMessage("[]")
	}
	return json.RawMessage("null")
}

// handle turns a proxyOp into an http.HandlerFunc.
//
// Status conventions: 202 marks a cache hit, 200 a fresh fetch, 404 an
// upstream miss (never cached), 400 a missing parameter, 500 anything else.
func (s *Server) handle(op proxyOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := hlog.FromRequest(r)

		q := r.URL.Query()
		for _, p := range op.required {
			if q.Get(p) == "" {
				httpjson.WriteError(w, http.StatusBadRequest, "missing required parameter: "+p)
				return
			}
		}
		for k, v := range op.defaults {
			if q.Get(k) == "" {
				q.Set(k, v)
			}
		}

		key := op.key(q)
		if cached, err := s.cache.Get(ctx, key); err == nil {
			logger.Debug().Str("op", op.name).Str("key", key).Msg("cache hit")
			httpjson.Write(w, http.StatusAccepted, envelope{Message: op.message(q), Results: cached})
			return
		} else if !errors.Is(err, ports.ErrCacheMiss) {
			// A broken cache degrades to a plain proxy.
			logger.Warn().Err(err).Str("op", op.name).Str("key", key).Msg("cache lookup failed")
		}

		results, err := op.fetch(ctx, q)
		switch {
		case errors.Is(err, ports.ErrNotFound):
			httpjson.Write(w, http.StatusNotFound, envelope{Message: op.notFound, Results: op.placeholder()})
			return
		case err != nil:
			logger.Error().Err(err).Str("op", op.name).Msg("upstream fetch failed")
			httpjson.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		// Best effort; a failed store must not fail the response.
		if err := s.cache.Set(ctx, key, results); err != nil {
			logger.Warn().Err(err).Str("op", op.name).Str("key", key).Msg("cache store failed")
		}
		httpjson.Write(w, http.StatusOK, envelope{Message: op.message(q), Results: results})
	}
}
