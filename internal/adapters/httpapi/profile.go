package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/animemax/animemax-server/internal/app"
	"github.com/animemax/animemax-server/internal/domain"
	"github.com/animemax/animemax-server/internal/httpjson"
	"github.com/animemax/animemax-server/internal/ports"
)

// ProfileHandler serves the per-user record: preferences, bookmarks,
// playback progress, status lists and notifications.
type ProfileHandler struct {
	profiles      *app.ProfileService
	notifications ports.NotificationRepository
}

func NewProfileHandler(profiles *app.ProfileService, notifications ports.NotificationRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, notifications: notifications}
}

func (h *ProfileHandler) Routes(r chi.Router) {
	r.Route("/users/{userId}", func(r chi.Router) {
		r.Get("/", h.handleGetProfile)
		r.Delete("/", h.handleDeleteProfile)
		r.Put("/preferences", h.handlePutPreferences)

		r.Get("/bookmarks", h.handleListBookmarks)
		r.Post("/bookmarks", h.handleAddBookmark)
		r.Delete("/bookmarks/{mediaId}", h.handleRemoveBookmark)

		r.Get("/keep-watching", h.handleListKeepWatching)
		r.Put("/keep-watching", h.handlePutKeepWatching)

		r.Get("/watched/{mediaId}", h.handleListWatched)
		r.Post("/watched", h.handleMarkWatched)
		r.Delete("/watched/{mediaId}/{episodeNumber}", h.handleUnmarkWatched)

		r.Get("/read/{mediaId}", h.handleListRead)
		r.Post("/read", h.handleMarkRead)
		r.Delete("/read/{mediaId}/{chapterNumber}", h.handleUnmarkRead)

		r.Get("/status/{status}", h.handleListStatus)
		r.Post("/status", h.handleAddStatus)
		r.Delete("/status/{status}/{mediaId}", h.handleRemoveStatus)

		if h.notifications != nil {
			r.Get("/subscriptions", h.handleListSubscriptions)
			r.Post("/subscriptions", h.handleSubscribe)
			r.Delete("/subscriptions/{mediaId}", h.handleUnsubscribe)

			r.Get("/notifications", h.handleListNotifications)
			r.Post("/notifications/read", h.handleMarkNotificationsRead)
		}
	})
}

func userID(r *http.Request) string {
	return chi.URLParam(r, "userId")
}

func mediaIDParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "mediaId"))
	return id, err == nil && id > 0
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *ProfileHandler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		httpjson.WriteError(w, http.StatusNotFound, "user not found")
		return
	}
	hlog.FromRequest(r).Error().Err(err).Msg("profile store error")
	httpjson.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
}

func (h *ProfileHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context(), userID(r))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, profile)
}

func (h *ProfileHandler) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.Delete(r.Context(), userID(r)); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs domain.Preferences
	if !decodeBody(w, r, &prefs) {
		return
	}
	profile, err := h.profiles.PutPreferences(r.Context(), userID(r), prefs)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, profile)
}

func (h *ProfileHandler) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	items, err := h.profiles.Bookmarks(r.Context(), userID(r))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, items)
}

func (h *ProfileHandler) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	var b domain.Bookmark
	if !decodeBody(w, r, &b) {
		return
	}
	if err := h.profiles.AddBookmark(r.Context(), userID(r), b); err != nil {
		if isValidation(err) {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := mediaIDParam(r)
	if !ok {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid media id")
		return
	}
	if err := h.profiles.RemoveBookmark(r.Context(), userID(r), id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handleListKeepWatching(w http.ResponseWriter, r *http.Request) {
	items, err := h.profiles.KeepWatching(r.Context(), userID(r))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, items)
}

func (h *ProfileHandler) handlePutKeepWatching(w http.ResponseWriter, r *http.Request) {
	var kw domain.KeepWatching
	if !decodeBody(w, r, &kw) {
		return
	}
	if err := h.profiles.PutKeepWatching(r.Context(), userID(r), kw); err != nil {
		if isValidation(err) {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handleListWatched(w http.ResponseWriter, r *http.Request) {
	id, ok := mediaIDParam(r)
	if !ok {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid media id")
		return
	}
	items, err := h.profiles.WatchedEpisodes(r.Context(), userID(r), id)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, items)
}

func (h *ProfileHandler) handleMarkWatched(w http.ResponseWriter, r *http.Request) {
	var ep domain.WatchedEpisode
	if !decodeBody(w, r, &ep) {
		return
	}
	if err := h.profiles.MarkEpisodeWatched(r.Context(), userID(r), ep); err != nil {
		if isValidation(err) {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handleUnmarkWatched(w http.ResponseWriter, r *http.Request) {
	id, ok := mediaIDParam(r)
	ep, err := strconv.Atoi(chi.URLParam(r, "episodeNumber"))
	if !ok || err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid media id or episode number")
		return
	}
	if err := h.profiles.UnmarkEpisodeWatched(r.Context(), userID(r), id, ep); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handleListRead(w http.ResponseWriter, r *http.Request) {
	id, ok := mediaIDParam(r)
	if !ok {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid media id")
		return
	}
	items, err := h.profiles.ReadChapters(r.Context(), userID(r), id)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, items)
}

func (h *ProfileHandler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	var ch domain.ReadChapter
	if !decodeBody(w, r, &ch) {
		return
	}
	if err := h.profiles.MarkChapterRead(r.Context(), userID(r), ch); err != nil {
		if isValidation(err) {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handleUnmarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := mediaIDParam(r)
	ch, err := strconv.Atoi(chi.URLParam(r, "chapterNumber"))
	if !ok || err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid media id or chapter number")
		return
	}
	if err := h.profiles.UnmarkChapterRead(r.Context(), userID(r), id, ch); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handleListStatus(w http.ResponseWriter, r *http.Request) {
	items, err := h.profiles.StatusList(r.Context(), userID(r), chi.URLParam(r, "status"))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, items)
}

func (h *ProfileHandler) handleAddStatus(w http.ResponseWriter, r *http.Request) {
	var e domain.StatusEntry
	if !decodeBody(w, r, &e) {
		return
	}
	if err := h.profiles.AddToStatusList(r.Context(), userID(r), e); err != nil {
		if isValidation(err) {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handleRemoveStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := mediaIDParam(r)
	if !ok {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid media id")
		return
	}
	if err := h.profiles.RemoveFromStatusList(r.Context(), userID(r), chi.URLParam(r, "status"), id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.notifications.ListSubscriptions(r.Context(), userID(r))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, subs)
}

func (h *ProfileHandler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var sub domain.NotificationSubscription
	if !decodeBody(w, r, &sub) {
		return
	}
	sub.UserID = userID(r)
	if sub.MediaID <= 0 || sub.Provider == "" || sub.ProviderMediaID == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "missing media id, provider or provider media id")
		return
	}
	if _, err := h.profiles.Get(r.Context(), sub.UserID); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if err := h.notifications.Subscribe(r.Context(), sub); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	id, ok := mediaIDParam(r)
	if !ok {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid media id")
		return
	}
	if err := h.notifications.Unsubscribe(r.Context(), userID(r), id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unread"))
	items, err := h.notifications.ListNotifications(r.Context(), userID(r), unreadOnly)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, items)
}

func (h *ProfileHandler) handleMarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := h.notifications.MarkNotificationsRead(r.Context(), userID(r), body.IDs); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// isValidation reports whether err is a request-shape problem rather than a
// store failure.
func isValidation(err error) bool {
	return errors.Is(err, ports.ErrInvalid)
}
