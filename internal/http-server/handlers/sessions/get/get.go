package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/FinalRule/Rattel-LMS-sub000/api"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/response"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type SessionProvider interface {
	GetSession(ctx context.Context, sessionID string) (*api.SessionResponse, error)
	ListSessionsByClass(ctx context.Context, classID string) ([]api.SessionResponse, error)
	ListSessionsForParty(ctx context.Context, partyKind, partyID string, from, to time.Time) ([]api.SessionResponse, error)
}

type Response struct {
	response.Response
	Session  *api.SessionResponse  `json:"session,omitempty"`
	Sessions []api.SessionResponse `json:"sessions,omitempty"`
}

// New handles both GET /sessions/{id} and GET /sessions with
// class_id / teacher_id / student_id query filters.
func New(log *slog.Logger, provider SessionProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sessions.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			session, err := provider.GetSession(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("session not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "session not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get session", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get session"))
				return
			}

			render.JSON(w, r, Response{Session: session})
			return
		}

		q := r.URL.Query()

		if classID := q.Get("class_id"); classID != "" {
			sessions, err := provider.ListSessionsByClass(r.Context(), classID)
			if err != nil {
				log.Error("Failed to list sessions", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list sessions"))
				return
			}

			render.JSON(w, r, Response{Sessions: sessions})
			return
		}

		partyKind, partyID := "teacher", q.Get("teacher_id")
		if partyID == "" {
			partyKind, partyID = "student", q.Get("student_id")
		}
		if partyID == "" {
			log.Error("missing filter")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "class_id, teacher_id or student_id is required"))
			return
		}

		from, to, err := parseRange(q.Get("from"), q.Get("to"))
		if err != nil {
			log.Error("invalid range", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid from/to"))
			return
		}

		sessions, err := provider.ListSessionsForParty(r.Context(), partyKind, partyID, from, to)

		if errors.Is(err, response.ErrBadRequest) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "bad request"))
			return
		}

		if err != nil {
			log.Error("Failed to list sessions", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list sessions"))
			return
		}

		render.JSON(w, r, Response{Sessions: sessions})
	}
}

// parseRange parses the optional RFC3339 bounds. Zero values pass
// through; the service applies its default listing window.
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	var from, to time.Time

	if fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	return from, to, nil
}
