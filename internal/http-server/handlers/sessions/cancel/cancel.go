package cancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/FinalRule/Rattel-LMS-sub000/api"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/response"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type SessionCanceller interface {
	CancelSession(ctx context.Context, sessionID string) (*api.SessionResponse, error)
}

type Response struct {
	response.Response
	Session api.SessionResponse `json:"session,omitempty"`
}

func New(log *slog.Logger, canceller SessionCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sessions.cancel.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("session id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "session id is required"))
			return
		}

		session, err := canceller.CancelSession(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("session not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "session not found"))
			return
		}

		if err != nil {
			log.Error("Failed to cancel session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to cancel session"))
			return
		}

		log.Info("Session cancelled", slog.String("session_id", id))

		render.JSON(w, r, Response{Session: *session})
	}
}
