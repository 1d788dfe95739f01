package delete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/FinalRule/Rattel-LMS-sub000/pkg/response"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type WindowDeleter interface {
	DeleteAvailabilityWindow(ctx context.Context, windowID string) error
}

func New(log *slog.Logger, deleter WindowDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.delete.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("window id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "window id is required"))
			return
		}

		err := deleter.DeleteAvailabilityWindow(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("window not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "window not found"))
			return
		}

		if err != nil {
			log.Error("Failed to delete availability window", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete availability window"))
			return
		}

		log.Info("Availability window deleted", slog.String("window_id", id))

		w.WriteHeader(http.StatusNoContent)
	}
}
