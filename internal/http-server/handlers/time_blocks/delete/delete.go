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

type TimeBlockDeleter interface {
	DeleteTimeBlock(ctx context.Context, blockID string) error
}

func New(log *slog.Logger, deleter TimeBlockDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.time_blocks.delete.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("block id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "block id is required"))
			return
		}

		err := deleter.DeleteTimeBlock(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("time block not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "time block not found"))
			return
		}

		if err != nil {
			log.Error("Failed to delete time block", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete time block"))
			return
		}

		log.Info("Time block deleted", slog.String("block_id", id))

		w.WriteHeader(http.StatusNoContent)
	}
}
