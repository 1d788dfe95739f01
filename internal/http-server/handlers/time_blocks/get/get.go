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

type TimeBlockProvider interface {
	GetTimeBlock(ctx context.Context, blockID string) (*api.TimeBlockResponse, error)
	ListTimeBlocks(ctx context.Context, teacherID *string, from, to *time.Time) ([]*api.TimeBlockResponse, error)
}

type Response struct {
	response.Response
	TimeBlock  *api.TimeBlockResponse   `json:"time_block,omitempty"`
	TimeBlocks []*api.TimeBlockResponse `json:"time_blocks,omitempty"`
}

func New(log *slog.Logger, provider TimeBlockProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.time_blocks.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			block, err := provider.GetTimeBlock(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("time block not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "time block not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get time block", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get time block"))
				return
			}

			render.JSON(w, r, Response{TimeBlock: block})
			return
		}

		q := r.URL.Query()

		var teacherID *string
		if v := q.Get("teacher_id"); v != "" {
			teacherID = &v
		}

		var from, to *time.Time
		if v := q.Get("from"); v != "" {
			parsed, err := time.Parse(time.RFC3339, v)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid from"))
				return
			}
			from = &parsed
		}
		if v := q.Get("to"); v != "" {
			parsed, err := time.Parse(time.RFC3339, v)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid to"))
				return
			}
			to = &parsed
		}

		blocks, err := provider.ListTimeBlocks(r.Context(), teacherID, from, to)
		if err != nil {
			log.Error("Failed to list time blocks", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list time blocks"))
			return
		}

		render.JSON(w, r, Response{TimeBlocks: blocks})
	}
}
