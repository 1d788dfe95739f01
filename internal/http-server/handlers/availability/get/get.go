package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/FinalRule/Rattel-LMS-sub000/api"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/response"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type WindowProvider interface {
	ListAvailabilityWindows(ctx context.Context, partyKind, partyID string) ([]api.AvailabilityWindowResponse, error)
}

type Response struct {
	response.Response
	Windows []api.AvailabilityWindowResponse `json:"windows"`
}

func New(log *slog.Logger, provider WindowProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := r.URL.Query()
		partyKind := q.Get("party_kind")
		partyID := q.Get("party_id")

		if partyKind == "" || partyID == "" {
			log.Error("missing party filter")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "party_kind and party_id are required"))
			return
		}

		windows, err := provider.ListAvailabilityWindows(r.Context(), partyKind, partyID)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("bad request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "bad request"))
			return
		}

		if err != nil {
			log.Error("Failed to list availability windows", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list availability windows"))
			return
		}

		render.JSON(w, r, Response{Windows: windows})
	}
}
