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
	"github.com/go-playground/validator/v10"
)

type SlotSuggester interface {
	SuggestAlternatives(ctx context.Context, req *api.SuggestRequest) (*api.SuggestResponse, error)
}

type Request struct {
	api.SuggestRequest
}

type Response struct {
	response.Response
	api.SuggestResponse
}

func New(log *slog.Logger, suggester SlotSuggester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.suggestions.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		if err := validator.New().Struct(req.SuggestRequest); err != nil {
			var validateErrs validator.ValidationErrors
			if errors.As(err, &validateErrs) {
				log.Error("Request validation failed", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErrs))
				return
			}
		}

		result, err := suggester.SuggestAlternatives(r.Context(), &req.SuggestRequest)

		if errors.Is(err, response.ErrNoAvailableSlot) {
			log.Info("no available slot within horizon")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NO_AVAILABLE_SLOT), "no available slot within search horizon"))
			return
		}

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("bad request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "bad request"))
			return
		}

		if err != nil {
			log.Error("Failed to suggest slots", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to suggest slots"))
			return
		}

		log.Info("Slots suggested", slog.Int("count", len(result.Slots)))

		render.JSON(w, r, Response{SuggestResponse: *result})
	}
}
