package create

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

type WindowCreator interface {
	CreateAvailabilityWindow(ctx context.Context, req *api.AvailabilityWindowRequest) (*api.AvailabilityWindowResponse, error)
}

type Request struct {
	api.AvailabilityWindowRequest
}

type Response struct {
	response.Response
	Window api.AvailabilityWindowResponse `json:"window,omitempty"`
}

func New(log *slog.Logger, creator WindowCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.create.New"

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

		if err := validator.New().Struct(req.AvailabilityWindowRequest); err != nil {
			var validateErrs validator.ValidationErrors
			if errors.As(err, &validateErrs) {
				log.Error("Request validation failed", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErrs))
				return
			}
		}

		window, err := creator.CreateAvailabilityWindow(r.Context(), &req.AvailabilityWindowRequest)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("bad request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "bad request"))
			return
		}

		if err != nil {
			log.Error("Failed to create availability window", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create availability window"))
			return
		}

		log.Info("Availability window created", slog.String("window_id", window.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{Window: *window})
	}
}
