package check

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

type ConflictChecker interface {
	CheckConflicts(ctx context.Context, req *api.CheckConflictsRequest) (*api.CheckConflictsResponse, error)
}

type Request struct {
	api.CheckConflictsRequest
}

type Response struct {
	response.Response
	api.CheckConflictsResponse
}

func New(log *slog.Logger, checker ConflictChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.conflicts.check.New"

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

		if err := validator.New().Struct(req.CheckConflictsRequest); err != nil {
			var validateErrs validator.ValidationErrors
			if errors.As(err, &validateErrs) {
				log.Error("Request validation failed", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErrs))
				return
			}
		}

		result, err := checker.CheckConflicts(r.Context(), &req.CheckConflictsRequest)

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("bad request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "bad request"))
			return
		}

		if err != nil {
			log.Error("Failed to check conflicts", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to check conflicts"))
			return
		}

		log.Info("Conflicts checked", slog.Int("conflicts", len(result.Conflicts)))

		render.JSON(w, r, Response{CheckConflictsResponse: *result})
	}
}
