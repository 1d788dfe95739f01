package generate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/FinalRule/Rattel-LMS-sub000/api"
	"github.com/FinalRule/Rattel-LMS-sub000/internal/service"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/response"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type SessionGenerator interface {
	GenerateSessions(ctx context.Context, classID string, req *api.GenerateSessionsRequest) (*api.GenerateSessionsResponse, error)
}

type Request struct {
	api.GenerateSessionsRequest
}

type Response struct {
	response.Response
	api.GenerateSessionsResponse
}

func New(log *slog.Logger, generator SessionGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sessions.generate.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		classID := chi.URLParam(r, "id")
		if classID == "" {
			log.Error("class id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "class id is required"))
			return
		}

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		if err := validator.New().Struct(req.GenerateSessionsRequest); err != nil {
			var validateErrs validator.ValidationErrors
			if errors.As(err, &validateErrs) {
				log.Error("Request validation failed", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErrs))
				return
			}
		}

		result, err := generator.GenerateSessions(r.Context(), classID, &req.GenerateSessionsRequest)

		if errors.Is(err, response.ErrClassNotFound) {
			log.Error("class not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "class not found"))
			return
		}

		if errors.Is(err, response.ErrInvalidPattern) {
			log.Error("invalid weekly pattern", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.INVALID_PATTERN), "invalid weekly pattern"))
			return
		}

		if err != nil {
			var conflictErr *service.ConflictError
			if errors.As(err, &conflictErr) {
				log.Error("scheduling conflict", slog.Int("conflicts", len(conflictErr.Conflicts)))
				w.WriteHeader(http.StatusConflict)
				render.JSON(w, r, conflictResponse(conflictErr))
				return
			}
		}

		if errors.Is(err, response.ErrLocked) {
			log.Error("party set is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "scheduling in progress for this party set"))
			return
		}

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("bad request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "bad request"))
			return
		}

		if err != nil {
			log.Error("Failed to generate sessions", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to generate sessions"))
			return
		}

		log.Info("Sessions generated",
			slog.Int("created", len(result.Created)),
			slog.Int("skipped", len(result.Skipped)),
		)

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{GenerateSessionsResponse: *result})
	}
}

type conflictBody struct {
	response.Response
	Conflicts []api.ConflictInfo `json:"conflicts"`
}

func conflictResponse(err *service.ConflictError) conflictBody {
	body := conflictBody{
		Response: response.Error(string(response.CONFLICT), "scheduling conflict"),
	}
	for _, c := range err.Conflicts {
		body.Conflicts = append(body.Conflicts, api.ConflictInfo{
			PartyKind:   string(c.Party.Kind),
			PartyID:     c.Party.ID,
			SessionID:   c.SessionID,
			ClassID:     c.ClassID,
			TimeBlockID: c.TimeBlockID,
			Reason:      c.Reason,
		})
	}
	return body
}
