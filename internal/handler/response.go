package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/workforce-api/internal/domain"
	"github.com/workforce-api/internal/dto"
)

// StatusClientClosedRequest - клиент закрыл соединение до ответа
const StatusClientClosedRequest = 499

const (
	msgValidationFailed     = "Validation failed"
	msgInvalidBody          = "Invalid request body"
	msgDuplicateValue       = "A record with this value already exists. Please use a unique value."
	msgReferentialIntegrity = "The operation cannot be completed because it would violate referential integrity."
	msgTimeout              = "The request timed out"
	msgInternal             = "An internal server error occurred"
	msgSearchTermRequired   = "Search term is required"
)

// PageSizes - размер страницы по умолчанию и максимальный
type PageSizes struct {
	Default int
	Max     int
}

// base содержит общие для хендлеров ответы и разбор параметров
type base struct {
	logger *slog.Logger
	pages  PageSizes
}

func newBase(logger *slog.Logger, pages PageSizes) base {
	if logger == nil {
		logger = slog.Default()
	}
	if pages.Default < 1 {
		pages.Default = 10
	}
	if pages.Max < pages.Default {
		pages.Max = pages.Default
	}
	return base{logger: logger, pages: pages}
}

// pagination читает pageNumber и pageSize, приводя их к допустимым границам
func (b base) pagination(r *http.Request) (dto.PaginationParams, error) {
	params := dto.PaginationParams{PageNumber: 1, PageSize: b.pages.Default}
	q := r.URL.Query()

	if v := q.Get("pageNumber"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("pageNumber must be an integer")
		}
		params.PageNumber = max(n, 1)
	}
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("pageSize must be an integer")
		}
		params.PageSize = min(max(n, 1), b.pages.Max)
	}
	return params, nil
}

func (b base) pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name)
	}
	return id, nil
}

func (b base) decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (b base) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	var notFound *domain.NotFoundError
	var assignmentNotFound *domain.AssignmentNotFoundError

	switch {
	case errors.As(err, &validationErr):
		b.respondJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Message: msgValidationFailed,
			Errors:  validationErr.Errors,
		})
	case errors.As(err, &notFound):
		b.respondError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &assignmentNotFound):
		b.respondError(w, http.StatusNotFound, assignmentNotFound.Error())
	case errors.Is(err, domain.ErrNotFound):
		b.respondError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, domain.ErrDuplicateValue):
		b.logger.Warn("duplicate value", slog.Any("error", err))
		b.respondError(w, http.StatusConflict, msgDuplicateValue)
	case errors.Is(err, domain.ErrReferentialIntegrity):
		b.logger.Warn("referential integrity violation", slog.Any("error", err))
		b.respondError(w, http.StatusBadRequest, msgReferentialIntegrity)
	case errors.Is(err, context.Canceled):
		b.logger.Info("request canceled", slog.String("path", r.URL.Path))
		w.WriteHeader(StatusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		b.respondError(w, http.StatusGatewayTimeout, msgTimeout)
	default:
		b.logger.Error("internal error",
			slog.Any("error", err),
			slog.String("path", r.URL.Path),
		)
		b.respondError(w, http.StatusInternalServerError, msgInternal)
	}
}

func (b base) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (b base) respondError(w http.ResponseWriter, status int, message string) {
	b.respondJSON(w, status, dto.ErrorResponse{Message: message})
}
