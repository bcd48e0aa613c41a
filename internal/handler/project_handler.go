package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/service"
)

type ProjectHandler struct {
	base
	projectService service.ProjectService
	validator      RequestValidator
}

func NewProjectHandler(
	projectService service.ProjectService,
	validator RequestValidator,
	pages PageSizes,
	logger *slog.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		base:           newBase(logger, pages),
		projectService: projectService,
		validator:      validator,
	}
}

func (h *ProjectHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := h.pagination(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.projectService.GetAll(r.Context(), params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *ProjectHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		h.respondError(w, http.StatusBadRequest, msgSearchTermRequired)
		return
	}

	params, err := h.pagination(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.projectService.Search(r.Context(), term, params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := h.pagination(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.projectService.GetEmployees(r.Context(), id, params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.validator.ValidateCreateProject(r.Context(), &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/projects/"+project.ID.String())
	h.respondJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.UpdateProjectRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req.ID = id

	if err := h.validator.ValidateUpdateProject(r.Context(), &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	project, err := h.projectService.Update(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
