package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/service"
)

type DepartmentHandler struct {
	base
	deptService service.DepartmentService
	validator   RequestValidator
}

func NewDepartmentHandler(
	deptService service.DepartmentService,
	validator RequestValidator,
	pages PageSizes,
	logger *slog.Logger,
) *DepartmentHandler {
	return &DepartmentHandler{
		base:        newBase(logger, pages),
		deptService: deptService,
		validator:   validator,
	}
}

func (h *DepartmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := h.pagination(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.deptService.GetAll(r.Context(), params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *DepartmentHandler) Search(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.deptService.Search(r.Context(), term, params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *DepartmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dept, err := h.deptService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dept)
}

func (h *DepartmentHandler) GetEmployees(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.deptService.GetEmployees(r.Context(), id, params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepartmentRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.validator.ValidateCreateDepartment(r.Context(), &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	dept, err := h.deptService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/departments/"+dept.ID.String())
	h.respondJSON(w, http.StatusCreated, dept)
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req.ID = id

	if err := h.validator.ValidateUpdateDepartment(r.Context(), &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	dept, err := h.deptService.Update(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dept)
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.deptService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
