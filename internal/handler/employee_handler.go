package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/service"
)

type EmployeeHandler struct {
	base
	empService service.EmployeeService
	validator  RequestValidator
}

func NewEmployeeHandler(
	empService service.EmployeeService,
	validator RequestValidator,
	pages PageSizes,
	logger *slog.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		base:       newBase(logger, pages),
		empService: empService,
		validator:  validator,
	}
}

func (h *EmployeeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	params, err := h.pagination(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.empService.GetAll(r.Context(), params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *EmployeeHandler) Search(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.empService.Search(r.Context(), term, params)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetByID возвращает сотрудника вместе со списком проектов
func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, emp)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.validator.ValidateCreateEmployee(r.Context(), &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	emp, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/employees/"+emp.ID.String())
	h.respondJSON(w, http.StatusCreated, emp)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req.ID = id

	if err := h.validator.ValidateUpdateEmployee(r.Context(), &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	emp, err := h.empService.Update(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, emp)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.empService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EmployeeHandler) AssignToProject(w http.ResponseWriter, r *http.Request) {
	employeeID, projectID, ok := h.assignmentIDs(w, r)
	if !ok {
		return
	}

	if err := h.empService.AssignToProject(r.Context(), employeeID, projectID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *EmployeeHandler) RemoveFromProject(w http.ResponseWriter, r *http.Request) {
	employeeID, projectID, ok := h.assignmentIDs(w, r)
	if !ok {
		return
	}

	if err := h.empService.RemoveFromProject(r.Context(), employeeID, projectID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *EmployeeHandler) assignmentIDs(w http.ResponseWriter, r *http.Request) (employeeID, projectID uuid.UUID, ok bool) {
	employeeID, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return uuid.Nil, uuid.Nil, false
	}
	projectID, err = h.pathID(r, "projectId")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return uuid.Nil, uuid.Nil, false
	}
	return employeeID, projectID, true
}
