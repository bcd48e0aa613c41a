package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/workforce-api/internal/domain"
	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/handler"
	"github.com/workforce-api/internal/middleware"
)

type mockDepartmentService struct {
	departments map[uuid.UUID]*dto.DepartmentResponse
	err         error

	lastParams dto.PaginationParams
	lastTerm   string
}

func newMockDepartmentService() *mockDepartmentService {
	return &mockDepartmentService{departments: make(map[uuid.UUID]*dto.DepartmentResponse)}
}

func (m *mockDepartmentService) page(params dto.PaginationParams) dto.PaginatedResult[dto.DepartmentResponse] {
	items := make([]dto.DepartmentResponse, 0, len(m.departments))
	for _, d := range m.departments {
		items = append(items, *d)
	}
	return dto.NewPaginatedResult(items, len(items), params.PageNumber, params.PageSize)
}

func (m *mockDepartmentService) GetAll(_ context.Context, params dto.PaginationParams) (dto.PaginatedResult[dto.DepartmentResponse], error) {
	m.lastParams = params
	if m.err != nil {
		return dto.PaginatedResult[dto.DepartmentResponse]{}, m.err
	}
	return m.page(params), nil
}

func (m *mockDepartmentService) GetByID(_ context.Context, id uuid.UUID) (*dto.DepartmentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if dept, ok := m.departments[id]; ok {
		return dept, nil
	}
	return nil, domain.DepartmentNotFound(id)
}

func (m *mockDepartmentService) Search(_ context.Context, term string, params dto.PaginationParams) (dto.PaginatedResult[dto.DepartmentResponse], error) {
	m.lastTerm = term
	m.lastParams = params
	if m.err != nil {
		return dto.PaginatedResult[dto.DepartmentResponse]{}, m.err
	}
	return m.page(params), nil
}

func (m *mockDepartmentService) GetEmployees(_ context.Context, id uuid.UUID, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error) {
	if m.err != nil {
		return dto.PaginatedResult[dto.EmployeeResponse]{}, m.err
	}
	if _, ok := m.departments[id]; !ok {
		return dto.PaginatedResult[dto.EmployeeResponse]{}, domain.DepartmentNotFound(id)
	}
	return dto.NewPaginatedResult[dto.EmployeeResponse](nil, 0, params.PageNumber, params.PageSize), nil
}

func (m *mockDepartmentService) Create(_ context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	dept := &dto.DepartmentResponse{ID: uuid.New(), Name: req.Name, Description: req.Description}
	m.departments[dept.ID] = dept
	return dept, nil
}

func (m *mockDepartmentService) Update(_ context.Context, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	dept, ok := m.departments[req.ID]
	if !ok {
		return nil, domain.DepartmentNotFound(req.ID)
	}
	dept.Name = req.Name
	dept.Description = req.Description
	return dept, nil
}

func (m *mockDepartmentService) Delete(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.departments[id]; !ok {
		return domain.DepartmentNotFound(id)
	}
	delete(m.departments, id)
	return nil
}

type assignment struct {
	employeeID uuid.UUID
	projectID  uuid.UUID
}

type mockEmployeeService struct {
	employees   map[uuid.UUID]*dto.EmployeeResponse
	assignments map[assignment]bool
	err         error
}

func newMockEmployeeService() *mockEmployeeService {
	return &mockEmployeeService{
		employees:   make(map[uuid.UUID]*dto.EmployeeResponse),
		assignments: make(map[assignment]bool),
	}
}

func (m *mockEmployeeService) GetAll(_ context.Context, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error) {
	if m.err != nil {
		return dto.PaginatedResult[dto.EmployeeResponse]{}, m.err
	}
	items := make([]dto.EmployeeResponse, 0, len(m.employees))
	for _, e := range m.employees {
		items = append(items, *e)
	}
	return dto.NewPaginatedResult(items, len(items), params.PageNumber, params.PageSize), nil
}

func (m *mockEmployeeService) GetByID(_ context.Context, id uuid.UUID) (*dto.EmployeeDetailResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	emp, ok := m.employees[id]
	if !ok {
		return nil, domain.EmployeeNotFound(id)
	}
	return &dto.EmployeeDetailResponse{EmployeeResponse: *emp, Projects: []dto.ProjectResponse{}}, nil
}

func (m *mockEmployeeService) Search(ctx context.Context, _ string, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error) {
	return m.GetAll(ctx, params)
}

func (m *mockEmployeeService) Create(_ context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	emp := &dto.EmployeeResponse{
		ID:             uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Status:         req.Status,
		HireDate:       req.HireDate.Time,
		DepartmentID:   req.DepartmentID,
		DepartmentName: "Engineering",
	}
	m.employees[emp.ID] = emp
	return emp, nil
}

func (m *mockEmployeeService) Update(_ context.Context, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	emp, ok := m.employees[req.ID]
	if !ok {
		return nil, domain.EmployeeNotFound(req.ID)
	}
	emp.Email = req.Email
	emp.Status = req.Status
	return emp, nil
}

func (m *mockEmployeeService) Delete(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.employees[id]; !ok {
		return domain.EmployeeNotFound(id)
	}
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeService) AssignToProject(_ context.Context, employeeID, projectID uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.employees[employeeID]; !ok {
		return domain.EmployeeNotFound(employeeID)
	}
	m.assignments[assignment{employeeID, projectID}] = true
	return nil
}

func (m *mockEmployeeService) RemoveFromProject(_ context.Context, employeeID, projectID uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	key := assignment{employeeID, projectID}
	if !m.assignments[key] {
		return &domain.AssignmentNotFoundError{EmployeeID: employeeID, ProjectID: projectID}
	}
	delete(m.assignments, key)
	return nil
}

type mockProjectService struct {
	projects map[uuid.UUID]*dto.ProjectResponse
	err      error
}

func newMockProjectService() *mockProjectService {
	return &mockProjectService{projects: make(map[uuid.UUID]*dto.ProjectResponse)}
}

func (m *mockProjectService) GetAll(_ context.Context, params dto.PaginationParams) (dto.PaginatedResult[dto.ProjectResponse], error) {
	if m.err != nil {
		return dto.PaginatedResult[dto.ProjectResponse]{}, m.err
	}
	items := make([]dto.ProjectResponse, 0, len(m.projects))
	for _, p := range m.projects {
		items = append(items, *p)
	}
	return dto.NewPaginatedResult(items, len(items), params.PageNumber, params.PageSize), nil
}

func (m *mockProjectService) GetByID(_ context.Context, id uuid.UUID) (*dto.ProjectResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, domain.ProjectNotFound(id)
}

func (m *mockProjectService) Search(ctx context.Context, _ string, params dto.PaginationParams) (dto.PaginatedResult[dto.ProjectResponse], error) {
	return m.GetAll(ctx, params)
}

func (m *mockProjectService) GetEmployees(_ context.Context, id uuid.UUID, params dto.PaginationParams) (dto.PaginatedResult[dto.EmployeeResponse], error) {
	if m.err != nil {
		return dto.PaginatedResult[dto.EmployeeResponse]{}, m.err
	}
	if _, ok := m.projects[id]; !ok {
		return dto.PaginatedResult[dto.EmployeeResponse]{}, domain.ProjectNotFound(id)
	}
	return dto.NewPaginatedResult[dto.EmployeeResponse](nil, 0, params.PageNumber, params.PageSize), nil
}

func (m *mockProjectService) Create(_ context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	p := &dto.ProjectResponse{ID: uuid.New(), Name: req.Name, StartDate: req.StartDate.Time, EndDate: req.EndDate.TimePtr()}
	m.projects[p.ID] = p
	return p, nil
}

func (m *mockProjectService) Update(_ context.Context, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.projects[req.ID]
	if !ok {
		return nil, domain.ProjectNotFound(req.ID)
	}
	p.Name = req.Name
	return p, nil
}

func (m *mockProjectService) Delete(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.projects[id]; !ok {
		return domain.ProjectNotFound(id)
	}
	delete(m.projects, id)
	return nil
}

// stubValidator возвращает заданную ошибку для любого запроса
type stubValidator struct {
	err error
}

func (v *stubValidator) ValidateCreateDepartment(context.Context, *dto.CreateDepartmentRequest) error {
	return v.err
}

func (v *stubValidator) ValidateUpdateDepartment(context.Context, *dto.UpdateDepartmentRequest) error {
	return v.err
}

func (v *stubValidator) ValidateCreateEmployee(context.Context, *dto.CreateEmployeeRequest) error {
	return v.err
}

func (v *stubValidator) ValidateUpdateEmployee(context.Context, *dto.UpdateEmployeeRequest) error {
	return v.err
}

func (v *stubValidator) ValidateCreateProject(context.Context, *dto.CreateProjectRequest) error {
	return v.err
}

func (v *stubValidator) ValidateUpdateProject(context.Context, *dto.UpdateProjectRequest) error {
	return v.err
}

type testServer struct {
	server      *httptest.Server
	departments *mockDepartmentService
	employees   *mockEmployeeService
	projects    *mockProjectService
	validator   *stubValidator
}

func setupTestServer(_ *testing.T, opts ...handler.RouterOption) *testServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	pages := handler.PageSizes{Default: 10, Max: 100}

	ts := &testServer{
		departments: newMockDepartmentService(),
		employees:   newMockEmployeeService(),
		projects:    newMockProjectService(),
		validator:   &stubValidator{},
	}

	router := handler.NewRouter(
		handler.NewDepartmentHandler(ts.departments, ts.validator, pages, logger),
		handler.NewEmployeeHandler(ts.employees, ts.validator, pages, logger),
		handler.NewProjectHandler(ts.projects, ts.validator, pages, logger),
		logger,
		opts...,
	)
	ts.server = httptest.NewServer(router.Setup())
	return ts
}

func (ts *testServer) Close() {
	ts.server.Close()
}

func (ts *testServer) addDepartment(name string) *dto.DepartmentResponse {
	dept := &dto.DepartmentResponse{ID: uuid.New(), Name: name}
	ts.departments.departments[dept.ID] = dept
	return dept
}

func (ts *testServer) addEmployee(email string) *dto.EmployeeResponse {
	emp := &dto.EmployeeResponse{ID: uuid.New(), FirstName: "Maria", LastName: "Georgiou", Email: email}
	ts.employees.employees[emp.ID] = emp
	return emp
}

func (ts *testServer) addProject(name string) *dto.ProjectResponse {
	p := &dto.ProjectResponse{ID: uuid.New(), Name: name, StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)}
	ts.projects.projects[p.ID] = p
	return p
}

func do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func sendRaw(t *testing.T, method, url string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return do(t, req)
}

func sendJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	return sendRaw(t, method, url, reader)
}

func getJSON(t *testing.T, url string) *http.Response {
	t.Helper()
	return sendJSON(t, http.MethodGet, url, nil)
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	return sendJSON(t, http.MethodPost, url, body)
}

func putJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	return sendJSON(t, http.MethodPut, url, body)
}

func deleteRequest(t *testing.T, url string) *http.Response {
	t.Helper()
	return sendJSON(t, http.MethodDelete, url, nil)
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected %d, got %d: %s", want, resp.StatusCode, body)
	}
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var result dto.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return result
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := getJSON(t, ts.server.URL+"/health")
	expectStatus(t, resp, http.StatusOK)

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var result dto.HealthResponse
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Status != "healthy" {
		t.Errorf("expected status 'healthy', got '%s'", result.Status)
	}
	if result.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestCreateDepartment_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := postJSON(t, ts.server.URL+"/api/departments", map[string]any{"name": "Engineering"})
	expectStatus(t, resp, http.StatusCreated)

	var result dto.DepartmentResponse
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Name != "Engineering" {
		t.Errorf("expected name 'Engineering', got '%s'", result.Name)
	}
	if result.EmployeeCount != 0 {
		t.Errorf("expected employeeCount 0, got %d", result.EmployeeCount)
	}

	want := "/api/departments/" + result.ID.String()
	if loc := resp.Header.Get("Location"); loc != want {
		t.Errorf("expected Location %q, got %q", want, loc)
	}
}

func TestCreateDepartment_InvalidBody(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := sendRaw(t, http.MethodPost, ts.server.URL+"/api/departments", strings.NewReader("{name:"))
	expectStatus(t, resp, http.StatusBadRequest)

	if msg := decodeError(t, resp).Message; msg != "Invalid request body" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestCreateDepartment_ValidationFailed(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	ts.validator.err = &domain.ValidationError{Errors: []domain.FieldError{
		{Property: "name", Message: "Department name is required"},
	}}

	resp := postJSON(t, ts.server.URL+"/api/departments", map[string]any{"name": ""})
	expectStatus(t, resp, http.StatusBadRequest)

	result := decodeError(t, resp)
	if result.Message != "Validation failed" {
		t.Errorf("unexpected message %q", result.Message)
	}
	if len(result.Errors) != 1 || result.Errors[0].Property != "name" {
		t.Fatalf("expected one error for 'name', got %+v", result.Errors)
	}
	if result.Errors[0].Message != "Department name is required" {
		t.Errorf("unexpected field message %q", result.Errors[0].Message)
	}
	if len(ts.departments.departments) != 0 {
		t.Error("service must not be called when validation fails")
	}
}

func TestCreateDepartment_Duplicate(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	ts.departments.err = fmt.Errorf("%w: unique index", domain.ErrDuplicateValue)

	resp := postJSON(t, ts.server.URL+"/api/departments", map[string]any{"name": "Engineering"})
	expectStatus(t, resp, http.StatusConflict)

	if msg := decodeError(t, resp).Message; !strings.Contains(msg, "already exists") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestGetDepartment_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	dept := ts.addDepartment("Sales")

	resp := getJSON(t, ts.server.URL+"/api/departments/"+dept.ID.String())
	expectStatus(t, resp, http.StatusOK)

	var result dto.DepartmentResponse
	json.NewDecoder(resp.Body).Decode(&result)
	if result.ID != dept.ID || result.Name != "Sales" {
		t.Errorf("unexpected department %+v", result)
	}
}

func TestGetDepartment_InvalidID(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := getJSON(t, ts.server.URL+"/api/departments/42")
	expectStatus(t, resp, http.StatusBadRequest)

	if msg := decodeError(t, resp).Message; msg != "invalid id" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestGetDepartment_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	id := uuid.New()
	resp := getJSON(t, ts.server.URL+"/api/departments/"+id.String())
	expectStatus(t, resp, http.StatusNotFound)

	want := fmt.Sprintf("Department with ID %s not found", id)
	if msg := decodeError(t, resp).Message; msg != want {
		t.Errorf("expected %q, got %q", want, msg)
	}
}

func TestGetDepartments_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantNumber int
		wantSize   int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "?pageNumber=3&pageSize=25", 3, 25},
		{"page number below one", "?pageNumber=0", 1, 10},
		{"page size above max", "?pageSize=500", 1, 100},
		{"page size below one", "?pageSize=-4", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)
			defer ts.Close()

			resp := getJSON(t, ts.server.URL+"/api/departments"+tt.query)
			expectStatus(t, resp, http.StatusOK)

			got := ts.departments.lastParams
			if got.PageNumber != tt.wantNumber || got.PageSize != tt.wantSize {
				t.Errorf("expected page %d/%d, got %d/%d", tt.wantNumber, tt.wantSize, got.PageNumber, got.PageSize)
			}

			var result dto.PaginatedResult[dto.DepartmentResponse]
			json.NewDecoder(resp.Body).Decode(&result)
			if result.PageSize != tt.wantSize {
				t.Errorf("expected pageSize %d in body, got %d", tt.wantSize, result.PageSize)
			}
		})
	}
}

func TestGetDepartments_InvalidPageSize(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := getJSON(t, ts.server.URL+"/api/departments?pageSize=ten")
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestSearchDepartments_BlankTerm(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	for _, query := range []string{"", "?q=", "?q=%20%20"} {
		resp := getJSON(t, ts.server.URL+"/api/departments/search"+query)
		expectStatus(t, resp, http.StatusBadRequest)

		if msg := decodeError(t, resp).Message; msg != "Search term is required" {
			t.Errorf("query %q: unexpected message %q", query, msg)
		}
	}
}

func TestSearchDepartments_TrimsTerm(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := getJSON(t, ts.server.URL+"/api/departments/search?q=%20eng%20&pageSize=5")
	expectStatus(t, resp, http.StatusOK)

	if ts.departments.lastTerm != "eng" {
		t.Errorf("expected term 'eng', got %q", ts.departments.lastTerm)
	}
	if ts.departments.lastParams.PageSize != 5 {
		t.Errorf("expected pageSize 5, got %d", ts.departments.lastParams.PageSize)
	}
}

func TestUpdateDepartment_UsesRouteID(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	dept := ts.addDepartment("Engineering")

	resp := putJSON(t, ts.server.URL+"/api/departments/"+dept.ID.String(), map[string]any{
		"id":   uuid.New(),
		"name": "Platform",
	})
	expectStatus(t, resp, http.StatusOK)

	var result dto.DepartmentResponse
	json.NewDecoder(resp.Body).Decode(&result)
	if result.ID != dept.ID || result.Name != "Platform" {
		t.Errorf("unexpected department %+v", result)
	}
}

func TestUpdateDepartment_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := putJSON(t, ts.server.URL+"/api/departments/"+uuid.NewString(), map[string]any{"name": "Platform"})
	expectStatus(t, resp, http.StatusNotFound)
}

func TestDeleteDepartment(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	dept := ts.addDepartment("Engineering")
	url := ts.server.URL + "/api/departments/" + dept.ID.String()

	resp := deleteRequest(t, url)
	expectStatus(t, resp, http.StatusNoContent)

	resp = deleteRequest(t, url)
	expectStatus(t, resp, http.StatusNotFound)
}

func TestGetDepartmentEmployees(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	dept := ts.addDepartment("Engineering")

	resp := getJSON(t, ts.server.URL+"/api/departments/"+dept.ID.String()+"/employees")
	expectStatus(t, resp, http.StatusOK)

	var result dto.PaginatedResult[dto.EmployeeResponse]
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Items == nil || len(result.Items) != 0 {
		t.Errorf("expected empty items array, got %+v", result.Items)
	}

	resp = getJSON(t, ts.server.URL+"/api/departments/"+uuid.NewString()+"/employees")
	expectStatus(t, resp, http.StatusNotFound)
}

func TestCreateEmployee_UnknownDepartment(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	ts.employees.err = fmt.Errorf("%w: foreign key", domain.ErrReferentialIntegrity)

	resp := postJSON(t, ts.server.URL+"/api/employees", map[string]any{
		"firstName":    "Maria",
		"lastName":     "Georgiou",
		"email":        "maria@company.com",
		"hireDate":     "2022-02-01T00:00:00Z",
		"departmentId": uuid.New(),
	})
	expectStatus(t, resp, http.StatusBadRequest)

	if msg := decodeError(t, resp).Message; !strings.Contains(msg, "referential integrity") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestCreateEmployee_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := postJSON(t, ts.server.URL+"/api/employees", map[string]any{
		"firstName":    "Maria",
		"lastName":     "Georgiou",
		"email":        "maria@company.com",
		"status":       1,
		"hireDate":     "2022-02-01T00:00:00Z",
		"departmentId": uuid.New(),
	})
	expectStatus(t, resp, http.StatusCreated)

	var result dto.EmployeeResponse
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Status != domain.EmployeeStatusInactive {
		t.Errorf("expected status 1, got %d", result.Status)
	}
	if !strings.HasSuffix(resp.Header.Get("Location"), "/api/employees/"+result.ID.String()) {
		t.Errorf("unexpected Location %q", resp.Header.Get("Location"))
	}
}

func TestGetEmployee_IncludesProjects(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	emp := ts.addEmployee("maria@company.com")

	resp := getJSON(t, ts.server.URL+"/api/employees/"+emp.ID.String())
	expectStatus(t, resp, http.StatusOK)

	var raw map[string]any
	json.NewDecoder(resp.Body).Decode(&raw)
	if _, ok := raw["projects"]; !ok {
		t.Error("expected projects field in response")
	}
	if raw["email"] != "maria@company.com" {
		t.Errorf("unexpected email %v", raw["email"])
	}
}

func TestAssignToProject(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	emp := ts.addEmployee("maria@company.com")
	project := ts.addProject("Mobile Application Platform")
	url := fmt.Sprintf("%s/api/employees/%s/projects/%s", ts.server.URL, emp.ID, project.ID)

	for range 2 {
		resp := postJSON(t, url, nil)
		expectStatus(t, resp, http.StatusOK)

		body, _ := io.ReadAll(resp.Body)
		if len(body) != 0 {
			t.Errorf("expected empty body, got %q", body)
		}
	}

	if len(ts.employees.assignments) != 1 {
		t.Errorf("expected 1 assignment, got %d", len(ts.employees.assignments))
	}
}

func TestAssignToProject_InvalidProjectID(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	emp := ts.addEmployee("maria@company.com")

	resp := postJSON(t, ts.server.URL+"/api/employees/"+emp.ID.String()+"/projects/abc", nil)
	expectStatus(t, resp, http.StatusBadRequest)

	if msg := decodeError(t, resp).Message; msg != "invalid projectId" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestRemoveFromProject(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	emp := ts.addEmployee("maria@company.com")
	project := ts.addProject("Mobile Application Platform")
	url := fmt.Sprintf("%s/api/employees/%s/projects/%s", ts.server.URL, emp.ID, project.ID)

	resp := deleteRequest(t, url)
	expectStatus(t, resp, http.StatusNotFound)
	if msg := decodeError(t, resp).Message; !strings.Contains(msg, "Assignment between employee") {
		t.Errorf("unexpected message %q", msg)
	}

	resp = postJSON(t, url, nil)
	expectStatus(t, resp, http.StatusOK)

	resp = deleteRequest(t, url)
	expectStatus(t, resp, http.StatusOK)
}

func TestProjectEndpoints(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := postJSON(t, ts.server.URL+"/api/projects", map[string]any{
		"name":      "Data Migration Initiative",
		"startDate": "2024-03-01T00:00:00Z",
		"endDate":   "2024-12-31T00:00:00Z",
	})
	expectStatus(t, resp, http.StatusCreated)

	var created dto.ProjectResponse
	json.NewDecoder(resp.Body).Decode(&created)
	if created.EndDate == nil {
		t.Fatal("expected endDate to be set")
	}

	resp = getJSON(t, ts.server.URL+"/api/projects/"+created.ID.String()+"/employees")
	expectStatus(t, resp, http.StatusOK)

	resp = getJSON(t, ts.server.URL+"/api/projects/search?q=migration")
	expectStatus(t, resp, http.StatusOK)

	var page dto.PaginatedResult[dto.ProjectResponse]
	json.NewDecoder(resp.Body).Decode(&page)
	if page.TotalCount != 1 {
		t.Errorf("expected totalCount 1, got %d", page.TotalCount)
	}

	resp = deleteRequest(t, ts.server.URL+"/api/projects/"+created.ID.String())
	expectStatus(t, resp, http.StatusNoContent)
}

func TestServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"canceled", context.Canceled, handler.StatusClientClosedRequest, ""},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "The request timed out"},
		{"wrapped not found", fmt.Errorf("lookup: %w", domain.ErrNotFound), http.StatusNotFound, "Resource not found"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "An internal server error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)
			defer ts.Close()

			ts.projects.err = tt.err

			resp := getJSON(t, ts.server.URL+"/api/projects")
			expectStatus(t, resp, tt.wantStatus)

			if tt.wantMsg == "" {
				return
			}
			if msg := decodeError(t, resp).Message; msg != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := getJSON(t, ts.server.URL+"/api/unknown")
	expectStatus(t, resp, http.StatusNotFound)

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp := sendJSON(t, http.MethodPatch, ts.server.URL+"/api/departments/"+uuid.NewString(), nil)
	expectStatus(t, resp, http.StatusMethodNotAllowed)
}

func TestPanicRecovered(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	// nil-карта в моке вызывает панику при записи
	ts.departments.departments = nil

	resp := postJSON(t, ts.server.URL+"/api/departments", map[string]any{"name": "Engineering"})
	expectStatus(t, resp, http.StatusInternalServerError)

	if msg := decodeError(t, resp).Message; msg != "An internal server error occurred" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)

	ts := setupTestServer(t, handler.WithMetrics(metrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	defer ts.Close()

	getJSON(t, ts.server.URL+"/api/departments")

	resp := getJSON(t, ts.server.URL+"/metrics")
	expectStatus(t, resp, http.StatusOK)

	body, _ := io.ReadAll(resp.Body)
	want := `workforce_http_requests_total{method="GET",route="/api/departments`
	if !strings.Contains(string(body), want) {
		t.Errorf("expected metrics to contain %q, got:\n%s", want, body)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := setupTestServer(t, handler.WithCORS([]string{"http://localhost:3000"}))
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodOptions, ts.server.URL+"/api/departments", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp := do(t, req)

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected allowed origin header, got %q", got)
	}
}
