package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/domain"
)

// CreateDepartmentRequest - запрос на создание отдела
type CreateDepartmentRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// UpdateDepartmentRequest - запрос на обновление отдела.
// ID заполняется из маршрута, а не из тела запроса.
type UpdateDepartmentRequest struct {
	ID          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required,notblank,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
}

// CreateEmployeeRequest - запрос на создание сотрудника
type CreateEmployeeRequest struct {
	FirstName    string                `json:"firstName" validate:"required,notblank,max=100"`
	LastName     string                `json:"lastName" validate:"required,notblank,max=100"`
	Email        string                `json:"email" validate:"required,notblank,email,max=256"`
	Status       domain.EmployeeStatus `json:"status" validate:"employee_status"`
	HireDate     Date                  `json:"hireDate" validate:"required,not_future"`
	Notes        *string               `json:"notes" validate:"omitempty,max=1000"`
	DepartmentID uuid.UUID             `json:"departmentId" validate:"required"`
}

// UpdateEmployeeRequest - запрос на обновление сотрудника
type UpdateEmployeeRequest struct {
	ID           uuid.UUID             `json:"-"`
	FirstName    string                `json:"firstName" validate:"required,notblank,max=100"`
	LastName     string                `json:"lastName" validate:"required,notblank,max=100"`
	Email        string                `json:"email" validate:"required,notblank,email,max=256"`
	Status       domain.EmployeeStatus `json:"status" validate:"employee_status"`
	HireDate     Date                  `json:"hireDate" validate:"required,not_future"`
	Notes        *string               `json:"notes" validate:"omitempty,max=1000"`
	DepartmentID uuid.UUID             `json:"departmentId" validate:"required"`
}

// CreateProjectRequest - запрос на создание проекта
type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	StartDate   Date    `json:"startDate" validate:"required"`
	EndDate     *Date   `json:"endDate" validate:"omitempty,gtfield=StartDate"`
}

// UpdateProjectRequest - запрос на обновление проекта
type UpdateProjectRequest struct {
	ID          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required,notblank,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	StartDate   Date      `json:"startDate" validate:"required"`
	EndDate     *Date     `json:"endDate" validate:"omitempty,gtfield=StartDate"`
}

// DepartmentResponse - ответ с данными отдела
type DepartmentResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	EmployeeCount int       `json:"employeeCount"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID             uuid.UUID             `json:"id"`
	FirstName      string                `json:"firstName"`
	LastName       string                `json:"lastName"`
	Email          string                `json:"email"`
	Status         domain.EmployeeStatus `json:"status"`
	HireDate       time.Time             `json:"hireDate"`
	Notes          *string               `json:"notes"`
	DepartmentID   uuid.UUID             `json:"departmentId"`
	DepartmentName string                `json:"departmentName"`
}

// EmployeeDetailResponse - сотрудник вместе с его проектами
type EmployeeDetailResponse struct {
	EmployeeResponse
	Projects []ProjectResponse `json:"projects"`
}

// ProjectResponse - ответ с данными проекта
type ProjectResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	EmployeeCount int        `json:"employeeCount"`
}

// PaginationParams - параметры страницы
type PaginationParams struct {
	PageNumber int
	PageSize   int
}

// PaginatedResult - единый конверт для списков
type PaginatedResult[T any] struct {
	Items           []T  `json:"items"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NewPaginatedResult вычисляет метаданные страницы
func NewPaginatedResult[T any](items []T, totalCount, pageNumber, pageSize int) PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	return PaginatedResult[T]{
		Items:           items,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < totalPages,
	}
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// HealthResponse - ответ health check
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
