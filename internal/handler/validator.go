package handler

import (
	"context"

	"github.com/workforce-api/internal/dto"
)

// RequestValidator проверяет тела запросов до вызова сервисов
type RequestValidator interface {
	ValidateCreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) error
	ValidateUpdateDepartment(ctx context.Context, req *dto.UpdateDepartmentRequest) error
	ValidateCreateEmployee(ctx context.Context, req *dto.CreateEmployeeRequest) error
	ValidateUpdateEmployee(ctx context.Context, req *dto.UpdateEmployeeRequest) error
	ValidateCreateProject(ctx context.Context, req *dto.CreateProjectRequest) error
	ValidateUpdateProject(ctx context.Context, req *dto.UpdateProjectRequest) error
}
