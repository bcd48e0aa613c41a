package validation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/repository"
)

var departmentMessages = messages{
	"name.required":   "Department name is required",
	"name.notblank":   "Department name is required",
	"name.max":        "Department name cannot exceed 200 characters",
	"description.max": "Description cannot exceed 1000 characters",
}

const msgDepartmentNameTaken = "A department with this name already exists."

// ValidateCreateDepartment проверяет запрос на создание отдела
func (v *Validator) ValidateCreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) error {
	return v.validateDepartment(ctx, req, req.Name, uuid.Nil)
}

// ValidateUpdateDepartment проверяет запрос на обновление отдела;
// собственное название отдела не считается конфликтом
func (v *Validator) ValidateUpdateDepartment(ctx context.Context, req *dto.UpdateDepartmentRequest) error {
	return v.validateDepartment(ctx, req, req.Name, req.ID)
}

func (v *Validator) validateDepartment(ctx context.Context, req any, name string, selfID uuid.UUID) error {
	var c collector
	if err := v.checkFields(req, departmentMessages, &c); err != nil {
		return err
	}

	if !blank(name) {
		uow := v.uows.New()
		defer uow.Close()

		taken, err := uow.Departments().Any(ctx, repository.DepartmentNameTaken(name, selfID))
		if err != nil {
			return fmt.Errorf("check department name: %w", err)
		}
		if taken {
			c.add("name", msgDepartmentNameTaken)
		}
	}

	return c.result()
}
