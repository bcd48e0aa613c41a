package validation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/repository"
)

var employeeMessages = messages{
	"firstName.required":     "First name is required",
	"firstName.notblank":     "First name is required",
	"firstName.max":          "First name cannot exceed 100 characters",
	"lastName.required":      "Last name is required",
	"lastName.notblank":      "Last name is required",
	"lastName.max":           "Last name cannot exceed 100 characters",
	"email.required":         "Email is required",
	"email.notblank":         "Email is required",
	"email.email":            "Invalid email format",
	"email.max":              "Email cannot exceed 256 characters",
	"status.employee_status": "Invalid employee status",
	"hireDate.required":      "Hire date is required",
	"hireDate.not_future":    "Hire date cannot be in the future",
	"notes.max":              "Notes cannot exceed 1000 characters",
	"departmentId.required":  "Department is required",
}

const (
	msgEmailTaken          = "An employee with this email address already exists."
	msgDepartmentNotExists = "The specified department does not exist."
)

// ValidateCreateEmployee проверяет запрос на создание сотрудника
func (v *Validator) ValidateCreateEmployee(ctx context.Context, req *dto.CreateEmployeeRequest) error {
	return v.validateEmployee(ctx, req, req.Email, req.DepartmentID, uuid.Nil)
}

// ValidateUpdateEmployee проверяет запрос на обновление сотрудника
func (v *Validator) ValidateUpdateEmployee(ctx context.Context, req *dto.UpdateEmployeeRequest) error {
	return v.validateEmployee(ctx, req, req.Email, req.DepartmentID, req.ID)
}

func (v *Validator) validateEmployee(ctx context.Context, req any, email string, departmentID, selfID uuid.UUID) error {
	var c collector
	if err := v.checkFields(req, employeeMessages, &c); err != nil {
		return err
	}

	uow := v.uows.New()
	defer uow.Close()

	if !blank(email) {
		taken, err := uow.Employees().Any(ctx, repository.EmployeeEmailTaken(email, selfID))
		if err != nil {
			return fmt.Errorf("check employee email: %w", err)
		}
		if taken {
			c.add("email", msgEmailTaken)
		}
	}

	if departmentID != uuid.Nil {
		exists, err := uow.Departments().Exists(ctx, departmentID)
		if err != nil {
			return fmt.Errorf("check department: %w", err)
		}
		if !exists {
			c.add("departmentId", msgDepartmentNotExists)
		}
	}

	return c.result()
}
