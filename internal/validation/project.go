package validation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/repository"
)

var projectMessages = messages{
	"name.required":      "Project name is required",
	"name.notblank":      "Project name is required",
	"name.max":           "Project name cannot exceed 200 characters",
	"description.max":    "Description cannot exceed 2000 characters",
	"startDate.required": "Start date is required",
	"endDate.gtfield":    "End date must be after start date",
}

const msgProjectNameTaken = "A project with this name already exists."

// ValidateCreateProject проверяет запрос на создание проекта
func (v *Validator) ValidateCreateProject(ctx context.Context, req *dto.CreateProjectRequest) error {
	return v.validateProject(ctx, req, req.Name, uuid.Nil)
}

// ValidateUpdateProject проверяет запрос на обновление проекта
func (v *Validator) ValidateUpdateProject(ctx context.Context, req *dto.UpdateProjectRequest) error {
	return v.validateProject(ctx, req, req.Name, req.ID)
}

func (v *Validator) validateProject(ctx context.Context, req any, name string, selfID uuid.UUID) error {
	var c collector
	if err := v.checkFields(req, projectMessages, &c); err != nil {
		return err
	}

	if !blank(name) {
		uow := v.uows.New()
		defer uow.Close()

		taken, err := uow.Projects().Any(ctx, repository.ProjectNameTaken(name, selfID))
		if err != nil {
			return fmt.Errorf("check project name: %w", err)
		}
		if taken {
			c.add("name", msgProjectNameTaken)
		}
	}

	return c.result()
}
