package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/domain"
	"gorm.io/gorm"
)

const projectEmployeeCount = `(SELECT COUNT(*) FROM employee_projects ep
	JOIN employees e ON e.id = ep.employee_id
	WHERE ep.project_id = projects.id AND e.is_deleted = ?) AS employee_count`

// WithProjectEmployeeCount добавляет к выборке число неудалённых участников
func WithProjectEmployeeCount(db *gorm.DB) *gorm.DB {
	return db.Select("projects.*, "+projectEmployeeCount, false)
}

// OrderProjects задаёт стабильный порядок проектов
func OrderProjects(db *gorm.DB) *gorm.DB {
	return db.Order("projects.name ASC").Order("projects.id ASC")
}

// SearchProjects ищет по названию и описанию
func SearchProjects(term string) Scope {
	return ContainsFold(term, "projects.name", "projects.description")
}

// ProjectNameTaken - предикат занятости названия другим проектом
func ProjectNameTaken(name string, excludeID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Scopes(
			EqualFold("projects.name", name),
			ExcludeID("projects.id", excludeID),
		)
	}
}

// GetProject загружает неудалённый проект вместе с числом участников
func GetProject(ctx context.Context, repo *Repository[domain.Project], id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := repo.Query(ctx).
		Scopes(WithProjectEmployeeCount).
		Where("projects.id = ?", id).
		Take(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ProjectNotFound(id)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &project, nil
}
