package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignmentRepository работает со связями сотрудник-проект.
// Связи не имеют мягкого удаления и удаляются физически.
type AssignmentRepository struct {
	uow *unitOfWork
}

// Exists проверяет, назначен ли сотрудник на проект
func (r *AssignmentRepository) Exists(ctx context.Context, employeeID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.uow.conn(ctx).
		Model(&domain.EmployeeProject{}).
		Where("employee_id = ? AND project_id = ?", employeeID, projectID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return count > 0, nil
}

// Add ставит вставку связи в очередь. Повторная вставка пары игнорируется.
func (r *AssignmentRepository) Add(employeeID, projectID uuid.UUID) {
	link := &domain.EmployeeProject{EmployeeID: employeeID, ProjectID: projectID}
	r.uow.stage(func(db *gorm.DB) *gorm.DB {
		return db.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(link)
	})
}

// Remove ставит удаление связи в очередь
func (r *AssignmentRepository) Remove(employeeID, projectID uuid.UUID) {
	r.uow.stage(func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ? AND project_id = ?", employeeID, projectID).
			Delete(&domain.EmployeeProject{})
	})
}
