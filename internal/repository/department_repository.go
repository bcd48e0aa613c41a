package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/domain"
	"gorm.io/gorm"
)

const departmentEmployeeCount = `(SELECT COUNT(*) FROM employees e
	WHERE e.department_id = departments.id AND e.is_deleted = ?) AS employee_count`

// WithDepartmentEmployeeCount добавляет к выборке число неудалённых сотрудников
func WithDepartmentEmployeeCount(db *gorm.DB) *gorm.DB {
	return db.Select("departments.*, "+departmentEmployeeCount, false)
}

// OrderDepartments задаёт стабильный порядок отделов
func OrderDepartments(db *gorm.DB) *gorm.DB {
	return db.Order("departments.name ASC").Order("departments.id ASC")
}

// SearchDepartments ищет по названию и описанию
func SearchDepartments(term string) Scope {
	return ContainsFold(term, "departments.name", "departments.description")
}

// DepartmentNameTaken - предикат занятости названия другим отделом
func DepartmentNameTaken(name string, excludeID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Scopes(
			EqualFold("departments.name", name),
			ExcludeID("departments.id", excludeID),
		)
	}
}

// GetDepartment загружает неудалённый отдел вместе с числом сотрудников
func GetDepartment(ctx context.Context, repo *Repository[domain.Department], id uuid.UUID) (*domain.Department, error) {
	var dept domain.Department
	err := repo.Query(ctx).
		Scopes(WithDepartmentEmployeeCount).
		Where("departments.id = ?", id).
		Take(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.DepartmentNotFound(id)
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &dept, nil
}
