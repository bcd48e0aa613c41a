package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/domain"
	"gorm.io/gorm"
)

// WithEmployeeDepartment подгружает отдел сотрудника. Отдел подгружается
// и после его мягкого удаления, чтобы в ответе оставалось название.
func WithEmployeeDepartment(db *gorm.DB) *gorm.DB {
	return db.Preload("Department")
}

// OrderEmployees задаёт стабильный порядок сотрудников
func OrderEmployees(db *gorm.DB) *gorm.DB {
	return db.Order("employees.last_name ASC").
		Order("employees.first_name ASC").
		Order("employees.id ASC")
}

// SearchEmployees ищет по имени, фамилии и email
func SearchEmployees(term string) Scope {
	return ContainsFold(term, "employees.first_name", "employees.last_name", "employees.email")
}

// EmployeesOfDepartment отбирает сотрудников отдела
func EmployeesOfDepartment(departmentID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employees.department_id = ?", departmentID)
	}
}

// EmployeesOfProject отбирает сотрудников, назначенных на проект
func EmployeesOfProject(projectID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`EXISTS (SELECT 1 FROM employee_projects ep
			WHERE ep.employee_id = employees.id AND ep.project_id = ?)`, projectID)
	}
}

// EmployeeEmailTaken - предикат занятости email другим сотрудником
func EmployeeEmailTaken(email string, excludeID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Scopes(
			EqualFold("employees.email", email),
			ExcludeID("employees.id", excludeID),
		)
	}
}

// GetEmployee загружает неудалённого сотрудника вместе с отделом
func GetEmployee(ctx context.Context, repo *Repository[domain.Employee], id uuid.UUID) (*domain.Employee, error) {
	var emp domain.Employee
	err := repo.Query(ctx).
		Scopes(WithEmployeeDepartment).
		Where("employees.id = ?", id).
		Take(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.EmployeeNotFound(id)
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &emp, nil
}

// GetEmployeeProjects возвращает неудалённые проекты сотрудника с числом участников
func GetEmployeeProjects(ctx context.Context, repo *Repository[domain.Project], employeeID uuid.UUID) ([]domain.Project, error) {
	var projects []domain.Project
	err := repo.Query(ctx).
		Scopes(WithProjectEmployeeCount, OrderProjects).
		Where(`EXISTS (SELECT 1 FROM employee_projects ep
			WHERE ep.project_id = projects.id AND ep.employee_id = ?)`, employeeID).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("get employee projects: %w", err)
	}
	return projects, nil
}
