package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Определение бизнес-ошибок
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateValue       = errors.New("a record with this value already exists")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
)

// NotFoundError - сущность отсутствует или мягко удалена
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AssignmentNotFoundError - сотрудник не назначен на проект
type AssignmentNotFoundError struct {
	EmployeeID uuid.UUID
	ProjectID  uuid.UUID
}

func (e *AssignmentNotFoundError) Error() string {
	return fmt.Sprintf("Assignment between employee %s and project %s not found", e.EmployeeID, e.ProjectID)
}

func (e *AssignmentNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func DepartmentNotFound(id uuid.UUID) error {
	return &NotFoundError{Entity: "Department", ID: id}
}

func EmployeeNotFound(id uuid.UUID) error {
	return &NotFoundError{Entity: "Employee", ID: id}
}

func ProjectNotFound(id uuid.UUID) error {
	return &NotFoundError{Entity: "Project", ID: id}
}

// FieldError - нарушение правила для одного поля
type FieldError struct {
	Property string `json:"property"`
	Message  string `json:"message"`
}

// ValidationError содержит список нарушений по полям
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Property + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Messages возвращает сообщения, относящиеся к полю
func (e *ValidationError) Messages(property string) []string {
	var out []string
	for _, fe := range e.Errors {
		if fe.Property == property {
			out = append(out, fe.Message)
		}
	}
	return out
}
