package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity - общий контракт сущностей с мягким удалением
type Entity interface {
	TableName() string
	GetID() uuid.UUID
	Deleted() bool
}

// BaseEntity содержит идентификатор и поля мягкого удаления
type BaseEntity struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	IsDeleted bool       `json:"isDeleted" gorm:"not null;default:false;index"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// GetID возвращает идентификатор сущности
func (e BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// EnsureID генерирует идентификатор для новой сущности
func (e *BaseEntity) EnsureID() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
}

// Deleted сообщает, помечена ли сущность как удалённая
func (e BaseEntity) Deleted() bool {
	return e.IsDeleted
}

// EmployeeStatus - статус сотрудника
type EmployeeStatus int

const (
	EmployeeStatusActive   EmployeeStatus = 0
	EmployeeStatusInactive EmployeeStatus = 1
)

// Valid проверяет, что значение входит в перечисление
func (s EmployeeStatus) Valid() bool {
	return s == EmployeeStatusActive || s == EmployeeStatusInactive
}

func (s EmployeeStatus) String() string {
	switch s {
	case EmployeeStatusActive:
		return "Active"
	case EmployeeStatusInactive:
		return "Inactive"
	default:
		return "Unknown"
	}
}

// Department представляет отдел компании
type Department struct {
	BaseEntity
	Name        string  `json:"name" gorm:"type:varchar(200);not null"`
	Description *string `json:"description" gorm:"type:varchar(1000)"`

	// EmployeeCount заполняется только запросами с подсчётом сотрудников
	EmployeeCount int64 `json:"employeeCount" gorm:"->;-:migration"`

	Employees []Employee `json:"-" gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "departments"
}

// Employee представляет сотрудника
type Employee struct {
	BaseEntity
	FirstName    string         `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName     string         `json:"lastName" gorm:"type:varchar(100);not null"`
	Email        string         `json:"email" gorm:"type:varchar(256);not null"`
	Status       EmployeeStatus `json:"status" gorm:"not null;default:0"`
	HireDate     time.Time      `json:"hireDate" gorm:"not null"`
	Notes        *string        `json:"notes" gorm:"type:varchar(1000)"`
	DepartmentID uuid.UUID      `json:"departmentId" gorm:"type:uuid;not null;index"`

	Department       *Department       `json:"-" gorm:"foreignKey:DepartmentID"`
	EmployeeProjects []EmployeeProject `json:"-" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// Project представляет проект
type Project struct {
	BaseEntity
	Name        string     `json:"name" gorm:"type:varchar(200);not null"`
	Description *string    `json:"description" gorm:"type:varchar(2000)"`
	StartDate   time.Time  `json:"startDate" gorm:"not null"`
	EndDate     *time.Time `json:"endDate"`

	EmployeeCount int64 `json:"employeeCount" gorm:"->;-:migration"`

	EmployeeProjects []EmployeeProject `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Project) TableName() string {
	return "projects"
}

// EmployeeProject - связь сотрудника с проектом (составной ключ)
type EmployeeProject struct {
	EmployeeID uuid.UUID `json:"employeeId" gorm:"type:uuid;primaryKey"`
	ProjectID  uuid.UUID `json:"projectId" gorm:"type:uuid;primaryKey;index"`

	Employee *Employee `json:"-" gorm:"foreignKey:EmployeeID"`
	Project  *Project  `json:"-" gorm:"foreignKey:ProjectID"`
}

// TableName задаёт имя таблицы для GORM
func (EmployeeProject) TableName() string {
	return "employee_projects"
}
