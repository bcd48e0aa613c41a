// Package testutil содержит общие хелперы тестов: БД SQLite в памяти и фабрики сущностей.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/workforce-api/internal/database"
	"github.com/workforce-api/internal/domain"
	"github.com/workforce-api/internal/repository"
	"gorm.io/gorm"
)

// DiscardLogger возвращает логгер, который ничего не пишет
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewDB создаёт изолированную БД SQLite в памяти со схемой
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := database.OpenSQLite(dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// одно соединение: иначе каждое соединение увидит свою БД в памяти
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// NewFactory создаёт БД и фабрику UnitOfWork поверх неё
func NewFactory(t testing.TB) (repository.UnitOfWorkFactory, *gorm.DB) {
	t.Helper()
	db := NewDB(t)
	return repository.NewUnitOfWorkFactory(db, DiscardLogger()), db
}

// Date возвращает полночь UTC заданного дня
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Ptr возвращает указатель на значение
func Ptr[T any](v T) *T {
	return &v
}

// InsertDepartment сохраняет отдел напрямую, минуя сервисы
func InsertDepartment(t testing.TB, db *gorm.DB, name string) domain.Department {
	t.Helper()
	dept := domain.Department{BaseEntity: domain.BaseEntity{ID: uuid.New()}, Name: name}
	require.NoError(t, db.Create(&dept).Error)
	return dept
}

// InsertEmployee сохраняет сотрудника отдела напрямую
func InsertEmployee(t testing.TB, db *gorm.DB, departmentID uuid.UUID, firstName, lastName string) domain.Employee {
	t.Helper()
	emp := domain.Employee{
		BaseEntity:   domain.BaseEntity{ID: uuid.New()},
		FirstName:    firstName,
		LastName:     lastName,
		Email:        fmt.Sprintf("%s.%s@company.com", firstName, lastName),
		Status:       domain.EmployeeStatusActive,
		HireDate:     Date(2022, time.March, 1),
		DepartmentID: departmentID,
	}
	require.NoError(t, db.Create(&emp).Error)
	return emp
}

// InsertProject сохраняет проект напрямую
func InsertProject(t testing.TB, db *gorm.DB, name string) domain.Project {
	t.Helper()
	project := domain.Project{
		BaseEntity: domain.BaseEntity{ID: uuid.New()},
		Name:       name,
		StartDate:  Date(2024, time.January, 1),
	}
	require.NoError(t, db.Create(&project).Error)
	return project
}

// Assign связывает сотрудника с проектом напрямую
func Assign(t testing.TB, db *gorm.DB, employeeID, projectID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&domain.EmployeeProject{EmployeeID: employeeID, ProjectID: projectID}).Error)
}

// MarkDeleted мягко удаляет строку таблицы напрямую
func MarkDeleted(t testing.TB, db *gorm.DB, table string, id uuid.UUID) {
	t.Helper()
	err := db.Table(table).Where("id = ?", id).Updates(map[string]any{
		"is_deleted": true,
		"deleted_at": time.Now().UTC(),
	}).Error
	require.NoError(t, err)
}

// RawRow - состояние мягкого удаления строки без фильтра
type RawRow struct {
	IsDeleted bool
	DeletedAt *time.Time
}

// LoadRaw читает флаги удаления строки, минуя фильтр мягкого удаления
func LoadRaw(t testing.TB, db *gorm.DB, table string, id uuid.UUID) (RawRow, bool) {
	t.Helper()
	var rows []RawRow
	err := db.WithContext(context.Background()).
		Table(table).
		Select("is_deleted", "deleted_at").
		Where("id = ?", id).
		Scan(&rows).Error
	require.NoError(t, err)
	if len(rows) == 0 {
		return RawRow{}, false
	}
	return rows[0], true
}
