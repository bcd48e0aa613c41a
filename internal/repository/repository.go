package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/workforce-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope - составной фрагмент запроса GORM
type Scope = func(*gorm.DB) *gorm.DB

// Repository - обобщённый репозиторий сущности с мягким удалением.
// Add, Update и SoftDelete только накапливают изменения в UnitOfWork.
type Repository[T domain.Entity] struct {
	uow   *unitOfWork
	table string
}

func newRepository[T domain.Entity](uow *unitOfWork) *Repository[T] {
	var zero T
	return &Repository[T]{uow: uow, table: zero.TableName()}
}

// Column возвращает имя колонки с префиксом таблицы
func (r *Repository[T]) Column(name string) string {
	return r.table + "." + name
}

// Add ставит вставку в очередь; идентификатор генерируется, если не задан
func (r *Repository[T]) Add(entity *T) *T {
	if e, ok := any(entity).(interface{ EnsureID() }); ok {
		e.EnsureID()
	}
	r.uow.stage(func(db *gorm.DB) *gorm.DB {
		return db.Omit(clause.Associations).Create(entity)
	})
	return entity
}

// Update ставит обновление всех колонок сущности в очередь
func (r *Repository[T]) Update(entity *T) {
	r.uow.stage(func(db *gorm.DB) *gorm.DB {
		return db.Omit(clause.Associations).Save(entity)
	})
}

// SoftDelete помечает сущность удалённой. Отсутствие сущности не ошибка:
// проверку существования выполняет вызывающий сервис.
func (r *Repository[T]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	var entity T
	err := r.Query(ctx).Where(r.Column("id")+" = ?", id).Take(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load %s for soft delete: %w", r.table, err)
	}

	deletedAt := time.Now().UTC()
	r.uow.stage(func(db *gorm.DB) *gorm.DB {
		return db.Table(r.table).
			Where("id = ?", entity.GetID()).
			Updates(map[string]any{
				"is_deleted": true,
				"deleted_at": deletedAt,
			})
	})
	return nil
}

// Exists проверяет наличие неудалённой сущности
func (r *Repository[T]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.Any(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where(r.Column("id")+" = ?", id)
	})
}

// Any проверяет, есть ли неудалённые сущности, удовлетворяющие условиям
func (r *Repository[T]) Any(ctx context.Context, predicates ...Scope) (bool, error) {
	var count int64
	err := r.Query(ctx).Scopes(predicates...).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check %s existence: %w", r.table, err)
	}
	return count > 0, nil
}

// Query возвращает составной запрос, отфильтрованный по is_deleted = false
func (r *Repository[T]) Query(ctx context.Context) *gorm.DB {
	return r.uow.conn(ctx).Model(new(T)).Scopes(NotDeleted(r.table))
}

// QueryWithDeleted возвращает запрос без фильтра мягкого удаления
func (r *Repository[T]) QueryWithDeleted(ctx context.Context) *gorm.DB {
	return r.uow.conn(ctx).Model(new(T))
}

// NotDeleted - явный фильтр мягкого удаления для таблицы
func NotDeleted(table string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".is_deleted = ?", false)
	}
}
