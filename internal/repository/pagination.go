package repository

import (
	"fmt"

	"github.com/workforce-api/internal/dto"
	"gorm.io/gorm"
)

// Paginate считает строки отфильтрованного запроса, выбирает одну страницу
// и проецирует её в ответ. Scopes применяются только к выборке страницы
// (подсчёты, сортировка, Preload) и не влияют на totalCount.
// Границы pageNumber и pageSize здесь не проверяются.
func Paginate[T, R any](query *gorm.DB, params dto.PaginationParams, project func(T) R, scopes ...Scope) (dto.PaginatedResult[R], error) {
	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return dto.PaginatedResult[R]{}, fmt.Errorf("count rows: %w", err)
	}

	var rows []T
	err := base.Scopes(scopes...).
		Offset((params.PageNumber - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&rows).Error
	if err != nil {
		return dto.PaginatedResult[R]{}, fmt.Errorf("load page: %w", err)
	}

	items := make([]R, 0, len(rows))
	for _, row := range rows {
		items = append(items, project(row))
	}
	return dto.NewPaginatedResult(items, int(total), params.PageNumber, params.PageSize), nil
}
