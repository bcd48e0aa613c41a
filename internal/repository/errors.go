package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workforce-api/internal/domain"
	"gorm.io/gorm"
)

// Коды ошибок PostgreSQL для нарушений ограничений
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError приводит ошибки хранилища к доменным видам ошибок
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", domain.ErrDuplicateValue, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", domain.ErrReferentialIntegrity, err)
		}
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", domain.ErrDuplicateValue, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", domain.ErrReferentialIntegrity, err)
	}
	return err
}
