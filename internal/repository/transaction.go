package repository

import (
	"context"
	"errors"
)

// ExecuteInTransaction открывает транзакцию, выполняет операцию и фиксирует её.
// При ошибке или панике внутри операции транзакция откатывается.
func ExecuteInTransaction[T any](ctx context.Context, uow UnitOfWork, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if err := uow.BeginTransaction(ctx); err != nil {
		return zero, err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = uow.RollbackTransaction(ctx)
			panic(p)
		}
	}()

	result, err := op(ctx)
	if err != nil {
		if rErr := uow.RollbackTransaction(ctx); rErr != nil {
			return zero, errors.Join(err, rErr)
		}
		return zero, err
	}

	// CommitTransaction сам откатывает транзакцию при ошибке
	if err := uow.CommitTransaction(ctx); err != nil {
		return zero, err
	}
	return result, nil
}

// InTransaction - вариант ExecuteInTransaction для операций без результата
func InTransaction(ctx context.Context, uow UnitOfWork, op func(ctx context.Context) error) error {
	_, err := ExecuteInTransaction(ctx, uow, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
