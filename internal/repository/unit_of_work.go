package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/workforce-api/internal/domain"
	"gorm.io/gorm"
)

var (
	ErrTransactionActive = errors.New("a transaction is already active, commit or rollback the current transaction before starting a new one")
	ErrNoTransaction     = errors.New("no active transaction")
	ErrUnitOfWorkClosed  = errors.New("unit of work is closed")
)

// UnitOfWork объединяет репозитории под одной границей транзакции.
// Изменения, накопленные репозиториями, записываются только через
// SaveChanges или CommitTransaction, и только внутри активной транзакции.
type UnitOfWork interface {
	Employees() *Repository[domain.Employee]
	Departments() *Repository[domain.Department]
	Projects() *Repository[domain.Project]
	Assignments() *AssignmentRepository

	BeginTransaction(ctx context.Context) error
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
	SaveChanges(ctx context.Context) (int, error)
	InTransaction() bool
	Close() error
}

// UnitOfWorkFactory создаёт новый UnitOfWork на каждый вызов
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

type unitOfWorkFactory struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUnitOfWorkFactory создаёт фабрику поверх пула соединений
func NewUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger) UnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &unitOfWorkFactory{db: db, logger: logger}
}

func (f *unitOfWorkFactory) New() UnitOfWork {
	return NewUnitOfWork(f.db, f.logger)
}

// stagedChange - отложенная запись, выполняемая при SaveChanges
type stagedChange func(db *gorm.DB) *gorm.DB

type unitOfWork struct {
	db     *gorm.DB
	logger *slog.Logger

	mu      sync.Mutex
	tx      *gorm.DB
	pending []stagedChange
	closed  bool

	employees   *Repository[domain.Employee]
	departments *Repository[domain.Department]
	projects    *Repository[domain.Project]
	assignments *AssignmentRepository
}

// NewUnitOfWork создаёт новый экземпляр UnitOfWork
func NewUnitOfWork(db *gorm.DB, logger *slog.Logger) UnitOfWork {
	if logger == nil {
		logger = slog.Default()
	}
	return &unitOfWork{db: db, logger: logger}
}

func (u *unitOfWork) Employees() *Repository[domain.Employee] {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.employees == nil {
		u.employees = newRepository[domain.Employee](u)
	}
	return u.employees
}

func (u *unitOfWork) Departments() *Repository[domain.Department] {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.departments == nil {
		u.departments = newRepository[domain.Department](u)
	}
	return u.departments
}

func (u *unitOfWork) Projects() *Repository[domain.Project] {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.projects == nil {
		u.projects = newRepository[domain.Project](u)
	}
	return u.projects
}

func (u *unitOfWork) Assignments() *AssignmentRepository {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.assignments == nil {
		u.assignments = &AssignmentRepository{uow: u}
	}
	return u.assignments
}

func (u *unitOfWork) BeginTransaction(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return ErrUnitOfWorkClosed
	}
	if u.tx != nil {
		return ErrTransactionActive
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}
	u.tx = tx
	return nil
}

// CommitTransaction записывает накопленные изменения и фиксирует транзакцию.
// При любой ошибке транзакция откатывается; состояние транзакции
// сбрасывается во всех случаях.
func (u *unitOfWork) CommitTransaction(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx == nil {
		return ErrNoTransaction
	}

	tx := u.tx
	defer func() {
		u.tx = nil
		u.pending = nil
	}()

	if _, err := u.flush(ctx, tx); err != nil {
		return errors.Join(err, u.rollback(tx))
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Join(translateError(fmt.Errorf("commit transaction: %w", err)), u.rollback(tx))
	}
	return nil
}

func (u *unitOfWork) RollbackTransaction(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx == nil {
		return ErrNoTransaction
	}

	tx := u.tx
	u.tx = nil
	u.pending = nil
	return u.rollback(tx)
}

// SaveChanges выполняет накопленные изменения в текущей транзакции
func (u *unitOfWork) SaveChanges(ctx context.Context) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx == nil {
		return 0, fmt.Errorf("cannot save changes: %w", ErrNoTransaction)
	}
	return u.flush(ctx, u.tx)
}

func (u *unitOfWork) InTransaction() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.tx != nil
}

// Close откатывает незавершённую транзакцию и освобождает UnitOfWork
func (u *unitOfWork) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return nil
	}
	u.closed = true
	u.pending = nil

	if u.tx == nil {
		return nil
	}

	u.logger.Warn("unit of work closed with an active transaction, rolling back")
	tx := u.tx
	u.tx = nil
	return u.rollback(tx)
}

// flush вызывается под u.mu
func (u *unitOfWork) flush(ctx context.Context, tx *gorm.DB) (int, error) {
	changes := u.pending
	u.pending = nil

	affected := 0
	for _, change := range changes {
		result := change(tx.WithContext(ctx))
		if result.Error != nil {
			return affected, translateError(result.Error)
		}
		affected += int(result.RowsAffected)
	}
	return affected, nil
}

func (u *unitOfWork) rollback(tx *gorm.DB) error {
	u.logger.Warn("rolling back transaction")
	if err := tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) stage(change stagedChange) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = append(u.pending, change)
}

// conn возвращает транзакцию, если она активна, иначе пул
func (u *unitOfWork) conn(ctx context.Context) *gorm.DB {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return u.tx.WithContext(ctx)
	}
	return u.db.WithContext(ctx)
}
