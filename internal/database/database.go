package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workforce-api/internal/config"
	"github.com/workforce-api/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open подключается к БД, повторяя попытки, пока сервер не станет доступен
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.ConnectAttempts, 1)
	for attempt := 1; attempt <= attempts; attempt++ {
		var db *gorm.DB
		db, err = gorm.Open(dialector, gormConfig())
		if err == nil {
			if err = ping(ctx, db); err == nil {
				return db, nil
			}
		}

		logger.Warn("database is not ready",
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

// OpenSQLite открывает SQLite по DSN без повторов (локальная разработка и тесты)
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqliteDialector(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case DriverSQLite:
		return sqliteDialector(cfg.Path + "?_foreign_keys=1"), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// uniqueIndexes - регистронезависимая уникальность среди неудалённых строк
var uniqueIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_departments_name ON departments (LOWER(name)) WHERE is_deleted = FALSE`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_employees_email ON employees (LOWER(email)) WHERE is_deleted = FALSE`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_projects_name ON projects (LOWER(name)) WHERE is_deleted = FALSE`,
}

// AutoMigrate создаёт схему средствами GORM. Используется для SQLite,
// для PostgreSQL схема ведётся миграциями goose.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Department{},
		&domain.Employee{},
		&domain.Project{},
		&domain.EmployeeProject{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range uniqueIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create unique index: %w", err)
		}
	}
	return nil
}
