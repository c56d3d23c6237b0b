// Package gormstore implements the persistence gateway on GORM, for SQLite and PostgreSQL.
package gormstore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
)

// Store implements contracts.Store on a *gorm.DB.
type Store struct {
	db *gorm.DB
}

var _ contracts.Store = (*Store)(nil)

// New wraps an open database. The schema is not touched; call Migrate for that.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// OpenSQLite opens (creating if needed) the SQLite database at path and migrates it.
// SQLite allows one writer at a time, so the pool is limited to a single connection.
func OpenSQLite(ctx context.Context, path string, log zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: newLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return open(ctx, db)
}

// OpenPostgres connects with dsn and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string, log zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return open(ctx, db)
}

func open(ctx context.Context, db *gorm.DB) (*Store, error) {
	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates or updates every table and index. It is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(allRows...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ReadWrite runs fn in a database transaction, rolling back when fn fails.
func (s *Store) ReadWrite(ctx context.Context, fn func(ctx context.Context, tx contracts.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &readWriteTx{reader{db: tx}})
	})
}

// ReadOnly runs fn on a plain session.
func (s *Store) ReadOnly(ctx context.Context, fn func(ctx context.Context, tx contracts.ReadTx) error) error {
	return fn(ctx, &reader{db: s.db})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
