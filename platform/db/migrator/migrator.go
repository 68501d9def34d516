package migrator

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

type Migrator struct {
	db   *sql.DB
	fsys fs.FS
}

// NewMigrator applies the *.sql files found at the root of fsys.
func NewMigrator(db *sql.DB, fsys fs.FS) *Migrator {
	return &Migrator{
		db:   db,
		fsys: fsys,
	}
}

func (m *Migrator) Up() error {
	goose.SetBaseFS(m.fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrator: set dialect: %w", err)
	}

	if err := goose.Up(m.db, "."); err != nil {
		return fmt.Errorf("migrator: up: %w", err)
	}
	return nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}
