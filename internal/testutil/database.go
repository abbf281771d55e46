// Package testutil reúne helpers compartilhados pelos testes.
package testutil

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rafabene/mediaranker/internal/infrastructure/persistence/postgres"
)

// NewDatabase abre um SQLite em memória isolado e aplica as migrações.
// Uma única conexão garante que todas as queries vejam o mesmo banco.
// O SQLite só aplica chaves estrangeiras com _foreign_keys ligado.
func NewDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), postgres.GormConfig(false))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := postgres.Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Close fecha a conexão subjacente
func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
