package persistence

import (
	"context"

	appbom "github.com/craftshop/backend/internal/application/bom"
	"github.com/craftshop/backend/internal/domain/bom"
	"gorm.io/gorm"
)

// GormBOMTransactionScope implements the BOM TransactionScope using GORM
// transactions. Approval's demote-then-activate pair and the line-mutation
// plus rollup writes run through this so they commit or roll back as one.
type GormBOMTransactionScope struct {
	db *gorm.DB
}

// NewGormBOMTransactionScope creates a new GormBOMTransactionScope
func NewGormBOMTransactionScope(db *gorm.DB) *GormBOMTransactionScope {
	return &GormBOMTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormBOMTransactionScope) Execute(ctx context.Context, fn func(repos appbom.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormBOMTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormBOMTransactionalRepositories provides transaction-scoped repositories
type gormBOMTransactionalRepositories struct {
	tx *gorm.DB
}

// BOMRepo returns the BOM repository scoped to the current transaction
func (r *gormBOMTransactionalRepositories) BOMRepo() bom.Repository {
	return NewGormBOMRepository(r.tx)
}

// Ensure GormBOMTransactionScope implements TransactionScope
var _ appbom.TransactionScope = (*GormBOMTransactionScope)(nil)

// Ensure gormBOMTransactionalRepositories implements TransactionalRepositories
var _ appbom.TransactionalRepositories = (*gormBOMTransactionalRepositories)(nil)
