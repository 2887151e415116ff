package bom

import (
	"context"

	"github.com/craftshop/backend/internal/domain/bom"
)

// TransactionScope provides transactional access to BOM repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Approval relies on this: demoting the previously active
// BOM and activating the new one must never be observable half-done.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to BOM repositories within
// a transaction
type TransactionalRepositories interface {
	// BOMRepo returns the BOM repository scoped to the current transaction
	BOMRepo() bom.Repository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests and for backends without transaction support.
type NoOpTransactionScope struct {
	bomRepo bom.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repository
func NewNoOpTransactionScope(bomRepo bom.Repository) *NoOpTransactionScope {
	return &NoOpTransactionScope{bomRepo: bomRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BOMRepo returns the BOM repository
func (s *NoOpTransactionScope) BOMRepo() bom.Repository {
	return s.bomRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
