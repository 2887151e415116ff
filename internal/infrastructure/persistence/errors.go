package persistence

import (
	"errors"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/lib/pq"
)

// Index names whose unique violations signal a concurrent writer rather than
// bad input. idx_boms_single_active is the partial index backing the
// one-active-BOM-per-product invariant: when two transactions race past the
// status guards, the loser's promote blocks on this index and fails at commit
// with SQLSTATE 23505.
const (
	indexSingleActiveBOM = "idx_boms_single_active"
	indexBOMLineNumber   = "idx_bom_lines_bom_line_number"

	uniqueViolationCode = pq.ErrorCode("23505")
)

// translateUniqueViolation maps Postgres unique violations onto the shared
// error taxonomy. Violations of the concurrency-backstop indexes become
// ErrConcurrencyConflict so the losing request surfaces a retryable 409;
// plain duplicates become ErrAlreadyExists. Other errors pass through.
func translateUniqueViolation(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolationCode {
		return err
	}

	switch pqErr.Constraint {
	case indexSingleActiveBOM, indexBOMLineNumber:
		return shared.ErrConcurrencyConflict
	default:
		return shared.ErrAlreadyExists
	}
}
