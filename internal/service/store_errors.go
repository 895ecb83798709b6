package service

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/lummy-consults/lummy-api/pkg/errors"
)

const (
	pqUniqueViolation    pq.ErrorCode  = "23505"
	pqIntegrityViolation pq.ErrorClass = "23"
)

// storeMessages carries the client-facing text for a translated store error.
type storeMessages struct {
	notFound string
	conflict string
	failure  string
}

// translateStoreError maps driver errors onto the API error taxonomy.
func translateStoreError(err error, msgs storeMessages) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, msgs.notFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pqUniqueViolation:
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, orDefault(msgs.conflict, appErrors.ErrConflict.Message))
		case pqErr.Code.Class() == pqIntegrityViolation:
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "request violates a data constraint")
		}
	}

	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, orDefault(msgs.failure, appErrors.ErrUpstream.Message))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
