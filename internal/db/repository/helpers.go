// Package repository implements domain repository interfaces using SQLite.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"group-manager/internal/domain"
)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound("resource not found")
	}
	if isUniqueViolation(err) {
		return domain.ErrConflict("resource already exists")
	}
	return err
}

// notFoundAs maps sql.ErrNoRows to a *NotFoundError carrying msg.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound("%s", msg)
	}
	return mapDBError(err)
}
