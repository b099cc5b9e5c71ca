// Package sqlkit holds the small pieces shared by the repositories: row locking and
// unique-violation detection for both supported dialects.
package sqlkit

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

// ForUpdate adds SELECT ... FOR UPDATE on PostgreSQL. SQLite serializes writers on
// the database lock, so the clause is omitted there.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() != "postgres" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// UniqueViolation reports whether err is a unique-constraint violation and returns the
// violated constraint: the index name on PostgreSQL, "table.column" on SQLite.
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return pgErr.ConstraintName, true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}

	const sqliteMarker = "UNIQUE constraint failed: "
	msg := err.Error()
	idx := strings.Index(msg, sqliteMarker)
	if idx < 0 {
		return "", false
	}
	detail := msg[idx+len(sqliteMarker):]
	if end := strings.IndexAny(detail, " ,"); end >= 0 {
		detail = detail[:end]
	}
	return detail, true
}
