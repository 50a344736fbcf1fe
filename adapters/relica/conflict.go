package relica

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// MySQL duplicate-key error number and PostgreSQL unique-violation class.
const (
	mysqlErrDupEntry  = 1062
	pqUniqueViolation = "23505"
)

// uniqueViolation inspects a driver error and reports whether it is a
// unique-constraint violation, and if so, which constraint was hit.
// The constraint string is driver-specific: the violated column list
// (SQLite), the key name (MySQL) or the constraint name (PostgreSQL).
func uniqueViolation(err error) (constraint string, ok bool) {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		// SQLITE_CONSTRAINT also covers NOT NULL and CHECK failures;
		// only the unique flavors count.
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return sqliteErr.Error(), true
		}
		return "", false
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if mysqlErr.Number == mysqlErrDupEntry {
			return mysqlErr.Message, true
		}
		return "", false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) == pqUniqueViolation {
			return pqErr.Constraint, true
		}
		return "", false
	}

	return "", false
}

// isTokenConstraint reports whether a unique violation hit the token
// primary key rather than the (owner_id, topic_name) index.
//
// SQLite names the violated column ("notifier_topic.token"), MySQL reports
// key 'PRIMARY' and PostgreSQL reports the "notifier_topic_pkey" constraint.
func isTokenConstraint(constraint string) bool {
	c := strings.ToLower(constraint)
	return strings.Contains(c, "token") ||
		strings.Contains(c, "primary") ||
		strings.Contains(c, "pkey")
}
