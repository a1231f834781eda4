package postgres

import (
	"database/sql"
	"strconv"
	"strings"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// isBindParameterMismatch detects the 08P01 protocol violation pgbouncer
// raises in transaction pooling mode when a multi-parameter extended query
// hits a stale prepared statement.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "08P01") ||
		(strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "parameters"))
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "26000") ||
		strings.Contains(msg, "unnamed prepared statement does not exist")
}

// quoteLiteral escapes a value for inline SQL. Only used by the last-resort
// literal fallback queries that bypass the extended protocol entirely.
func quoteLiteral(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func nullStringToInt64(v sql.NullString) int64 {
	if !v.Valid {
		return 0
	}
	out, err := strconv.ParseInt(strings.TrimSpace(v.String), 10, 64)
	if err != nil {
		return 0
	}
	return out
}
