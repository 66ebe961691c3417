package repository

import (
	"strconv"
	"strings"
)

// Dialect names the SQL flavour the repositories talk to.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Rebind rewrites ?-style placeholders into the dialect's native form.
// Queries are written once with ? and rebound for PostgreSQL ($1, $2, ...).
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 8)
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// GooseDialect is the dialect name pressly/goose expects.
func (d Dialect) GooseDialect() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}
