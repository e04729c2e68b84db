package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	preparedBinaryParam = "disable_prepared_binary_result"
	maxTracedQueryLen   = 512
)

// DSN sets disable_prepared_binary_result=yes on URL-style DSNs unless the
// caller already chose a value. Poolers in transaction mode need it.
func DSN(raw string, disablePreparedBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinary {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Has(preparedBinaryParam) {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// DatabaseName extracts the database from either a URL or a key=value DSN.
func DatabaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if parsed, err := url.Parse(dsn); err == nil && parsed.Scheme != "" {
		return strings.Trim(parsed.Path, "/ ")
	}
	for _, field := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// Open connects through the otel-instrumented driver and pings once.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(DatabaseName(dsn)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// traceQuery collapses whitespace so span attributes stay on one line.
func traceQuery(query string) string {
	flat := strings.Join(strings.Fields(query), " ")
	if len(flat) > maxTracedQueryLen {
		return flat[:maxTracedQueryLen] + "..."
	}
	return flat
}
