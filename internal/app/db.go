package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/tournament-ledger/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	dbSystemPostgres    = "postgresql"
	binaryResultParam   = "disable_prepared_binary_result"
	maxTracedQueryBytes = 512
)

// openDB opens a traced sqlx pool and reports pool stats as metrics.
func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := cfg.DBURL
	if cfg.DBDisablePreparedBinary {
		dsn = withBinaryResultDisabled(dsn)
	}
	opts := []otelsql.Option{
		otelsql.WithDBSystem(dbSystemPostgres),
		otelsql.WithQueryFormatter(traceQuery),
	}
	if name := databaseName(dsn); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	otelsql.ReportDBStatsMetrics(db.DB, opts...)
	return db, nil
}

// withBinaryResultDisabled turns off binary results for prepared statements,
// which pgbouncer in transaction mode cannot serve. An explicit setting in the
// DSN wins.
func withBinaryResultDisabled(dsn string) string {
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		q := u.Query()
		if !q.Has(binaryResultParam) {
			q.Set(binaryResultParam, "yes")
			u.RawQuery = q.Encode()
		}
		return u.String()
	}

	if _, ok := dsnField(dsn, binaryResultParam); ok {
		return dsn
	}
	return strings.TrimSpace(dsn + " " + binaryResultParam + "=yes")
}

// databaseName accepts both URL and key=value DSNs.
func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if strings.Contains(dsn, "://") {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return ""
		}
		dsn = converted
	}
	name, _ := dsnField(dsn, "dbname")
	return name
}

func dsnField(dsn, key string) (string, bool) {
	for _, token := range strings.Fields(dsn) {
		k, v, ok := strings.Cut(token, "=")
		if ok && k == key {
			return strings.Trim(v, `"'`), true
		}
	}
	return "", false
}

// traceQuery collapses whitespace and caps the statement recorded on spans.
func traceQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) <= maxTracedQueryBytes {
		return query
	}
	cut := maxTracedQueryBytes
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
