// Package database opens the optional Postgres pool that backs the outputs
// table.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"pdfapi/internal/config"
)

// ApplicationName identifies the service's sessions in pg_stat_activity.
const ApplicationName = "pdfapi"

const pingTimeout = 5 * time.Second

var sqlOpen = sql.Open

// BuildPostgresDSN renders c as a postgres:// URL, for example
// postgres://pdf:secret@db:5432/pdfapi?application_name=pdfapi&sslmode=disable.
// IPv6 hosts are bracketed.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"DB_HOST", c.Host},
		{"DB_PORT", c.Port},
		{"DB_USER", c.User},
		{"DB_NAME", c.Name},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("invalid database config: missing %s", strings.Join(missing, ", "))
	}

	userinfo := url.User(c.User)
	if c.Password != "" {
		userinfo = url.UserPassword(c.User, c.Password)
	}

	params := url.Values{}
	params.Set("application_name", ApplicationName)
	if c.SSLMode != "" {
		params.Set("sslmode", c.SSLMode)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     userinfo,
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     c.Name,
		RawQuery: params.Encode(),
	}
	return dsn.String(), nil
}

// NewPostgres connects to the outputs database through pgx, traced by otelsql,
// and fails unless the server answers a ping within five seconds.
func NewPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL, semconv.DBName(c.Name)),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	configurePool(db, c)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

// configurePool applies the non-zero pool limits of c. The idle limit never
// exceeds the open limit.
func configurePool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if idle := c.MaxIdleConns; idle > 0 {
		if c.MaxOpenConns > 0 {
			idle = min(idle, c.MaxOpenConns)
		}
		db.SetMaxIdleConns(idle)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}
