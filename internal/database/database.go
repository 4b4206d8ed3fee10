package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"vendordesk/internal/config"
)

// ApplicationName is reported to Postgres so vendordesk sessions show up in pg_stat_activity.
const ApplicationName = "vendordesk"

// ErrIncompleteConfig means a required connection field is empty.
var ErrIncompleteConfig = errors.New("incomplete database config")

var (
	sqlOpen = sql.Open

	// The database container often starts alongside the API, so the first
	// pings are retried before giving up.
	pingAttempts = 3
	pingBackoff  = 2 * time.Second
	pingTimeout  = 5 * time.Second
)

// BuildPostgresDSN renders c as a postgres:// URL for the pgx driver.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"DB_HOST", c.Host}, {"DB_PORT", c.Port}, {"DB_USER", c.User}, {"DB_NAME", c.Name},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s not set", ErrIncompleteConfig, strings.Join(missing, ", "))
	}

	u := &url.URL{Scheme: "postgres", Host: net.JoinHostPort(c.Host, c.Port), Path: c.Name}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}

	q := url.Values{}
	q.Set("application_name", ApplicationName)
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// NewPostgres opens a traced pool on the pgx stdlib driver and waits until it
// answers a ping. The caller owns the returned *sql.DB.
func NewPostgres(ctx context.Context, c config.DatabaseConfig, log zerolog.Logger) (*sql.DB, error) {
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
	tunePool(db, c)

	log = log.With().Str("component", "database").Str("host", c.Host).Str("db", c.Name).Logger()
	if err := waitReady(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info().Str("event", "db_connected").Int("max_open_conns", c.MaxOpenConns).Msg("database connected")
	return db, nil
}

func tunePool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}

// waitReady pings up to pingAttempts times. A done ctx stops it early.
func waitReady(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || attempt == pingAttempts {
			break
		}

		log.Warn().Err(err).Str("event", "db_ping_retry").Int("attempt", attempt).Msg("database not ready")
		select {
		case <-ctx.Done():
			return fmt.Errorf("db ping: %w", ctx.Err())
		case <-time.After(pingBackoff):
		}
	}
	return fmt.Errorf("db ping: %w", err)
}
