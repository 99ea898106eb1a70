// Package postgres opens the read and write pools behind the repositories.
package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"nightlife/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

var ErrUnreachable = errors.New("postgres unreachable")

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New connects both pools and stops the process when either cannot be reached,
// since every domain service needs them.
func New(cfg *config.Config) *Connection {
	write, err := Open(cfg, "write", cfg.DB.Postgres.Write)
	if err != nil {
		log.Fatal().Err(err).Msg("write pool")
	}

	read, err := Open(cfg, "read", cfg.DB.Postgres.Read)
	if err != nil {
		log.Fatal().Err(err).Msg("read pool")
	}

	return &Connection{Read: read, Write: write}
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

// DSN renders node as a postgres URL. The configured prefix is prepended to the database name.
func DSN(cfg *config.Config, node config.PostgresNode) string {
	query := url.Values{}
	if node.SSLMode != "" {
		query.Set("sslmode", node.SSLMode)
	}

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + node.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Open dials node, retrying MaxRetry times with RetryWaitTime seconds between attempts.
func Open(cfg *config.Config, name string, node config.PostgresNode) (*sqlx.DB, error) {
	pg := cfg.DB.Postgres
	attempts := max(pg.MaxRetry, 1)
	logger := log.With().
		Str("name", name).
		Str("host", node.Host).
		Str("port", node.Port).
		Str("dbName", pg.Prefix+node.Name).
		Logger()

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect(driverName, DSN(cfg, node))
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifeSec) * time.Second)

			logger.Info().Msg("connected to database")

			return db, nil
		}

		lastErr = err

		logger.Error().Err(err).Int("attempt", attempt).Msg("failed connecting to database, retrying")

		if attempt < attempts {
			time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
		}
	}

	return nil, fmt.Errorf("%w: %s after %d attempts: %w", ErrUnreachable, name, attempts, lastErr)
}
