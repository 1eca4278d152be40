package query

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

// Config holds the PostgreSQL pool settings used by [Connect]. The tags
// follow the config package conventions.
type Config struct {
	URI             string        `env:"URI" yaml:"uri" json:"uri"`
	MaxConns        int32         `env:"MAX_CONNS" envDefault:"10" yaml:"max_conns" json:"max_conns"`
	MinConns        int32         `env:"MIN_CONNS" envDefault:"0" yaml:"min_conns" json:"min_conns"`
	MaxConnLifetime time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"1h" yaml:"max_conn_lifetime" json:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"30m" yaml:"max_conn_idle_time" json:"max_conn_idle_time"`
}

// DefaultConfig returns the values the envDefault tags describe, with
// no URI.
func DefaultConfig() Config {
	return Config{MaxConns: 10, MaxConnLifetime: time.Hour, MaxConnIdleTime: 30 * time.Minute}
}

// Validate checks the pool bounds. An empty URI is valid; it means no
// database is configured.
func (c Config) Validate() error {
	if c.MaxConns < 0 || c.MinConns < 0 {
		return sserr.New(sserr.CodeValidation, "query: connection limits must not be negative")
	}
	if c.MaxConns > 0 && c.MinConns > c.MaxConns {
		return sserr.Newf(sserr.CodeValidation,
			"query: min_conns %d exceeds max_conns %d", c.MinConns, c.MaxConns)
	}
	return nil
}

// Enabled reports whether a database URI is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.URI) != ""
}

// Connect opens a pgx pool for cfg, verifies it with a ping and wraps it
// in a [Runner].
func Connect(ctx context.Context, cfg Config) (*Runner, error) {
	if !cfg.Enabled() {
		return nil, sserr.New(sserr.CodeValidationRequired, "query: database uri is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URI)
	if err != nil {
		return nil, sserr.Wrap(err, sserr.CodeValidation, "query: failed to parse database uri")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, wrapError(err, "query: failed to create connection pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapError(err, "query: failed to connect to database")
	}

	return NewRunner(pool, databaseName(cfg.URI)), nil
}

func databaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
