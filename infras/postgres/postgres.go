package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"hotel/config"
	"hotel/helper"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 20
	postgresConnMaxLifetime   = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// endpoint is one side of the read/write pool pair.
type endpoint struct {
	name     string
	host     string
	port     string
	username string
	password string
	dbName   string
	sslMode  string
	timezone string
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	if pg.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Error().Err(err).Msg("Automatic migration failed")
		}
	}

	write := endpoint{
		name:     "write",
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		username: pg.Write.Username,
		password: pg.Write.Password,
		dbName:   getDBName(cfg, pg.Write.Name),
		sslMode:  pg.Write.SSLMode,
		timezone: pg.Write.Timezone,
	}

	read := endpoint{
		name:     "read",
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		username: pg.Read.Username,
		password: pg.Read.Password,
		dbName:   getDBName(cfg, pg.Read.Name),
		sslMode:  pg.Read.SSLMode,
		timezone: pg.Read.Timezone,
	}

	// A missing replica falls back to the primary.
	if read.host == "" {
		read = write
		read.name = "read"
	}

	return &Connection{
		Read:  connect(read, pg.MaxRetry, pg.RetryWaitTime),
		Write: connect(write, pg.MaxRetry, pg.RetryWaitTime),
	}
}

func getDBName(cfg *config.Config, baseName string) string {
	if cfg.DB.Postgres.Prefix != "" {
		return cfg.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func (e endpoint) dsn() string {
	query := url.Values{}
	query.Set("sslmode", e.sslMode)

	if e.timezone != "" {
		query.Set("timezone", e.timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     e.dbName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// connect retries until the database answers or maxRetry is exhausted.
func connect(e endpoint, maxRetry, waitTime int) *sqlx.DB {
	logger := log.With().
		Str("name", e.name).
		Str("host", e.host).
		Str("port", e.port).
		Str("dbName", e.dbName).
		Logger()

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", e.dsn())
		if err == nil {
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			logger.Info().Msg("Connected to database")

			return sqlDB
		}

		logger.Error().Err(err).Int("attempt", retry+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	logger.Error().Int("attempts", maxRetry).Msg("Giving up connecting to database")

	return nil
}
