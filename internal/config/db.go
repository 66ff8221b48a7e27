package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" required:"true"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"paroquia"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// DSN renders the connection URL understood by pgx
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// ConnectDB establishes a connection pool to PostgreSQL
func ConnectDB(ctx context.Context, cfg DBConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DSN())
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		log.Warn().Err(err).Int("attempt", i+1).Int("max", maxRetries).Dur("retry_in", retryInterval).
			Msg("failed to connect to database")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// Schema is the DDL applied by AutoMigrate; every statement is idempotent
const Schema = `
CREATE TABLE IF NOT EXISTS usuarios (
	id SERIAL PRIMARY KEY,
	nome VARCHAR(150) NOT NULL,
	email VARCHAR(150) NOT NULL UNIQUE,
	senha_hash TEXT NOT NULL,
	telefone VARCHAR(13),
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	email_verificado BOOLEAN NOT NULL DEFAULT FALSE,
	codigo_verificacao VARCHAR(6),
	criado_em TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sessoes (
	id TEXT PRIMARY KEY,
	usuario_id INTEGER NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
	expira_em TIMESTAMP WITH TIME ZONE NOT NULL,
	criado_em TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS eventos (
	id SERIAL PRIMARY KEY,
	titulo VARCHAR(45) NOT NULL,
	tipo VARCHAR(45) NOT NULL,
	local VARCHAR(45) NOT NULL,
	tipo_vagas VARCHAR(45) NOT NULL DEFAULT 'aberta' CHECK (tipo_vagas IN ('aberta', 'limitada')),
	numero_vagas INTEGER CHECK (numero_vagas IS NULL OR numero_vagas >= 0),
	data DATE NOT NULL,
	horario TIME NOT NULL,
	descricao TEXT,
	criado_por INTEGER REFERENCES usuarios(id) ON DELETE SET NULL,
	CHECK (tipo_vagas <> 'limitada' OR numero_vagas IS NOT NULL)
);

CREATE TABLE IF NOT EXISTS inscricoes_evento (
	id SERIAL PRIMARY KEY,
	nome VARCHAR(150) NOT NULL,
	telefone VARCHAR(13) NOT NULL,
	evento_id INTEGER NOT NULL REFERENCES eventos(id) ON DELETE CASCADE,
	criado_em TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS agenda (
	id SERIAL PRIMARY KEY,
	titulo VARCHAR(60) NOT NULL,
	tipo VARCHAR(45) NOT NULL DEFAULT '',
	data DATE,
	local VARCHAR(45) NOT NULL DEFAULT '',
	horario TIME NOT NULL,
	descricao TEXT,
	is_public BOOLEAN NOT NULL DEFAULT FALSE,
	dia_semana VARCHAR(45),
	criado_por INTEGER REFERENCES usuarios(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS avisos (
	id SERIAL PRIMARY KEY,
	titulo VARCHAR(100) NOT NULL,
	categoria VARCHAR(45) NOT NULL,
	url VARCHAR(250),
	descricao TEXT,
	data DATE NOT NULL,
	criado_por INTEGER REFERENCES usuarios(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_sessoes_usuario_id ON sessoes(usuario_id);
CREATE INDEX IF NOT EXISTS idx_inscricoes_evento_evento_id ON inscricoes_evento(evento_id);
CREATE INDEX IF NOT EXISTS idx_eventos_criado_por ON eventos(criado_por);
CREATE INDEX IF NOT EXISTS idx_agenda_criado_por ON agenda(criado_por);
CREATE INDEX IF NOT EXISTS idx_agenda_is_public ON agenda(is_public);
CREATE INDEX IF NOT EXISTS idx_avisos_criado_por ON avisos(criado_por);
`

// Execer is the subset of the pool AutoMigrate needs
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(ctx context.Context, db Execer, log zerolog.Logger) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Info().Msg("AutoMigrate applied successfully")
	return nil
}
