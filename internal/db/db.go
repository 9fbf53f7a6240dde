package db

import (
	"context"
	"fmt"

	"cargo-service/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Database представляет соединение с базой данных
type Database struct {
	*sqlx.DB
}

// NewDatabase создает новое соединение с базой данных
func NewDatabase(ctx context.Context, config *config.DatabaseConfig) (*Database, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{db}, nil
}

// schema создает таблицу отправок. Уникальность номера AWB
// и допустимые значения полей обеспечивает сама база.
const schema = `
CREATE TABLE IF NOT EXISTS cargo (
	id               UUID PRIMARY KEY,
	awb_number       VARCHAR(12) NOT NULL,
	origin           CHAR(3) NOT NULL CHECK (origin ~ '^[A-Z]{3}$'),
	destination      CHAR(3) NOT NULL CHECK (destination ~ '^[A-Z]{3}$'),
	weight           TEXT NOT NULL DEFAULT '',
	pieces           INTEGER NOT NULL CHECK (pieces >= 1),
	shipper          TEXT NOT NULL DEFAULT '',
	consignee        TEXT NOT NULL DEFAULT '',
	special_handling TEXT[] NOT NULL DEFAULT '{}',
	status           VARCHAR(16) NOT NULL DEFAULT 'Awaiting'
		CHECK (status IN ('Awaiting', 'In Progress', 'Done', 'Cancelled')),
	description      TEXT NOT NULL DEFAULT '',
	deadline         TIMESTAMPTZ,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS cargo_awb_number_key ON cargo (awb_number);
CREATE INDEX IF NOT EXISTS cargo_status_idx ON cargo (status);
`

// EnsureSchema создает таблицы и индексы, если их еще нет
func (d *Database) EnsureSchema(ctx context.Context) error {
	if _, err := d.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
