package db

import (
	"context"
	"fmt"
)

// Ids are assigned by the application (gap filling), not by sequences.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGINT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	nickname      TEXT NOT NULL UNIQUE,
	is_admin      BOOLEAN NOT NULL DEFAULT false,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS teams (
	id         BIGINT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	admin_id   BIGINT NOT NULL REFERENCES users(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS memberships (
	team_id    BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
	user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (team_id, user_id)
);

CREATE TABLE IF NOT EXISTS team_messages (
	id          BIGINT PRIMARY KEY,
	team_id     BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
	author_id   BIGINT NOT NULL,
	author_name TEXT NOT NULL,
	content     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_team_messages_team_created
	ON team_messages (team_id, created_at DESC);

CREATE TABLE IF NOT EXISTS direct_messages (
	id            BIGINT PRIMARY KEY,
	sender_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	receiver_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	sender_name   TEXT NOT NULL,
	receiver_name TEXT NOT NULL,
	content       TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_direct_messages_sender ON direct_messages (sender_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_direct_messages_receiver ON direct_messages (receiver_id, created_at DESC);
`

// Migrate creates any missing tables and indexes.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	db.logger.Info("database schema ensured")
	return nil
}
