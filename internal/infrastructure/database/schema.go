package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema provisions the chat tables if they are missing. Every statement is
// idempotent so the function can run on every startup.
//
// The conversation row carries the ordered participant pair (user_lo < user_hi)
// with a UNIQUE constraint; that constraint is what keeps two concurrent sends
// between the same pair from creating two conversations.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE SCHEMA IF NOT EXISTS chat`,
		`CREATE TABLE IF NOT EXISTS chat.app_user (
			id              TEXT PRIMARY KEY,
			fullname        TEXT NOT NULL,
			profile_picture TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS chat.conversation (
			id         BIGSERIAL PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			user_lo    TEXT NOT NULL REFERENCES chat.app_user(id),
			user_hi    TEXT NOT NULL REFERENCES chat.app_user(id),
			CONSTRAINT conversation_pair_ordered CHECK (user_lo < user_hi),
			CONSTRAINT conversation_pair_unique UNIQUE (user_lo, user_hi)
		)`,
		`CREATE TABLE IF NOT EXISTS chat.participant (
			conversation_id BIGINT NOT NULL REFERENCES chat.conversation(id),
			user_id         TEXT NOT NULL REFERENCES chat.app_user(id),
			PRIMARY KEY (conversation_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS chat.message (
			id              BIGSERIAL PRIMARY KEY,
			conversation_id BIGINT NOT NULL REFERENCES chat.conversation(id),
			sender_id       TEXT NOT NULL REFERENCES chat.app_user(id),
			content         TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS message_conversation_created_idx
			ON chat.message (conversation_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS chat.chat_activity (
			id              BIGSERIAL PRIMARY KEY,
			user_id         TEXT NOT NULL REFERENCES chat.app_user(id),
			conversation_id BIGINT NOT NULL REFERENCES chat.conversation(id),
			last_read       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: ensure schema: %w", err)
		}
	}
	return nil
}
