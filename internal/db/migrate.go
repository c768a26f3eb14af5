package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// chat_turns es un log de solo-append: seq desempata turnos con el mismo
// created_at para que la lectura devuelva siempre el orden de inserción.
const createChatTurns = `
CREATE TABLE IF NOT EXISTS chat_turns (
	seq BIGSERIAL PRIMARY KEY,
	id UUID NOT NULL,
	session_id TEXT NOT NULL,
	sender TEXT NOT NULL,
	text TEXT NOT NULL,
	tag TEXT NOT NULL DEFAULT 'text',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_turns_session ON chat_turns (session_id, created_at, seq);
`

// Migrate crea las tablas requeridas si no existen.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createChatTurns); err != nil {
		return fmt.Errorf("migrate chat_turns: %w", err)
	}
	return nil
}
