package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"doctor-ai/internal/domain"
)

type TurnRepository interface {
	Append(ctx context.Context, turn domain.ConversationTurn) error
	ListBySessionID(ctx context.Context, sessionID string) ([]domain.ConversationTurn, error)
	ListSessions(ctx context.Context) ([]domain.SessionInfo, error)
}

type PgTurnRepository struct {
	pool *pgxpool.Pool
}

func NewPgTurnRepository(pool *pgxpool.Pool) *PgTurnRepository {
	return &PgTurnRepository{pool: pool}
}

func (r *PgTurnRepository) Append(ctx context.Context, turn domain.ConversationTurn) error {
	const query = `
		INSERT INTO chat_turns (id, session_id, sender, text, tag, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		turn.ID,
		turn.SessionID,
		turn.Sender,
		turn.Text,
		turn.Tag,
		turn.CreatedAt,
	)
	return err
}

func (r *PgTurnRepository) ListBySessionID(ctx context.Context, sessionID string) ([]domain.ConversationTurn, error) {
	const query = `
		SELECT id, session_id, sender, text, tag, created_at
		FROM chat_turns
		WHERE session_id = $1
		ORDER BY created_at ASC, seq ASC
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []domain.ConversationTurn
	for rows.Next() {
		var t domain.ConversationTurn
		err = rows.Scan(
			&t.ID,
			&t.SessionID,
			&t.Sender,
			&t.Text,
			&t.Tag,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return turns, nil
}

func (r *PgTurnRepository) ListSessions(ctx context.Context) ([]domain.SessionInfo, error) {
	const query = `
		SELECT session_id, MIN(created_at) AS created_at
		FROM chat_turns
		GROUP BY session_id
		ORDER BY MIN(created_at) DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.SessionInfo
	for rows.Next() {
		var s domain.SessionInfo
		if err = rows.Scan(&s.SessionID, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
