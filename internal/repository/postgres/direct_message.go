package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lalith-99/lockerroom/internal/db"
	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

var directMessageColumns = []string{"id", "sender_id", "receiver_id", "sender_name", "receiver_name", "content", "created_at", "updated_at"}

const directMessageReturning = `id, sender_id, receiver_id, sender_name, receiver_name, content, created_at, updated_at`

type DirectMessageStore struct {
	pool db.Pool
	tx   db.Transactor
}

func NewDirectMessageStore(pool db.Pool, tx db.Transactor) *DirectMessageStore {
	return &DirectMessageStore{pool: pool, tx: tx}
}

func scanDirectMessage(row scanner) (*models.DirectMessage, error) {
	var m models.DirectMessage
	if err := row.Scan(
		&m.ID,
		&m.SenderID,
		&m.ReceiverID,
		&m.SenderName,
		&m.ReceiverName,
		&m.Content,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create copies both nicknames onto the row as they are right now.
func (s *DirectMessageStore) Create(ctx context.Context, sender, receiver *models.User, content string) (*models.DirectMessage, error) {
	var msg *models.DirectMessage
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e := db.ExecutorFromContext(ctx, s.pool)

		id, err := allocateID(ctx, e, tableDirectMessages)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO direct_messages (id, sender_id, receiver_id, sender_name, receiver_name, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
			RETURNING ` + directMessageReturning

		msg, err = scanDirectMessage(e.QueryRow(ctx, query,
			id, sender.ID, receiver.ID, sender.Nickname, receiver.Nickname, content))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert direct message: %w", err)
	}
	return msg, nil
}

func (s *DirectMessageStore) GetByID(ctx context.Context, messageID int64) (*models.DirectMessage, error) {
	e := db.ExecutorFromContext(ctx, s.pool)
	msg, err := scanDirectMessage(e.QueryRow(ctx,
		`SELECT `+directMessageReturning+` FROM direct_messages WHERE id = $1`, messageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get direct message: %w", err)
	}
	return msg, nil
}

func (s *DirectMessageStore) UpdateContent(ctx context.Context, messageID int64, content string) (*models.DirectMessage, error) {
	query := `
		UPDATE direct_messages
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + directMessageReturning

	e := db.ExecutorFromContext(ctx, s.pool)
	msg, err := scanDirectMessage(e.QueryRow(ctx, query, messageID, content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update direct message: %w", err)
	}
	return msg, nil
}

func (s *DirectMessageStore) Delete(ctx context.Context, messageID int64) error {
	e := db.ExecutorFromContext(ctx, s.pool)
	if _, err := e.Exec(ctx, `DELETE FROM direct_messages WHERE id = $1`, messageID); err != nil {
		return fmt.Errorf("delete direct message: %w", err)
	}
	return nil
}

func (s *DirectMessageStore) DeleteByParticipant(ctx context.Context, userID int64) error {
	e := db.ExecutorFromContext(ctx, s.pool)
	if _, err := e.Exec(ctx,
		`DELETE FROM direct_messages WHERE sender_id = $1 OR receiver_id = $1`, userID); err != nil {
		return fmt.Errorf("delete participant direct messages: %w", err)
	}
	return nil
}

func (s *DirectMessageStore) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]models.DirectMessage, int64, error) {
	e := db.ExecutorFromContext(ctx, s.pool)

	var total int64
	if err := e.QueryRow(ctx,
		`SELECT count(*) FROM direct_messages WHERE sender_id = $1 OR receiver_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count direct messages: %w", err)
	}

	q := psql.Select(
		sm.Columns(directMessageColumns...),
		sm.From("direct_messages"),
		sm.Where(
			psql.Quote("sender_id").EQ(psql.Arg(userID)).
				Or(psql.Quote("receiver_id").EQ(psql.Arg(userID))),
		),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
		sm.Limit(int64(limit)),
		sm.Offset(int64(offset)),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("build direct message query: %w", err)
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list direct messages: %w", err)
	}
	messages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DirectMessage, error) {
		m, err := scanDirectMessage(row)
		if err != nil {
			return models.DirectMessage{}, err
		}
		return *m, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan direct messages: %w", err)
	}

	return messages, total, nil
}
