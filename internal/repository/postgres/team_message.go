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

var teamMessageColumns = []string{"id", "team_id", "author_id", "author_name", "content", "created_at", "updated_at"}

const teamMessageReturning = `id, team_id, author_id, author_name, content, created_at, updated_at`

type TeamMessageStore struct {
	pool db.Pool
	tx   db.Transactor
}

func NewTeamMessageStore(pool db.Pool, tx db.Transactor) *TeamMessageStore {
	return &TeamMessageStore{pool: pool, tx: tx}
}

func scanTeamMessage(row scanner) (*models.TeamMessage, error) {
	var m models.TeamMessage
	if err := row.Scan(
		&m.ID,
		&m.TeamID,
		&m.AuthorID,
		&m.AuthorName,
		&m.Content,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create stores a message under the smallest id free across all teams'
// messages; team message ids are unique per collection, not per team.
func (s *TeamMessageStore) Create(ctx context.Context, teamID, authorID int64, authorName, content string) (*models.TeamMessage, error) {
	var msg *models.TeamMessage
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e := db.ExecutorFromContext(ctx, s.pool)

		id, err := allocateID(ctx, e, tableTeamMessages)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO team_messages (id, team_id, author_id, author_name, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
			RETURNING ` + teamMessageReturning

		msg, err = scanTeamMessage(e.QueryRow(ctx, query, id, teamID, authorID, authorName, content))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert team message: %w", err)
	}
	return msg, nil
}

func (s *TeamMessageStore) GetByID(ctx context.Context, teamID, messageID int64) (*models.TeamMessage, error) {
	query := `SELECT ` + teamMessageReturning + ` FROM team_messages WHERE team_id = $1 AND id = $2`

	e := db.ExecutorFromContext(ctx, s.pool)
	msg, err := scanTeamMessage(e.QueryRow(ctx, query, teamID, messageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team message: %w", err)
	}
	return msg, nil
}

func (s *TeamMessageStore) UpdateContent(ctx context.Context, teamID, messageID int64, content string) (*models.TeamMessage, error) {
	query := `
		UPDATE team_messages
		SET content = $3, updated_at = now()
		WHERE team_id = $1 AND id = $2
		RETURNING ` + teamMessageReturning

	e := db.ExecutorFromContext(ctx, s.pool)
	msg, err := scanTeamMessage(e.QueryRow(ctx, query, teamID, messageID, content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update team message: %w", err)
	}
	return msg, nil
}

func (s *TeamMessageStore) Delete(ctx context.Context, teamID, messageID int64) error {
	e := db.ExecutorFromContext(ctx, s.pool)
	if _, err := e.Exec(ctx, `DELETE FROM team_messages WHERE team_id = $1 AND id = $2`, teamID, messageID); err != nil {
		return fmt.Errorf("delete team message: %w", err)
	}
	return nil
}

func (s *TeamMessageStore) DeleteByTeam(ctx context.Context, teamID int64) error {
	e := db.ExecutorFromContext(ctx, s.pool)
	if _, err := e.Exec(ctx, `DELETE FROM team_messages WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("delete team messages: %w", err)
	}
	return nil
}

// ListByTeam orders by created_at, then id, both descending, so a page
// boundary never splits two rows with the same timestamp ambiguously.
func (s *TeamMessageStore) ListByTeam(ctx context.Context, teamID int64, limit, offset int) ([]models.TeamMessage, int64, error) {
	e := db.ExecutorFromContext(ctx, s.pool)

	var total int64
	if err := e.QueryRow(ctx, `SELECT count(*) FROM team_messages WHERE team_id = $1`, teamID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count team messages: %w", err)
	}

	q := psql.Select(
		sm.Columns(teamMessageColumns...),
		sm.From("team_messages"),
		sm.Where(psql.Quote("team_id").EQ(psql.Arg(teamID))),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
		sm.Limit(int64(limit)),
		sm.Offset(int64(offset)),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("build team message query: %w", err)
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list team messages: %w", err)
	}
	messages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.TeamMessage, error) {
		m, err := scanTeamMessage(row)
		if err != nil {
			return models.TeamMessage{}, err
		}
		return *m, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan team messages: %w", err)
	}

	return messages, total, nil
}
