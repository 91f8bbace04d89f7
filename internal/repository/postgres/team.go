package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lalith-99/lockerroom/internal/db"
	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/lalith-99/lockerroom/internal/repository"
)

const teamColumns = `id, name, admin_id, created_at, updated_at`

type TeamStore struct {
	pool db.Pool
	tx   db.Transactor
}

func NewTeamStore(pool db.Pool, tx db.Transactor) *TeamStore {
	return &TeamStore{pool: pool, tx: tx}
}

func scanTeam(row scanner) (*models.Team, error) {
	var t models.Team
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.AdminID,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TeamStore) Create(ctx context.Context, name string, adminID int64) (*models.Team, error) {
	var team *models.Team
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e := db.ExecutorFromContext(ctx, s.pool)

		id, err := allocateID(ctx, e, tableTeams)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO teams (id, name, admin_id, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
			RETURNING ` + teamColumns

		team, err = scanTeam(e.QueryRow(ctx, query, id, name, adminID))
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}
	return team, nil
}

func (s *TeamStore) GetByID(ctx context.Context, teamID int64) (*models.Team, error) {
	e := db.ExecutorFromContext(ctx, s.pool)

	team, err := scanTeam(e.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return team, nil
}

func (s *TeamStore) list(ctx context.Context, query string, args ...any) ([]models.Team, error) {
	e := db.ExecutorFromContext(ctx, s.pool)

	rows, err := e.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}

	return teams, nil
}

func (s *TeamStore) List(ctx context.Context) ([]models.Team, error) {
	return s.list(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY id`)
}

func (s *TeamStore) ListByAdmin(ctx context.Context, adminID int64) ([]models.Team, error) {
	return s.list(ctx, `SELECT `+teamColumns+` FROM teams WHERE admin_id = $1 ORDER BY id`, adminID)
}

func (s *TeamStore) Delete(ctx context.Context, teamID int64) error {
	e := db.ExecutorFromContext(ctx, s.pool)

	if _, err := e.Exec(ctx, `DELETE FROM teams WHERE id = $1`, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}
