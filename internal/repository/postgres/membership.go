package postgres

import (
	"context"
	"fmt"

	"github.com/lalith-99/lockerroom/internal/db"
	"github.com/lalith-99/lockerroom/internal/models"
)

type MembershipStore struct {
	pool db.Pool
}

func NewMembershipStore(pool db.Pool) *MembershipStore {
	return &MembershipStore{pool: pool}
}

func (s *MembershipStore) AddMember(ctx context.Context, teamID, userID int64) error {
	// Adding someone twice is a no-op, not an error.
	query := `
		INSERT INTO memberships (team_id, user_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (team_id, user_id) DO NOTHING`

	e := db.ExecutorFromContext(ctx, s.pool)
	if _, err := e.Exec(ctx, query, teamID, userID); err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

func (s *MembershipStore) IsMember(ctx context.Context, teamID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM memberships
			WHERE team_id = $1 AND user_id = $2
		)`

	var exists bool
	e := db.ExecutorFromContext(ctx, s.pool)
	if err := e.QueryRow(ctx, query, teamID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return exists, nil
}

func (s *MembershipStore) ListMembers(ctx context.Context, teamID int64) ([]models.Membership, error) {
	query := `
		SELECT team_id, user_id, created_at
		FROM memberships
		WHERE team_id = $1
		ORDER BY created_at`

	e := db.ExecutorFromContext(ctx, s.pool)
	rows, err := e.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := make([]models.Membership, 0)
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	return members, nil
}

func (s *MembershipStore) DeleteByTeam(ctx context.Context, teamID int64) error {
	e := db.ExecutorFromContext(ctx, s.pool)
	if _, err := e.Exec(ctx, `DELETE FROM memberships WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("delete team memberships: %w", err)
	}
	return nil
}

func (s *MembershipStore) DeleteByUser(ctx context.Context, userID int64) error {
	e := db.ExecutorFromContext(ctx, s.pool)
	if _, err := e.Exec(ctx, `DELETE FROM memberships WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user memberships: %w", err)
	}
	return nil
}
