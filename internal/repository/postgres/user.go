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

const userColumns = `id, email, nickname, password_hash, is_admin, created_at, updated_at`

type UserStore struct {
	pool db.Pool
	tx   db.Transactor
}

func NewUserStore(pool db.Pool, tx db.Transactor) *UserStore {
	return &UserStore{pool: pool, tx: tx}
}

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Nickname,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user under the smallest free id.
func (s *UserStore) Create(ctx context.Context, email, passwordHash, nickname string) (*models.User, error) {
	var user *models.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e := db.ExecutorFromContext(ctx, s.pool)

		id, err := allocateID(ctx, e, tableUsers)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO users (id, email, password_hash, nickname, is_admin, created_at, updated_at)
			VALUES ($1, $2, $3, $4, false, now(), now())
			RETURNING ` + userColumns

		user, err = scanUser(e.QueryRow(ctx, query, id, email, passwordHash, nickname))
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *UserStore) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	e := db.ExecutorFromContext(ctx, s.pool)

	user, err := scanUser(e.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where+` = $1`, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *UserStore) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.getOne(ctx, "id", userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetByEmail is used by login and by "add member by email".
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.getOne(ctx, "email", email)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// GetByNickname resolves a direct message receiver.
func (s *UserStore) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	user, err := s.getOne(ctx, "nickname", nickname)
	if err != nil {
		return nil, fmt.Errorf("get user by nickname: %w", err)
	}
	return user, nil
}

func (s *UserStore) MarkAdmin(ctx context.Context, userID int64) error {
	e := db.ExecutorFromContext(ctx, s.pool)

	_, err := e.Exec(ctx, `UPDATE users SET is_admin = true, updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("mark user admin: %w", err)
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, userID int64) error {
	e := db.ExecutorFromContext(ctx, s.pool)

	if _, err := e.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
