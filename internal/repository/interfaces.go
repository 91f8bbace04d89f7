package repository

import (
	"context"
	"errors"

	"github.com/lalith-99/lockerroom/internal/models"
)

// ErrAlreadyExists is returned when an insert hits a unique constraint
// (email, nickname, team name).
var ErrAlreadyExists = errors.New("already exists")

// Lookups return nil, nil when the row does not exist. Create methods assign
// the smallest unused id of their collection.

type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, nickname string) (*models.User, error)
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	// MarkAdmin sets the admin-capable flag; it is never cleared.
	MarkAdmin(ctx context.Context, userID int64) error
	Delete(ctx context.Context, userID int64) error
}

type TeamRepository interface {
	Create(ctx context.Context, name string, adminID int64) (*models.Team, error)
	GetByID(ctx context.Context, teamID int64) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	ListByAdmin(ctx context.Context, adminID int64) ([]models.Team, error)
	Delete(ctx context.Context, teamID int64) error
}

type MembershipRepository interface {
	// AddMember is a no-op when the pair already exists.
	AddMember(ctx context.Context, teamID, userID int64) error
	IsMember(ctx context.Context, teamID, userID int64) (bool, error)
	ListMembers(ctx context.Context, teamID int64) ([]models.Membership, error)
	DeleteByTeam(ctx context.Context, teamID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type TeamMessageRepository interface {
	Create(ctx context.Context, teamID, authorID int64, authorName, content string) (*models.TeamMessage, error)
	GetByID(ctx context.Context, teamID, messageID int64) (*models.TeamMessage, error)
	UpdateContent(ctx context.Context, teamID, messageID int64, content string) (*models.TeamMessage, error)
	Delete(ctx context.Context, teamID, messageID int64) error
	// ListByTeam returns one newest-first window and the team's total count.
	ListByTeam(ctx context.Context, teamID int64, limit, offset int) ([]models.TeamMessage, int64, error)
	DeleteByTeam(ctx context.Context, teamID int64) error
}

type DirectMessageRepository interface {
	Create(ctx context.Context, sender, receiver *models.User, content string) (*models.DirectMessage, error)
	GetByID(ctx context.Context, messageID int64) (*models.DirectMessage, error)
	UpdateContent(ctx context.Context, messageID int64, content string) (*models.DirectMessage, error)
	Delete(ctx context.Context, messageID int64) error
	// ListForUser windows over every message the user sent or received.
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]models.DirectMessage, int64, error)
	DeleteByParticipant(ctx context.Context, userID int64) error
}
