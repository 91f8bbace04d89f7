package api

import (
	"context"
	"net/http"

	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/lalith-99/lockerroom/internal/service"
)

// The handlers depend on these narrow views of the services.

type AccountService interface {
	Signup(ctx context.Context, in service.SignupInput) (*models.User, error)
	Login(ctx context.Context, in service.LoginInput) (string, *models.User, error)
	DeleteAccount(ctx context.Context, user *models.User) error
}

type TeamService interface {
	Create(ctx context.Context, user *models.User, in service.CreateTeamInput) (*models.Team, error)
	List(ctx context.Context, user *models.User) ([]models.Team, error)
	Delete(ctx context.Context, user *models.User, teamID int64) error
	AddMember(ctx context.Context, user *models.User, teamID int64, in service.AddMemberInput) (*models.User, error)
	ListMembers(ctx context.Context, user *models.User, teamID int64) ([]models.Membership, error)
}

type MessageService interface {
	Create(ctx context.Context, user *models.User, teamID int64, in service.MessageInput) (*models.TeamMessage, error)
	List(ctx context.Context, user *models.User, teamID int64, page, pageSize string) (*models.Page[models.TeamMessage], error)
	Next(ctx context.Context, user *models.User, teamID int64, page, pageSize string) (*models.Page[models.TeamMessage], error)
	Edit(ctx context.Context, user *models.User, teamID, messageID int64, in service.MessageInput) (*models.TeamMessage, error)
	Delete(ctx context.Context, user *models.User, teamID, messageID int64) error
}

type DirectMessageService interface {
	Send(ctx context.Context, user *models.User, in service.DirectMessageInput) (*models.DirectMessage, error)
	List(ctx context.Context, user *models.User, page, pageSize string) (*models.Page[models.DirectMessage], error)
	Edit(ctx context.Context, user *models.User, messageID int64, in service.MessageInput) (*models.DirectMessage, error)
	Delete(ctx context.Context, user *models.User, messageID int64) error
}

// MemberGate authorizes access to a team's event stream.
type MemberGate interface {
	RequireMember(ctx context.Context, user *models.User, teamID int64) (*models.Team, error)
}

// EventStream serves a team's realtime events on an upgraded connection.
type EventStream interface {
	Serve(w http.ResponseWriter, r *http.Request, teamID int64) error
}
