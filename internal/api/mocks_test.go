package api

import (
	"context"
	"net/http"

	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/lalith-99/lockerroom/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Signup(ctx context.Context, in service.SignupInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, in service.LoginInput) (string, *models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, user *models.User, in service.CreateTeamInput) (*models.Team, error) {
	args := m.Called(ctx, user, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) List(ctx context.Context, user *models.User) ([]models.Team, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockTeamService) Delete(ctx context.Context, user *models.User, teamID int64) error {
	args := m.Called(ctx, user, teamID)
	return args.Error(0)
}

func (m *MockTeamService) AddMember(ctx context.Context, user *models.User, teamID int64, in service.AddMemberInput) (*models.User, error) {
	args := m.Called(ctx, user, teamID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockTeamService) ListMembers(ctx context.Context, user *models.User, teamID int64) ([]models.Membership, error) {
	args := m.Called(ctx, user, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Membership), args.Error(1)
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Create(ctx context.Context, user *models.User, teamID int64, in service.MessageInput) (*models.TeamMessage, error) {
	args := m.Called(ctx, user, teamID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMessage), args.Error(1)
}

func (m *MockMessageService) List(ctx context.Context, user *models.User, teamID int64, page, pageSize string) (*models.Page[models.TeamMessage], error) {
	args := m.Called(ctx, user, teamID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.TeamMessage]), args.Error(1)
}

func (m *MockMessageService) Next(ctx context.Context, user *models.User, teamID int64, page, pageSize string) (*models.Page[models.TeamMessage], error) {
	args := m.Called(ctx, user, teamID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.TeamMessage]), args.Error(1)
}

func (m *MockMessageService) Edit(ctx context.Context, user *models.User, teamID, messageID int64, in service.MessageInput) (*models.TeamMessage, error) {
	args := m.Called(ctx, user, teamID, messageID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMessage), args.Error(1)
}

func (m *MockMessageService) Delete(ctx context.Context, user *models.User, teamID, messageID int64) error {
	args := m.Called(ctx, user, teamID, messageID)
	return args.Error(0)
}

type MockDirectMessageService struct {
	mock.Mock
}

func (m *MockDirectMessageService) Send(ctx context.Context, user *models.User, in service.DirectMessageInput) (*models.DirectMessage, error) {
	args := m.Called(ctx, user, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DirectMessage), args.Error(1)
}

func (m *MockDirectMessageService) List(ctx context.Context, user *models.User, page, pageSize string) (*models.Page[models.DirectMessage], error) {
	args := m.Called(ctx, user, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.DirectMessage]), args.Error(1)
}

func (m *MockDirectMessageService) Edit(ctx context.Context, user *models.User, messageID int64, in service.MessageInput) (*models.DirectMessage, error) {
	args := m.Called(ctx, user, messageID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DirectMessage), args.Error(1)
}

func (m *MockDirectMessageService) Delete(ctx context.Context, user *models.User, messageID int64) error {
	args := m.Called(ctx, user, messageID)
	return args.Error(0)
}

type MockMemberGate struct {
	mock.Mock
}

func (m *MockMemberGate) RequireMember(ctx context.Context, user *models.User, teamID int64) (*models.Team, error) {
	args := m.Called(ctx, user, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

type MockEventStream struct {
	mock.Mock
}

func (m *MockEventStream) Serve(w http.ResponseWriter, r *http.Request, teamID int64) error {
	args := m.Called(teamID)
	return args.Error(0)
}
