package service

import (
	"context"
	"sync"

	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/lalith-99/lockerroom/internal/realtime"
	"github.com/stretchr/testify/mock"
)

type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, email, passwordHash, nickname string) (*models.User, error) {
	args := m.Called(ctx, email, passwordHash, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) MarkAdmin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, name string, adminID int64) (*models.Team, error) {
	args := m.Called(ctx, name, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, teamID int64) (*models.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockTeamRepository) ListByAdmin(ctx context.Context, adminID int64) ([]models.Team, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockTeamRepository) Delete(ctx context.Context, teamID int64) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) AddMember(ctx context.Context, teamID, userID int64) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *MockMembershipRepository) IsMember(ctx context.Context, teamID, userID int64) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepository) ListMembers(ctx context.Context, teamID int64) ([]models.Membership, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Membership), args.Error(1)
}

func (m *MockMembershipRepository) DeleteByTeam(ctx context.Context, teamID int64) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

func (m *MockMembershipRepository) DeleteByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockTeamMessageRepository struct {
	mock.Mock
}

func (m *MockTeamMessageRepository) Create(ctx context.Context, teamID, authorID int64, authorName, content string) (*models.TeamMessage, error) {
	args := m.Called(ctx, teamID, authorID, authorName, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMessage), args.Error(1)
}

func (m *MockTeamMessageRepository) GetByID(ctx context.Context, teamID, messageID int64) (*models.TeamMessage, error) {
	args := m.Called(ctx, teamID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMessage), args.Error(1)
}

func (m *MockTeamMessageRepository) UpdateContent(ctx context.Context, teamID, messageID int64, content string) (*models.TeamMessage, error) {
	args := m.Called(ctx, teamID, messageID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMessage), args.Error(1)
}

func (m *MockTeamMessageRepository) Delete(ctx context.Context, teamID, messageID int64) error {
	args := m.Called(ctx, teamID, messageID)
	return args.Error(0)
}

func (m *MockTeamMessageRepository) ListByTeam(ctx context.Context, teamID int64, limit, offset int) ([]models.TeamMessage, int64, error) {
	args := m.Called(ctx, teamID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.TeamMessage), args.Get(1).(int64), args.Error(2)
}

func (m *MockTeamMessageRepository) DeleteByTeam(ctx context.Context, teamID int64) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

type MockDirectMessageRepository struct {
	mock.Mock
}

func (m *MockDirectMessageRepository) Create(ctx context.Context, sender, receiver *models.User, content string) (*models.DirectMessage, error) {
	args := m.Called(ctx, sender, receiver, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DirectMessage), args.Error(1)
}

func (m *MockDirectMessageRepository) GetByID(ctx context.Context, messageID int64) (*models.DirectMessage, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DirectMessage), args.Error(1)
}

func (m *MockDirectMessageRepository) UpdateContent(ctx context.Context, messageID int64, content string) (*models.DirectMessage, error) {
	args := m.Called(ctx, messageID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DirectMessage), args.Error(1)
}

func (m *MockDirectMessageRepository) Delete(ctx context.Context, messageID int64) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

func (m *MockDirectMessageRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]models.DirectMessage, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.DirectMessage), args.Get(1).(int64), args.Error(2)
}

func (m *MockDirectMessageRepository) DeleteByParticipant(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
	teams  []int64
}

func (p *recordingPublisher) Publish(teamID int64, event realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.teams = append(p.teams, teamID)
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
