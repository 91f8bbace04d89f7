package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lalith-99/lockerroom/internal/apperr"
	"github.com/lalith-99/lockerroom/internal/db"
	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/lalith-99/lockerroom/internal/observ"
	"github.com/lalith-99/lockerroom/internal/realtime"
	"github.com/lalith-99/lockerroom/internal/repository"
	"go.uber.org/zap"
)

type CreateTeamInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type AddMemberInput struct {
	Email string `json:"email" validate:"required,email"`
}

type TeamService struct {
	authority   *MembershipAuthority
	users       repository.UserRepository
	teams       repository.TeamRepository
	memberships repository.MembershipRepository
	messages    repository.TeamMessageRepository
	tx          db.Transactor
	events      Publisher
}

func NewTeamService(
	authority *MembershipAuthority,
	users repository.UserRepository,
	teams repository.TeamRepository,
	memberships repository.MembershipRepository,
	messages repository.TeamMessageRepository,
	tx db.Transactor,
	events Publisher,
) *TeamService {
	return &TeamService{
		authority:   authority,
		users:       users,
		teams:       teams,
		memberships: memberships,
		messages:    messages,
		tx:          tx,
		events:      publisherOrNop(events),
	}
}

// Create makes user the team's admin, records their membership and sets
// their admin-capable flag, all in one transaction.
func (s *TeamService) Create(ctx context.Context, user *models.User, in CreateTeamInput) (*models.Team, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var team *models.Team
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		team, err = s.teams.Create(ctx, in.Name, user.ID)
		if errors.Is(err, repository.ErrAlreadyExists) {
			return apperr.Validation("team name already taken")
		}
		if err != nil {
			return err
		}
		if err := s.memberships.AddMember(ctx, team.ID, user.ID); err != nil {
			return err
		}
		if !user.IsAdmin {
			return s.users.MarkAdmin(ctx, user.ID)
		}
		return nil
	})
	if err != nil {
		return nil, internal("failed to create team", err)
	}

	observ.FromContext(ctx).Info("team created",
		zap.Int64("team_id", team.ID),
		zap.Int64("admin_id", user.ID),
	)
	return team, nil
}

func (s *TeamService) List(ctx context.Context, user *models.User) ([]models.Team, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, internal("failed to list teams", err)
	}
	return teams, nil
}

// Delete removes the team with its messages and memberships. Only the
// admin may do it.
func (s *TeamService) Delete(ctx context.Context, user *models.User, teamID int64) error {
	if err := requireUser(user); err != nil {
		return err
	}
	team, err := s.authority.Team(ctx, teamID)
	if err != nil {
		return err
	}
	if !IsAdmin(user, team) {
		return apperr.Unauthorized("only the team admin can delete the team")
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.deleteTeam(ctx, team.ID)
	})
	if err != nil {
		return internal("failed to delete team", err)
	}

	s.events.Publish(team.ID, realtime.Event{Type: realtime.EventTeamDeleted})
	observ.FromContext(ctx).Info("team deleted", zap.Int64("team_id", team.ID))
	return nil
}

func (s *TeamService) deleteTeam(ctx context.Context, teamID int64) error {
	if err := s.messages.DeleteByTeam(ctx, teamID); err != nil {
		return err
	}
	if err := s.memberships.DeleteByTeam(ctx, teamID); err != nil {
		return err
	}
	return s.teams.Delete(ctx, teamID)
}

// AddMember adds the user registered under in.Email. Only the admin may add
// members; the added user's own admin flag is left alone.
func (s *TeamService) AddMember(ctx context.Context, user *models.User, teamID int64, in AddMemberInput) (*models.User, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	team, err := s.authority.Team(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !IsAdmin(user, team) {
		return nil, apperr.Forbidden("only the team admin can add members")
	}

	member, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, internal("failed to look up user", err)
	}
	if member == nil {
		return nil, apperr.Validation("no user with that email")
	}

	if err := s.memberships.AddMember(ctx, team.ID, member.ID); err != nil {
		return nil, internal("failed to add member", err)
	}
	return member, nil
}

func (s *TeamService) ListMembers(ctx context.Context, user *models.User, teamID int64) ([]models.Membership, error) {
	team, err := s.authority.RequireMember(ctx, user, teamID)
	if err != nil {
		return nil, err
	}
	members, err := s.memberships.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, internal("failed to list members", err)
	}
	return members, nil
}
