package service

import (
	"context"

	"github.com/lalith-99/lockerroom/internal/apperr"
	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/lalith-99/lockerroom/internal/repository"
)

// MembershipAuthority answers who may act on a team. A missing team is
// always reported as not found before any membership question is asked.
type MembershipAuthority struct {
	teams       repository.TeamRepository
	memberships repository.MembershipRepository
}

func NewMembershipAuthority(teams repository.TeamRepository, memberships repository.MembershipRepository) *MembershipAuthority {
	return &MembershipAuthority{teams: teams, memberships: memberships}
}

// Team loads a team or returns a not-found error.
func (a *MembershipAuthority) Team(ctx context.Context, teamID int64) (*models.Team, error) {
	team, err := a.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, internal("failed to load team", err)
	}
	if team == nil {
		return nil, apperr.NotFound("team not found")
	}
	return team, nil
}

// IsAdmin reports whether user owns team.
func IsAdmin(user *models.User, team *models.Team) bool {
	return user != nil && team != nil && team.AdminID == user.ID
}

// IsMember reports whether user belongs to team. The admin always does.
func (a *MembershipAuthority) IsMember(ctx context.Context, user *models.User, team *models.Team) (bool, error) {
	if user == nil {
		return false, nil
	}
	if IsAdmin(user, team) {
		return true, nil
	}
	ok, err := a.memberships.IsMember(ctx, team.ID, user.ID)
	if err != nil {
		return false, internal("failed to check membership", err)
	}
	return ok, nil
}

// RequireMember loads the team and denies callers outside it.
func (a *MembershipAuthority) RequireMember(ctx context.Context, user *models.User, teamID int64) (*models.Team, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	team, err := a.Team(ctx, teamID)
	if err != nil {
		return nil, err
	}
	ok, err := a.IsMember(ctx, user, team)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Unauthorized("you are not a member of this team")
	}
	return team, nil
}

// canModerate is the single edit/delete rule for team messages: the team
// admin or the message's author.
func canModerate(user *models.User, team *models.Team, msg *models.TeamMessage) bool {
	return IsAdmin(user, team) || (user != nil && msg.AuthorID == user.ID)
}
