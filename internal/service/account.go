package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lalith-99/lockerroom/internal/apperr"
	"github.com/lalith-99/lockerroom/internal/auth"
	"github.com/lalith-99/lockerroom/internal/db"
	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/lalith-99/lockerroom/internal/observ"
	"github.com/lalith-99/lockerroom/internal/realtime"
	"github.com/lalith-99/lockerroom/internal/repository"
	"github.com/lalith-99/lockerroom/internal/throttle"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Nickname string `json:"nickname" validate:"required,max=50"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountService covers signup, throttled login and account deletion.
type AccountService struct {
	users       repository.UserRepository
	teams       repository.TeamRepository
	memberships repository.MembershipRepository
	messages    repository.TeamMessageRepository
	directs     repository.DirectMessageRepository
	tx          db.Transactor
	throttle    *throttle.Throttle
	events      Publisher

	secret   string
	tokenTTL time.Duration
	hashCost int
}

type AccountDeps struct {
	Users          repository.UserRepository
	Teams          repository.TeamRepository
	Memberships    repository.MembershipRepository
	TeamMessages   repository.TeamMessageRepository
	DirectMessages repository.DirectMessageRepository
	Tx             db.Transactor
	Throttle       *throttle.Throttle
	Events         Publisher
}

func NewAccountService(deps AccountDeps, secret string, tokenTTL time.Duration) *AccountService {
	return &AccountService{
		users:       deps.Users,
		teams:       deps.Teams,
		memberships: deps.Memberships,
		messages:    deps.TeamMessages,
		directs:     deps.DirectMessages,
		tx:          deps.Tx,
		throttle:    deps.Throttle,
		events:      publisherOrNop(deps.Events),
		secret:      secret,
		tokenTTL:    tokenTTL,
		hashCost:    bcrypt.DefaultCost,
	}
}

func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Nickname = strings.TrimSpace(in.Nickname)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, internal("failed to check existing user", err)
	}
	if existing != nil {
		return nil, apperr.Validation("email already registered")
	}
	existing, err = s.users.GetByNickname(ctx, in.Nickname)
	if err != nil {
		return nil, internal("failed to check existing user", err)
	}
	if existing != nil {
		return nil, apperr.Validation("nickname already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, internal("failed to hash password", err)
	}

	user, err := s.users.Create(ctx, in.Email, string(hash), in.Nickname)
	if errors.Is(err, repository.ErrAlreadyExists) {
		// Lost a race with a concurrent signup for the same email or nickname.
		return nil, apperr.Validation("email or nickname already taken")
	}
	if err != nil {
		return nil, internal("failed to create user", err)
	}

	observ.FromContext(ctx).Info("user signed up", zap.Int64("user_id", user.ID))
	return user, nil
}

// Login checks the throttle before it looks at the credentials, so a
// blocked email is refused even with the right password.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return "", nil, err
	}

	l := observ.FromContext(ctx)

	if err := s.throttle.Check(ctx, in.Email); err != nil {
		if errors.Is(err, throttle.ErrThrottled) {
			l.Warn("login throttled", zap.String("email", in.Email))
			return "", nil, apperr.RateLimited("too many failed login attempts, try again later")
		}
		return "", nil, internal("failed to check login throttle", err)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, internal("failed to look up user", err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		n, err := s.throttle.Fail(ctx, in.Email)
		if err != nil {
			return "", nil, internal("failed to record login failure", err)
		}
		l.Info("login failed", zap.String("email", in.Email), zap.Int64("failures", n))
		return "", nil, apperr.Validation("invalid email or password")
	}

	if err := s.throttle.Succeed(ctx, in.Email); err != nil {
		return "", nil, internal("failed to reset login throttle", err)
	}

	token, err := auth.GenerateToken(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return "", nil, internal("failed to generate token", err)
	}
	return token, user, nil
}

// DeleteAccount removes the user, every direct message they sent or
// received, their memberships and the teams they administer. Messages they
// posted in other teams stay, under their snapshot name.
func (s *AccountService) DeleteAccount(ctx context.Context, user *models.User) error {
	if err := requireUser(user); err != nil {
		return err
	}

	var owned []models.Team
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		owned, err = s.teams.ListByAdmin(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, team := range owned {
			if err := s.messages.DeleteByTeam(ctx, team.ID); err != nil {
				return err
			}
			if err := s.memberships.DeleteByTeam(ctx, team.ID); err != nil {
				return err
			}
			if err := s.teams.Delete(ctx, team.ID); err != nil {
				return err
			}
		}
		if err := s.directs.DeleteByParticipant(ctx, user.ID); err != nil {
			return err
		}
		if err := s.memberships.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return s.users.Delete(ctx, user.ID)
	})
	if err != nil {
		return internal("failed to delete account", err)
	}

	for _, team := range owned {
		s.events.Publish(team.ID, realtime.Event{Type: realtime.EventTeamDeleted})
	}
	observ.FromContext(ctx).Info("account deleted",
		zap.Int64("user_id", user.ID),
		zap.Int("teams_deleted", len(owned)),
	)
	return nil
}
