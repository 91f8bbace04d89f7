package auth

import (
	"context"

	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/lalith-99/lockerroom/internal/observ"
	"go.uber.org/zap"
)

// UserLookup is the slice of the user repository the resolver needs.
type UserLookup interface {
	GetByID(ctx context.Context, userID int64) (*models.User, error)
}

// Resolver turns a session token into the user it names.
type Resolver struct {
	secret string
	users  UserLookup
}

func NewResolver(secret string, users UserLookup) *Resolver {
	return &Resolver{secret: secret, users: users}
}

// Resolve returns the token's user, or nil when there is no usable identity:
// empty, forged or expired token, or a user that no longer exists. A store
// failure is logged and also yields nil; callers decide whether anonymous
// access is acceptable.
func (r *Resolver) Resolve(ctx context.Context, token string) *models.User {
	if token == "" {
		return nil
	}

	l := observ.FromContext(ctx)

	claims, err := ParseToken(token, r.secret)
	if err != nil {
		l.Debug("rejected session token", zap.Error(err))
		return nil
	}

	user, err := r.users.GetByID(ctx, claims.UserID)
	if err != nil {
		l.Error("failed to load session user", zap.Int64("user_id", claims.UserID), zap.Error(err))
		return nil
	}
	return user
}
