package postgres

import (
	"github.com/lalith-99/lockerroom/internal/db"
	"github.com/lalith-99/lockerroom/internal/repository"
)

// Compile-time checks that each store satisfies its repository contract.
var (
	_ repository.UserRepository          = (*UserStore)(nil)
	_ repository.TeamRepository          = (*TeamStore)(nil)
	_ repository.MembershipRepository    = (*MembershipStore)(nil)
	_ repository.TeamMessageRepository   = (*TeamMessageStore)(nil)
	_ repository.DirectMessageRepository = (*DirectMessageStore)(nil)
)

// Stores bundles every pgx repository over one pool.
type Stores struct {
	Users          *UserStore
	Teams          *TeamStore
	Memberships    *MembershipStore
	TeamMessages   *TeamMessageStore
	DirectMessages *DirectMessageStore
}

func NewStores(pool db.Pool, tx db.Transactor) *Stores {
	return &Stores{
		Users:          NewUserStore(pool, tx),
		Teams:          NewTeamStore(pool, tx),
		Memberships:    NewMembershipStore(pool),
		TeamMessages:   NewTeamMessageStore(pool, tx),
		DirectMessages: NewDirectMessageStore(pool, tx),
	}
}
