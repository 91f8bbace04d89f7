package models

import "time"

// User is an account. IsAdmin flips to true the first time the user creates
// a team and never flips back; it is a capability flag, not per-team rights.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Team is owned by exactly one admin, fixed at creation.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	AdminID   int64     `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Membership is the join row between users and teams. The admin also has
// one, written when the team is created.
type Membership struct {
	TeamID    int64     `json:"team_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamMessage is a message posted to a team.
//
// AuthorName is a copy of the author's nickname taken when the message was
// posted. It is a point-in-time snapshot: renaming the author later does not
// rewrite it.
type TeamMessage struct {
	ID         int64     `json:"id"`
	TeamID     int64     `json:"team_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DirectMessage is a message between two users. Both names are snapshots
// taken at send time, same contract as TeamMessage.AuthorName.
type DirectMessage struct {
	ID           int64     `json:"id"`
	SenderID     int64     `json:"sender_id"`
	ReceiverID   int64     `json:"receiver_id"`
	SenderName   string    `json:"sender_name"`
	ReceiverName string    `json:"receiver_name"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Page is one window of a scoped, newest-first listing.
type Page[T any] struct {
	Items       []T   `json:"messages"`
	TotalItems  int64 `json:"total_messages"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}
