package domain

import (
	"context"
	"time"
)

const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// User mirrors an identity-provider account; ID is the token subject.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsDisabled bool      `json:"is_disabled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UserRepository interface {
	// Create inserts the user; an existing id is left untouched.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateRole(ctx context.Context, id string, role string) error
	SetDisabled(ctx context.Context, id string, disabled bool) error
	List(ctx context.Context, role string, limit, offset int) ([]User, int64, error)
}

type SyncUserRequest struct {
	Role string `json:"role" binding:"omitempty,oneof=candidate recruiter"`
}

type AuthUsecase interface {
	SyncUser(ctx context.Context, id, email, role string) (*User, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
