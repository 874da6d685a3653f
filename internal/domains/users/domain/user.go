package domain

import (
	"errors"
	"strings"
	"time"
)

// Role enumerates user privileges.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var (
	ErrMissingID    = errors.New("user id is required")
	ErrMissingName  = errors.New("user name is required")
	ErrMissingEmail = errors.New("user email is required")
	ErrInvalidRole  = errors.New("user role is invalid")
)

// User models an account. IDs are minted by the identity provider, not here.
type User struct {
	ID        string
	Name      string
	Email     string
	ImageURL  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser validates and constructs a user, defaulting the role.
func NewUser(u User) (*User, error) {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

// Validate enforces invariants on the user.
func (u *User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrMissingEmail
	}
	switch u.Role {
	case RoleUser, RoleAdmin:
		return nil
	default:
		return ErrInvalidRole
	}
}

// Stats aggregates a user's activity counters across contexts.
type Stats struct {
	CartCount      int64
	FavoritesCount int64
	OrdersCount    int64
}

// Profile is a user joined with their activity stats.
type Profile struct {
	User  *User
	Stats Stats
}
