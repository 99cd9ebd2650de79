package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleJobSeeker Role = "JOBSEEKER"
	RoleRecruiter Role = "RECRUITER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleRecruiter
}

// Authority is the role name as carried in token role lists.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // bcrypt hash
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// RegisterInput carries a signup request after binding.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     Role
}

// LoginInput carries credentials plus the request detail logged on failure.
type LoginInput struct {
	Username  string
	Password  string
	IP        string
	UserAgent string
	RequestID string
	Method    string
	Path      string
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"`
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfilePicture(ctx context.Context, id int64, url string) error
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(username string, userID int64, role string) (string, error)
}

// LoginGuard tracks failed logins and refuses blocked callers.
type LoginGuard interface {
	IsBlocked(ctx context.Context, username, ip string) (bool, error)
	RecordFailedAttempt(ctx context.Context, username, ip string) (bool, int, error)
	ClearAttempts(ctx context.Context, username string) error
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	GetCurrentUser(ctx context.Context, id int64) (*User, error)
}

// ObjectStore keeps public files and returns the URL they are served from.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type ProfileUsecase interface {
	// UpdateProfilePicture stores the image and records its URL on the user.
	UpdateProfilePicture(ctx context.Context, who Identity, data []byte) (*User, error)
}
