package domain

// Identity is the authenticated caller as asserted by a validated token.
type Identity struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (i Identity) IsRecruiter() bool { return i.Role == RoleRecruiter }

func (i Identity) IsJobSeeker() bool { return i.Role == RoleJobSeeker }
