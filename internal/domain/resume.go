package domain

import (
	"context"
	"time"
)

// Resume belongs to exactly one job seeker.
type Resume struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	Name               string    `json:"name"`
	Education          *string   `json:"education"`
	Experience         *string   `json:"experience"`
	Skills             *string   `json:"skills"`
	ContactInformation *string   `json:"contact_information"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ResumeRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*Resume, error)
	Upsert(ctx context.Context, resume *Resume) error
}

type ResumeUsecase interface {
	GetMyResume(ctx context.Context, who Identity) (*Resume, error)
	SaveResume(ctx context.Context, who Identity, details *Resume) (*Resume, error)
	GetResumeByUserID(ctx context.Context, userID int64) (*Resume, error)
}
