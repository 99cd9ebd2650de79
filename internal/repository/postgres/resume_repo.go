package postgres

import (
	"context"
	"time"

	"recruitment-platform/internal/domain"
)

type resumeRepo struct {
	db DB
}

func NewResumeRepository(db DB) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

func (r *resumeRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Resume, error) {
	query := `SELECT id, user_id, name, education, experience, skills, contact_information, updated_at
              FROM resumes WHERE user_id = $1`
	var res domain.Resume
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&res.ID, &res.UserID, &res.Name, &res.Education, &res.Experience, &res.Skills, &res.ContactInformation, &res.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &res, nil
}

// Upsert writes the resume keyed by user_id (1 resume per user)
func (r *resumeRepo) Upsert(ctx context.Context, res *domain.Resume) error {
	res.UpdatedAt = time.Now()
	query := `
		INSERT INTO resumes (user_id, name, education, experience, skills, contact_information, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			education = EXCLUDED.education,
			experience = EXCLUDED.experience,
			skills = EXCLUDED.skills,
			contact_information = EXCLUDED.contact_information,
			updated_at = EXCLUDED.updated_at
		RETURNING id`
	return r.db.QueryRow(ctx, query,
		res.UserID, res.Name, res.Education, res.Experience, res.Skills, res.ContactInformation, res.UpdatedAt,
	).Scan(&res.ID)
}
