package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"recruitment-platform/internal/domain"
)

type applicationRepo struct {
	db DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db DB) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Joined through job and company so the owning recruiter comes back with every row.
const applicationSelect = `
	SELECT a.id, a.user_id, a.job_id, a.status, a.applied_at,
	       u.username, j.title, c.user_id
	FROM applications a
	JOIN users u ON u.id = a.user_id
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(&a.ID, &a.UserID, &a.JobID, &a.Status, &a.AppliedAt, &a.Applicant, &a.JobTitle, &a.RecruiterUserID)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) queryApplications(ctx context.Context, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]domain.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (user_id, job_id, status, applied_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, query, app.UserID, app.JobID, app.Status, app.AppliedAt).Scan(&app.ID)
	if code, _ := pgCode(err); code == pgForeignKeyViolation {
		// Job removed between lookup and insert
		return domain.ErrNotFound
	}
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *applicationRepo) ListByUserID(ctx context.Context, userID int64) ([]domain.Application, error) {
	return r.queryApplications(ctx, applicationSelect+` WHERE a.user_id = $1 ORDER BY a.applied_at DESC, a.id DESC`, userID)
}

func (r *applicationRepo) ListByJobID(ctx context.Context, jobID int64, status *domain.ApplicationStatus) ([]domain.Application, error) {
	query := applicationSelect + ` WHERE a.job_id = $1`
	args := []interface{}{jobID}
	if status != nil {
		query += ` AND a.status = $2`
		args = append(args, *status)
	}
	return r.queryApplications(ctx, query+` ORDER BY a.applied_at DESC, a.id DESC`, args...)
}

func (r *applicationRepo) ListByRecruiter(ctx context.Context, recruiterID int64, status *domain.ApplicationStatus) ([]domain.Application, error) {
	query := applicationSelect + ` WHERE c.user_id = $1`
	args := []interface{}{recruiterID}
	if status != nil {
		query += ` AND a.status = $2`
		args = append(args, *status)
	}
	return r.queryApplications(ctx, query+` ORDER BY a.applied_at DESC, a.id DESC`, args...)
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	result, err := r.db.Exec(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
