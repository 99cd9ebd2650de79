package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"recruitment-platform/internal/domain"
)

type jobRepo struct {
	db DB
}

func NewJobRepository(db DB) domain.JobRepository {
	return &jobRepo{db: db}
}

// Every read joins the owning company so ownership checks need no second query.
const jobSelect = `
	SELECT j.id, j.company_id, j.title, j.description, j.location, j.salary_range, j.created_at,
	       c.company_name, c.user_id
	FROM jobs j
	JOIN companies c ON c.id = j.company_id`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, &j.SalaryRange, &j.CreatedAt,
		&j.CompanyName, &j.OwnerUserID,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepo) queryJobs(ctx context.Context, query string, args ...interface{}) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (company_id, title, description, location, salary_range, created_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.CompanyID, job.Title, job.Description, job.Location, job.SalaryRange, job.CreatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return j, nil
}

func (r *jobRepo) List(ctx context.Context) ([]domain.Job, error) {
	return r.queryJobs(ctx, jobSelect+` ORDER BY j.created_at DESC, j.id DESC`)
}

func (r *jobRepo) ListByCompanyID(ctx context.Context, companyID int64) ([]domain.Job, error) {
	return r.queryJobs(ctx, jobSelect+` WHERE j.company_id = $1 ORDER BY j.created_at DESC, j.id DESC`, companyID)
}

// Search uses plain LIKE, so matching is case-sensitive and the keyword's own
// % and _ act as wildcards.
func (r *jobRepo) Search(ctx context.Context, keyword, location string) ([]domain.Job, error) {
	query := jobSelect + `
	WHERE (j.title LIKE '%' || $1 || '%' OR j.description LIKE '%' || $1 || '%')`
	args := []interface{}{keyword}
	if location != "" {
		query += ` AND j.location LIKE '%' || $2 || '%'`
		args = append(args, location)
	}
	query += ` ORDER BY j.created_at DESC, j.id DESC`
	return r.queryJobs(ctx, query, args...)
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		location = $4,
		salary_range = $5
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query, job.ID, job.Title, job.Description, job.Location, job.SalaryRange)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the job; applications go with it via ON DELETE CASCADE.
func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
