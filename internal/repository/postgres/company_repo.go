package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"recruitment-platform/internal/domain"
)

type companyRepo struct {
	db DB
}

func NewCompanyRepository(db DB) domain.CompanyRepository {
	return &companyRepo{db: db}
}

const companyColumns = `id, user_id, company_name, company_description, location, contact_info, created_at, updated_at`

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Location, &c.ContactInfo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) List(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]domain.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *companyRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE user_id = $1`, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// Upsert creates or overwrites the company profile (1 profile per user)
func (r *companyRepo) Upsert(ctx context.Context, company *domain.Company) error {
	now := time.Now()
	company.UpdatedAt = now

	query := `
		INSERT INTO companies (user_id, company_name, company_description, location, contact_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			company_description = EXCLUDED.company_description,
			location = EXCLUDED.location,
			contact_info = EXCLUDED.contact_info,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		company.UserID, company.Name, company.Description, company.Location, company.ContactInfo, now,
	).Scan(&company.ID, &company.CreatedAt)
}
