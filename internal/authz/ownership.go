package authz

import (
	"errors"
	"net/http"

	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

// ErrNotOwner is wrapped by every ownership rejection.
var ErrNotOwner = errors.New("identity does not own resource")

// Ownership violations are reported as bad requests to stay compatible with
// existing clients.
func notOwner(message string) error {
	return apperror.New(http.StatusBadRequest, message, ErrNotOwner)
}

// CheckJobOwner passes when the job's company belongs to who.
func CheckJobOwner(who domain.Identity, job *domain.Job) error {
	if job == nil || job.OwnerUserID == 0 || job.OwnerUserID != who.UserID {
		return notOwner("You can only modify jobs belonging to your company")
	}
	return nil
}

// CheckCompanyOwner passes when the company profile belongs to who.
func CheckCompanyOwner(who domain.Identity, company *domain.Company) error {
	if company == nil || company.UserID != who.UserID {
		return notOwner("You can only access your own company")
	}
	return nil
}

// CheckApplicationRecruiter passes when the application targets a job owned
// by who's company.
func CheckApplicationRecruiter(who domain.Identity, app *domain.Application) error {
	if app == nil || app.RecruiterUserID == 0 || app.RecruiterUserID != who.UserID {
		return notOwner("You can only manage applications for your own jobs")
	}
	return nil
}

// CheckApplicationApplicant passes when who submitted the application.
func CheckApplicationApplicant(who domain.Identity, app *domain.Application) error {
	if app == nil || app.UserID != who.UserID {
		return notOwner("You can only access your own applications")
	}
	return nil
}
