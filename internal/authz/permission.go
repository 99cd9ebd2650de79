// Package authz holds the role permission table and the per-resource
// ownership checks applied by the usecases.
package authz

import (
	"errors"
	"net/http"

	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type Operation string

const (
	OpJobCreate               Operation = "job:create"
	OpJobUpdate               Operation = "job:update"
	OpJobDelete               Operation = "job:delete"
	OpApplicationList         Operation = "application:list"
	OpApplicationSubmit       Operation = "application:submit"
	OpApplicationUpdateStatus Operation = "application:update-status"
	OpApplicationExport       Operation = "application:export"
	OpCompanyReadOwn          Operation = "company:read-own"
	OpCompanySave             Operation = "company:save"
	OpResumeReadOwn           Operation = "resume:read-own"
	OpResumeSave              Operation = "resume:save"
	OpResumeReadByUser        Operation = "resume:read-by-user"
	OpMessageRead             Operation = "message:read"
	OpMessageSend             Operation = "message:send"
	OpChatConnect             Operation = "chat:connect"
)

var ErrForbidden = errors.New("operation not permitted for role")

var (
	jobSeeker = domain.RoleJobSeeker
	recruiter = domain.RoleRecruiter
)

// permissions is the allow list. Anything absent is denied.
var permissions = map[Operation]map[domain.Role]bool{
	OpJobCreate:               {recruiter: true},
	OpJobUpdate:               {recruiter: true},
	OpJobDelete:               {recruiter: true},
	OpApplicationList:         {jobSeeker: true, recruiter: true},
	OpApplicationSubmit:       {jobSeeker: true},
	OpApplicationUpdateStatus: {recruiter: true},
	OpApplicationExport:       {recruiter: true},
	OpCompanyReadOwn:          {recruiter: true},
	OpCompanySave:             {recruiter: true},
	OpResumeReadOwn:           {jobSeeker: true},
	OpResumeSave:              {jobSeeker: true},
	OpResumeReadByUser:        {recruiter: true},
	OpMessageRead:             {jobSeeker: true, recruiter: true},
	OpMessageSend:             {jobSeeker: true, recruiter: true},
	OpChatConnect:             {jobSeeker: true, recruiter: true},
}

// Allowed reports whether role may perform op.
func Allowed(role domain.Role, op Operation) bool {
	return permissions[op][role]
}

// Require returns a 403 AppError when role may not perform op.
func Require(role domain.Role, op Operation) error {
	if Allowed(role, op) {
		return nil
	}
	return apperror.New(http.StatusForbidden, "Access denied", ErrForbidden)
}

// Operations lists every operation in the table.
func Operations() []Operation {
	ops := make([]Operation, 0, len(permissions))
	for op := range permissions {
		ops = append(ops, op)
	}
	return ops
}
