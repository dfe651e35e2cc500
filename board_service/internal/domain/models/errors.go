// доменные модели доски вакансий
package models

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("authentication required")
	ErrForbidden            = errors.New("forbidden")
	ErrDuplicateApplication = errors.New("you have already applied to this job")
	ErrJobNotOpen           = errors.New("job is not open for applications")
	ErrCompanyRequired      = errors.New("employer account has no company")
	ErrAlreadyOnboarded     = errors.New("user already owns a company")
	ErrInvalidPageSize      = errors.New("page size must be positive")
	ErrInvalidInput         = errors.New("invalid input")
)
