package models

import "time"

type ApplicationStatus string

const (
	ApplicationNew          ApplicationStatus = "new"
	ApplicationReviewed     ApplicationStatus = "reviewed"
	ApplicationInterviewing ApplicationStatus = "interviewing"
	ApplicationHired        ApplicationStatus = "hired"
	ApplicationRejected     ApplicationStatus = "rejected"
)

// Applicant - данные соискателя
type Applicant struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ResumeURL   string `json:"resumeUrl,omitempty"`
	LinkedInURL string `json:"linkedinUrl,omitempty"`
}

// JobRef - краткие данные вакансии внутри отклика
type JobRef struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	CompanyID string `json:"companyId"`
}

// структура отклика на вакансию
type Application struct {
	ID           string            `json:"id"`
	JobID        string            `json:"jobId"`
	Job          *JobRef           `json:"job,omitempty"`
	Applicant    Applicant         `json:"applicant"`
	CoverMessage string            `json:"coverMessage,omitempty"`
	Status       ApplicationStatus `json:"status"`
	Rating       int               `json:"rating"`
	AppliedAt    time.Time         `json:"appliedAt"`
	Notes        string            `json:"notes,omitempty"`
	InterviewAt  *time.Time        `json:"interviewAt,omitempty"`
}

// ApplicationInput - отклик из публичной формы
type ApplicationInput struct {
	Applicant    Applicant
	CoverMessage string
}

// ApplicationUpdate - изменения отклика работодателем; nil - поле не меняется
type ApplicationUpdate struct {
	Status      *ApplicationStatus
	Rating      *int
	Notes       *string
	InterviewAt *time.Time
}

// ApplicationFilter - выборка откликов работодателя
type ApplicationFilter struct {
	JobID  string
	Status ApplicationStatus
}
