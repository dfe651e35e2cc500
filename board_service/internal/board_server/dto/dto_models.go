// описание моделей запросов и ответов HTTP API доски вакансий
package dto

import (
	"time"

	"jobboard/board_service/internal/domain/models"
)

// вилка оплаты в запросе
type SalaryRequest struct {
	Type          string   `json:"type" validate:"required,oneof=hourly salary contract"`
	Min           float64  `json:"min" validate:"gte=0"`
	Max           *float64 `json:"max,omitempty" validate:"omitempty,gte=0"`
	ShowOnListing *bool    `json:"showOnListing,omitempty"`
}

type LocationRequest struct {
	City   string   `json:"city" validate:"required,max=80"`
	County string   `json:"county" validate:"required,max=80"`
	Zip    string   `json:"zip,omitempty" validate:"omitempty,max=10"`
	Lat    *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lng    *float64 `json:"lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// структура запроса на создание и редактирование вакансии.
// Счётчики просмотров и откликов в запрос не входят
type JobRequest struct {
	Title            string          `json:"title" validate:"required,min=3,max=120"`
	CategoryID       string          `json:"categoryId,omitempty"`
	Description      string          `json:"description" validate:"required,max=20000"`
	Requirements     string          `json:"requirements,omitempty" validate:"max=10000"`
	Responsibilities string          `json:"responsibilities,omitempty" validate:"max=10000"`
	Salary           SalaryRequest   `json:"salary"`
	Location         LocationRequest `json:"location"`
	Remote           string          `json:"remote,omitempty" validate:"omitempty,oneof=onsite remote hybrid"`
	JobType          string          `json:"jobType" validate:"required,oneof=full-time part-time contract temporary"`
	ExperienceLevel  string          `json:"experienceLevel" validate:"required,oneof=entry intermediate experienced senior"`
	Benefits         []string        `json:"benefits,omitempty" validate:"max=30,dive,required,max=100"`
	Skills           []string        `json:"skills,omitempty" validate:"max=30,dive,required,max=60"`
	Certifications   []string        `json:"certifications,omitempty" validate:"max=30,dive,required,max=100"`

	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	ExpiresAt           *time.Time `json:"expiresAt,omitempty"`
	Urgent              bool       `json:"urgent"`
	Featured            bool       `json:"featured"`
	Status              string     `json:"status,omitempty" validate:"omitempty,oneof=draft published expired filled"`
}

// ValidateFields - проверки между полями
func (r *JobRequest) ValidateFields() map[string]string {
	errs := map[string]string{}
	if r.Salary.Max != nil && *r.Salary.Max < r.Salary.Min {
		errs["salary.max"] = "salary.max must not be less than salary.min"
	}
	if r.ExpiresAt != nil && r.ApplicationDeadline != nil && r.ApplicationDeadline.After(*r.ExpiresAt) {
		errs["applicationDeadline"] = "applicationDeadline must not be after expiresAt"
	}
	return errs
}

// массовое действие над вакансиями
type BulkJobsRequest struct {
	Action string   `json:"action" validate:"required,oneof=delete expire publish"`
	JobIDs []string `json:"jobIds" validate:"required,min=1,max=100,dive,required"`
}

// отклик из публичной формы
type ApplyRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=120"`
	Email        string `json:"email" validate:"required,email,max=254"`
	Phone        string `json:"phone" validate:"required,min=7,max=30"`
	ResumeURL    string `json:"resumeUrl,omitempty" validate:"omitempty,url"`
	LinkedInURL  string `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	CoverMessage string `json:"coverMessage,omitempty" validate:"max=5000"`
}

// изменение отклика работодателем; отсутствующее поле не меняется
type ApplicationUpdateRequest struct {
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=new reviewed interviewing hired rejected"`
	Rating      *int       `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Notes       *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
	InterviewAt *time.Time `json:"interviewAt,omitempty"`
}

// профиль компании
type CompanyRequest struct {
	Name        string            `json:"name" validate:"required,min=2,max=120"`
	Logo        string            `json:"logo,omitempty" validate:"omitempty,url"`
	Description string            `json:"description" validate:"required,max=5000"`
	Website     string            `json:"website,omitempty" validate:"omitempty,url"`
	Email       string            `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string            `json:"phone,omitempty" validate:"omitempty,max=30"`
	Size        string            `json:"size,omitempty" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 500+"`
	Locations   []LocationRequest `json:"locations,omitempty" validate:"max=20,dive"`
	Benefits    []string          `json:"benefits,omitempty" validate:"max=30,dive,required,max=100"`
}

type FollowRequest struct {
	Following *bool `json:"following" validate:"required"`
}

// ответ со списком и признаком демонстрационных данных
type ListResponse[T any] struct {
	Items    []T  `json:"items"`
	Degraded bool `json:"degraded"`
}

// ответ с одной записью и признаком демонстрационных данных
type ItemResponse[T any] struct {
	Data     T    `json:"data"`
	Degraded bool `json:"degraded"`
}

// страница компании; following заполняется только для вошедшего пользователя
type CompanyResponse struct {
	Data      models.CompanyDetails `json:"data"`
	Degraded  bool                  `json:"degraded"`
	Following *bool                 `json:"following,omitempty"`
}

type FollowResponse struct {
	CompanyID string `json:"companyId"`
	Following bool   `json:"following"`
}

// ответ после создания компании: сессия перевыпущена с новой ролью
type OnboardResponse struct {
	Company   models.Company `json:"company"`
	User      models.User    `json:"user"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
}
