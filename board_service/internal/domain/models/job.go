package models

import "time"

// типы документов в хранилище
const (
	DocJob         = "job"
	DocCompany     = "company"
	DocCategory    = "category"
	DocApplication = "application"
	DocUser        = "user"
	DocFollow      = "follow"
)

type JobStatus string

const (
	JobDraft     JobStatus = "draft"
	JobPublished JobStatus = "published"
	JobExpired   JobStatus = "expired"
	JobFilled    JobStatus = "filled"
)

type SalaryType string

const (
	SalaryHourly   SalaryType = "hourly"
	SalaryAnnual   SalaryType = "salary"
	SalaryContract SalaryType = "contract"
)

type RemoteMode string

const (
	RemoteOnsite RemoteMode = "onsite"
	RemoteFull   RemoteMode = "remote"
	RemoteHybrid RemoteMode = "hybrid"
)

type JobType string

const (
	JobFullTime  JobType = "full-time"
	JobPartTime  JobType = "part-time"
	JobContract  JobType = "contract"
	JobTemporary JobType = "temporary"
)

type ExperienceLevel string

const (
	LevelEntry        ExperienceLevel = "entry"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelExperienced  ExperienceLevel = "experienced"
	LevelSenior       ExperienceLevel = "senior"
)

// Salary - вилка оплаты; Max необязателен
type Salary struct {
	Type          SalaryType `json:"type"`
	Min           float64    `json:"min"`
	Max           *float64   `json:"max,omitempty"`
	ShowOnListing bool       `json:"showOnListing"`
}

// Location - адрес вакансии или офиса компании
type Location struct {
	City   string   `json:"city"`
	County string   `json:"county"`
	Zip    string   `json:"zip,omitempty"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

// CompanyRef - краткие данные компании внутри вакансии
type CompanyRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Logo     string `json:"logo,omitempty"`
	Verified bool   `json:"verified"`
}

// CategoryRef - краткие данные категории внутри вакансии
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// структура вакансии
type Job struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Slug             string       `json:"slug"`
	CompanyID        string       `json:"companyId"`
	Company          *CompanyRef  `json:"company,omitempty"`
	CategoryID       string       `json:"categoryId,omitempty"`
	Category         *CategoryRef `json:"category,omitempty"`
	Description      string       `json:"description"`
	Requirements     string       `json:"requirements,omitempty"`
	Responsibilities string       `json:"responsibilities,omitempty"`

	Salary          Salary          `json:"salary"`
	Location        Location        `json:"location"`
	Remote          RemoteMode      `json:"remote"`
	JobType         JobType         `json:"jobType"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	Benefits        []string        `json:"benefits"`
	Skills          []string        `json:"skills"`
	Certifications  []string        `json:"certifications"`

	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	Urgent              bool       `json:"urgent"`
	Featured            bool       `json:"featured"`
	Status              JobStatus  `json:"status"`

	// счётчики меняет только система
	ViewCount        int `json:"viewCount"`
	ApplicationCount int `json:"applicationCount"`

	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsPublic - вакансия видна публично: опубликована и не истекла
func (j Job) IsPublic(now time.Time) bool {
	if j.Status != JobPublished {
		return false
	}
	return j.ExpiresAt == nil || j.ExpiresAt.After(now)
}

// JobDraftInput - поля вакансии, которые заполняет работодатель
type JobDraftInput struct {
	Title               string
	CategoryID          string
	Description         string
	Requirements        string
	Responsibilities    string
	Salary              Salary
	Location            Location
	Remote              RemoteMode
	JobType             JobType
	ExperienceLevel     ExperienceLevel
	Benefits            []string
	Skills              []string
	Certifications      []string
	ApplicationDeadline *time.Time
	StartDate           *time.Time
	Urgent              bool
	Featured            bool
	Status              JobStatus
	ExpiresAt           *time.Time
}

// BulkAction - массовое действие над вакансиями
type BulkAction string

const (
	BulkDelete  BulkAction = "delete"
	BulkExpire  BulkAction = "expire"
	BulkPublish BulkAction = "publish"
)

// BulkResult - итог массового действия
type BulkResult struct {
	Action   BulkAction `json:"action"`
	Affected int        `json:"affected"`
}

// JobDetails - публичная страница вакансии с похожими вакансиями
type JobDetails struct {
	Job     Job   `json:"job"`
	Related []Job `json:"related"`
}
