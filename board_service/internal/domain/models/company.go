package models

import "time"

type CompanySize string

const (
	SizeMicro      CompanySize = "1-10"
	SizeSmall      CompanySize = "11-50"
	SizeMedium     CompanySize = "51-200"
	SizeLarge      CompanySize = "201-500"
	SizeEnterprise CompanySize = "500+"
)

// структура компании-работодателя
type Company struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Logo        string      `json:"logo,omitempty"`
	Description string      `json:"description"`
	Website     string      `json:"website,omitempty"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Size        CompanySize `json:"size,omitempty"`
	Locations   []Location  `json:"locations"`
	Benefits    []string    `json:"benefits"`
	Verified    bool        `json:"verified"`
	OwnerID     string      `json:"ownerId"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// CompanyInput - редактируемые поля профиля компании
type CompanyInput struct {
	Name        string
	Logo        string
	Description string
	Website     string
	Email       string
	Phone       string
	Size        CompanySize
	Locations   []Location
	Benefits    []string
}

// CompanyDetails - компания вместе с открытыми вакансиями
type CompanyDetails struct {
	Company
	OpenJobs []Job `json:"openJobs"`
}

// структура категории; JobCount вычисляется, не хранится
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	JobCount    int    `json:"jobCount"`
}
