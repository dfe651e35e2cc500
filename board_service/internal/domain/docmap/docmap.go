// преобразование документов хранилища в доменные модели и обратно
package docmap

import (
	"time"

	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/domain/models"
)

// JobRefs - ссылки вакансии, которые разворачиваются при чтении
var JobRefs = []string{"company", "category"}

func JobFromDocument(d docstore.Document) models.Job {
	j := models.Job{
		ID:               d.ID,
		Title:            d.String("title"),
		Slug:             d.String("slug"),
		CompanyID:        d.String("company"),
		CategoryID:       d.String("category"),
		Description:      d.String("description"),
		Requirements:     d.String("requirements"),
		Responsibilities: d.String("responsibilities"),
		Salary: models.Salary{
			Type:          models.SalaryType(d.String("salary.type")),
			Min:           d.Float("salary.min"),
			Max:           optionalFloat(d, "salary.max"),
			ShowOnListing: d.Bool("salary.showOnListing"),
		},
		Location:            locationFromMap(d.Map("location")),
		Remote:              models.RemoteMode(d.String("remote")),
		JobType:             models.JobType(d.String("jobType")),
		ExperienceLevel:     models.ExperienceLevel(d.String("experienceLevel")),
		Benefits:            d.Strings("benefits"),
		Skills:              d.Strings("skills"),
		Certifications:      d.Strings("certifications"),
		ApplicationDeadline: d.Time("applicationDeadline"),
		StartDate:           d.Time("startDate"),
		Urgent:              d.Bool("urgent"),
		Featured:            d.Bool("featured"),
		Status:              models.JobStatus(d.String("status")),
		ViewCount:           d.Int("viewCount"),
		ApplicationCount:    d.Int("applicationCount"),
		PublishedAt:         d.Time("publishedAt"),
		ExpiresAt:           d.Time("expiresAt"),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}

	if c, ok := d.Ref("company"); ok {
		j.Company = &models.CompanyRef{
			ID:       c.ID,
			Name:     c.String("name"),
			Slug:     c.String("slug"),
			Logo:     c.String("logo"),
			Verified: c.Bool("verified"),
		}
	}
	if c, ok := d.Ref("category"); ok {
		j.Category = &models.CategoryRef{ID: c.ID, Name: c.String("name"), Slug: c.String("slug")}
	}
	return j
}

func JobsFromDocuments(docs []docstore.Document) []models.Job {
	out := make([]models.Job, len(docs))
	for i, d := range docs {
		out[i] = JobFromDocument(d)
	}
	return out
}

// JobFields - поля, которые пишет работодатель; счётчики и publishedAt сюда не входят
func JobFields(in models.JobDraftInput) map[string]any {
	salary := map[string]any{
		"type":          string(in.Salary.Type),
		"min":           in.Salary.Min,
		"showOnListing": in.Salary.ShowOnListing,
	}
	if in.Salary.Max != nil {
		salary["max"] = *in.Salary.Max
	}

	return map[string]any{
		"title":               in.Title,
		"category":            nullIfEmpty(in.CategoryID),
		"description":         in.Description,
		"requirements":        in.Requirements,
		"responsibilities":    in.Responsibilities,
		"salary":              salary,
		"location":            LocationFields(in.Location),
		"remote":              string(in.Remote),
		"jobType":             string(in.JobType),
		"experienceLevel":     string(in.ExperienceLevel),
		"benefits":            stringList(in.Benefits),
		"skills":              stringList(in.Skills),
		"certifications":      stringList(in.Certifications),
		"applicationDeadline": in.ApplicationDeadline,
		"startDate":           in.StartDate,
		"urgent":              in.Urgent,
		"featured":            in.Featured,
		"status":              string(in.Status),
		"expiresAt":           in.ExpiresAt,
	}
}

func CompanyFromDocument(d docstore.Document) models.Company {
	c := models.Company{
		ID:          d.ID,
		Name:        d.String("name"),
		Slug:        d.String("slug"),
		Logo:        d.String("logo"),
		Description: d.String("description"),
		Website:     d.String("website"),
		Email:       d.String("email"),
		Phone:       d.String("phone"),
		Size:        models.CompanySize(d.String("size")),
		Benefits:    d.Strings("benefits"),
		Verified:    d.Bool("verified"),
		OwnerID:     d.String("owner"),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}

	raw, _ := d.Fields["locations"].([]any)
	c.Locations = make([]models.Location, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			c.Locations = append(c.Locations, locationFromMap(m))
		}
	}
	return c
}

// CompanyFields - редактируемые поля профиля компании
func CompanyFields(in models.CompanyInput) map[string]any {
	locations := make([]any, len(in.Locations))
	for i, l := range in.Locations {
		locations[i] = LocationFields(l)
	}
	return map[string]any{
		"name":        in.Name,
		"logo":        in.Logo,
		"description": in.Description,
		"website":     in.Website,
		"email":       in.Email,
		"phone":       in.Phone,
		"size":        string(in.Size),
		"locations":   locations,
		"benefits":    stringList(in.Benefits),
	}
}

func CategoryFromDocument(d docstore.Document) models.Category {
	return models.Category{
		ID:          d.ID,
		Name:        d.String("name"),
		Slug:        d.String("slug"),
		Description: d.String("description"),
	}
}

func ApplicationFromDocument(d docstore.Document) models.Application {
	a := models.Application{
		ID:    d.ID,
		JobID: d.String("job"),
		Applicant: models.Applicant{
			Name:        d.String("applicantName"),
			Email:       d.String("applicantEmail"),
			Phone:       d.String("applicantPhone"),
			ResumeURL:   d.String("resumeUrl"),
			LinkedInURL: d.String("linkedinUrl"),
		},
		CoverMessage: d.String("coverMessage"),
		Status:       models.ApplicationStatus(d.String("status")),
		Rating:       d.Int("rating"),
		Notes:        d.String("notes"),
		InterviewAt:  d.Time("interviewAt"),
	}
	if t := d.Time("appliedAt"); t != nil {
		a.AppliedAt = *t
	} else {
		a.AppliedAt = d.CreatedAt
	}

	if j, ok := d.Ref("job"); ok {
		a.Job = &models.JobRef{
			ID:        j.ID,
			Title:     j.String("title"),
			Slug:      j.String("slug"),
			CompanyID: j.String("company"),
		}
	}
	return a
}

func ApplicationsFromDocuments(docs []docstore.Document) []models.Application {
	out := make([]models.Application, len(docs))
	for i, d := range docs {
		out[i] = ApplicationFromDocument(d)
	}
	return out
}

// ApplicationFields - новый отклик; статус new, рейтинг 0
func ApplicationFields(jobID string, in models.ApplicationInput, appliedAt time.Time) map[string]any {
	return map[string]any{
		"job":            jobID,
		"applicantName":  in.Applicant.Name,
		"applicantEmail": in.Applicant.Email,
		"applicantPhone": in.Applicant.Phone,
		"resumeUrl":      in.Applicant.ResumeURL,
		"linkedinUrl":    in.Applicant.LinkedInURL,
		"coverMessage":   in.CoverMessage,
		"status":         string(models.ApplicationNew),
		"rating":         0,
		"appliedAt":      appliedAt,
		"notes":          "",
	}
}

func UserFromDocument(d docstore.Document) models.User {
	return models.User{
		ID:        d.ID,
		Email:     d.String("email"),
		Name:      d.String("name"),
		Role:      models.Role(d.String("role")),
		CompanyID: d.String("company"),
		CreatedAt: d.CreatedAt,
	}
}

func FollowFromDocument(d docstore.Document) models.Follow {
	return models.Follow{
		UserID:    d.String("user"),
		CompanyID: d.String("company"),
		CreatedAt: d.CreatedAt,
	}
}

func LocationFields(l models.Location) map[string]any {
	out := map[string]any{
		"city":   l.City,
		"county": l.County,
		"zip":    l.Zip,
	}
	if l.Lat != nil {
		out["lat"] = *l.Lat
	}
	if l.Lng != nil {
		out["lng"] = *l.Lng
	}
	return out
}

func locationFromMap(m map[string]any) models.Location {
	d := docstore.Document{Fields: m}
	return models.Location{
		City:   d.String("city"),
		County: d.String("county"),
		Zip:    d.String("zip"),
		Lat:    optionalFloat(d, "lat"),
		Lng:    optionalFloat(d, "lng"),
	}
}

func optionalFloat(d docstore.Document, field string) *float64 {
	if !d.Has(field) {
		return nil
	}
	v := d.Float(field)
	return &v
}

func stringList(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
