// преобразования между DTO запросов, сессией и доменными моделями
package converters

import (
	"strings"

	"jobboard/board_service/internal/board_server/dto"
	"jobboard/board_service/internal/domain/models"
	"jobboard/shared/jwt_service"
)

// IdentityFromSubject - пользователь запроса из сессионного токена
func IdentityFromSubject(s jwt_service.Subject) models.Identity {
	return models.Identity{
		ID:        s.UserID,
		Email:     s.Email,
		Role:      models.Role(s.Role),
		CompanyID: s.CompanyID,
	}
}

func JobInput(r *dto.JobRequest) models.JobDraftInput {
	showOnListing := true
	if r.Salary.ShowOnListing != nil {
		showOnListing = *r.Salary.ShowOnListing
	}
	remote := models.RemoteMode(r.Remote)
	if remote == "" {
		remote = models.RemoteOnsite
	}

	return models.JobDraftInput{
		Title:            strings.TrimSpace(r.Title),
		CategoryID:       strings.TrimSpace(r.CategoryID),
		Description:      r.Description,
		Requirements:     r.Requirements,
		Responsibilities: r.Responsibilities,
		Salary: models.Salary{
			Type:          models.SalaryType(r.Salary.Type),
			Min:           r.Salary.Min,
			Max:           r.Salary.Max,
			ShowOnListing: showOnListing,
		},
		Location:            location(r.Location),
		Remote:              remote,
		JobType:             models.JobType(r.JobType),
		ExperienceLevel:     models.ExperienceLevel(r.ExperienceLevel),
		Benefits:            nonNil(r.Benefits),
		Skills:              nonNil(r.Skills),
		Certifications:      nonNil(r.Certifications),
		ApplicationDeadline: r.ApplicationDeadline,
		StartDate:           r.StartDate,
		Urgent:              r.Urgent,
		Featured:            r.Featured,
		Status:              models.JobStatus(r.Status),
		ExpiresAt:           r.ExpiresAt,
	}
}

func ApplicationInput(r *dto.ApplyRequest) models.ApplicationInput {
	return models.ApplicationInput{
		Applicant: models.Applicant{
			Name:        strings.TrimSpace(r.Name),
			Email:       r.Email,
			Phone:       strings.TrimSpace(r.Phone),
			ResumeURL:   r.ResumeURL,
			LinkedInURL: r.LinkedInURL,
		},
		CoverMessage: r.CoverMessage,
	}
}

func ApplicationUpdate(r *dto.ApplicationUpdateRequest) models.ApplicationUpdate {
	upd := models.ApplicationUpdate{
		Rating:      r.Rating,
		Notes:       r.Notes,
		InterviewAt: r.InterviewAt,
	}
	if r.Status != nil {
		status := models.ApplicationStatus(*r.Status)
		upd.Status = &status
	}
	return upd
}

func CompanyInput(r *dto.CompanyRequest) models.CompanyInput {
	locations := make([]models.Location, 0, len(r.Locations))
	for _, l := range r.Locations {
		locations = append(locations, location(l))
	}
	return models.CompanyInput{
		Name:        strings.TrimSpace(r.Name),
		Logo:        r.Logo,
		Description: r.Description,
		Website:     r.Website,
		Email:       r.Email,
		Phone:       r.Phone,
		Size:        models.CompanySize(r.Size),
		Locations:   locations,
		Benefits:    nonNil(r.Benefits),
	}
}

func location(l dto.LocationRequest) models.Location {
	return models.Location{
		City:   strings.TrimSpace(l.City),
		County: strings.TrimSpace(l.County),
		Zip:    l.Zip,
		Lat:    l.Lat,
		Lng:    l.Lng,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
