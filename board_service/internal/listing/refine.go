package listing

import (
	"strings"

	"jobboard/board_service/internal/domain/models"
	"jobboard/board_service/internal/fuzzy"
)

// JobSearchFields - веса полей вакансии для нечёткого поиска по странице
var JobSearchFields = []fuzzy.Field[models.Job]{
	{Name: "title", Weight: 0.45, Value: func(j models.Job) string { return j.Title }},
	{Name: "company", Weight: 0.30, Value: func(j models.Job) string {
		if j.Company == nil {
			return ""
		}
		return j.Company.Name
	}},
	{Name: "location", Weight: 0.15, Value: func(j models.Job) string {
		return strings.Join([]string{j.Location.City, j.Location.County}, " ")
	}},
	{Name: "description", Weight: 0.10, Value: func(j models.Job) string { return j.Description }},
}

// NewJobIndex - индекс нечёткого поиска по загруженной странице вакансий
func NewJobIndex(threshold float64) *fuzzy.Index[models.Job] {
	return fuzzy.NewIndex(JobSearchFields, fuzzy.Options{Threshold: threshold})
}
