package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

// JobFilter - публичный фильтр вакансий; None означает "фильтр не задан",
// поэтому пустая строка и ноль не путаются с реальными значениями
type JobFilter struct {
	Category        mo.Option[string]
	Location        mo.Option[string]
	JobType         mo.Option[JobType]
	ExperienceLevel mo.Option[ExperienceLevel]
	SalaryMin       mo.Option[int]
	Search          mo.Option[string]
	Page            int
	PageSize        int
}

// ParseJobFilter разбирает query-параметры листинга.
// Пустые значения и salaryMin=0 дают None; некорректная страница приводится к 1
func ParseJobFilter(values url.Values, defaultPageSize int) (JobFilter, error) {
	f := JobFilter{
		Category:        optionalString(values.Get("category")),
		Location:        optionalString(values.Get("location")),
		JobType:         mo.None[JobType](),
		ExperienceLevel: mo.None[ExperienceLevel](),
		SalaryMin:       mo.None[int](),
		Search:          optionalString(values.Get("search")),
		Page:            1,
		PageSize:        defaultPageSize,
	}

	if v := strings.TrimSpace(values.Get("jobType")); v != "" {
		f.JobType = mo.Some(JobType(v))
	}
	if v := strings.TrimSpace(values.Get("experienceLevel")); v != "" {
		f.ExperienceLevel = mo.Some(ExperienceLevel(v))
	}

	if v := strings.TrimSpace(values.Get("salaryMin")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return JobFilter{}, fmt.Errorf("%w: salaryMin must be a non-negative integer", ErrInvalidInput)
		}
		if n > 0 {
			f.SalaryMin = mo.Some(n)
		}
	}

	if v := strings.TrimSpace(values.Get("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			f.Page = n
		}
	}

	if v := strings.TrimSpace(values.Get("pageSize")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return JobFilter{}, fmt.Errorf("%w: pageSize must be an integer", ErrInvalidInput)
		}
		f.PageSize = n
	}

	return f, nil
}

func optionalString(v string) mo.Option[string] {
	v = strings.TrimSpace(v)
	if v == "" {
		return mo.None[string]()
	}
	return mo.Some(v)
}

// JobPage - страница результатов листинга
type JobPage struct {
	Items    []Job `json:"items"`
	Total    int   `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Pages    int   `json:"pages"`
}

// JobListing - страница листинга для ответа.
// RefinedWithinPage - Items отфильтрованы нечётким поиском только внутри этой страницы,
// Total и Pages по-прежнему относятся к серверному фильтру
type JobListing struct {
	JobPage
	Degraded          bool `json:"degraded"`
	RefinedWithinPage bool `json:"refinedWithinPage"`
}
