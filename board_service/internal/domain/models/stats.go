package models

import "time"

// DashboardOverview - сводные показатели компании
type DashboardOverview struct {
	TotalJobs         int     `json:"totalJobs"`
	ActiveJobs        int     `json:"activeJobs"`
	TotalApplications int     `json:"totalApplications"`
	NewApplications   int     `json:"newApplications"`
	TotalViews        int     `json:"totalViews"`
	AverageTimeToHire int     `json:"averageTimeToHire"` // дни
	ConversionRate    float64 `json:"conversionRate"`    // проценты
}

// JobPerformance - показатели одной вакансии для топа
type JobPerformance struct {
	JobID          string    `json:"jobId"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Status         JobStatus `json:"status"`
	Views          int       `json:"views"`
	Applications   int       `json:"applications"`
	ConversionRate float64   `json:"conversionRate"`
}

// TrendPoint - число откликов за календарный день YYYY-MM-DD
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ActivityItem - последний отклик в ленте активности
type ActivityItem struct {
	ApplicationID string            `json:"applicationId"`
	JobID         string            `json:"jobId"`
	JobTitle      string            `json:"jobTitle"`
	ApplicantName string            `json:"applicantName"`
	Status        ApplicationStatus `json:"status"`
	AppliedAt     time.Time         `json:"appliedAt"`
}

// DashboardSection - раздел дашборда со своим признаком деградации
type DashboardSection[T any] struct {
	Data     T    `json:"data"`
	Degraded bool `json:"degraded"`
}

// Dashboard - все разделы дашборда работодателя
type Dashboard struct {
	Overview       DashboardSection[DashboardOverview] `json:"overview"`
	RecentActivity DashboardSection[[]ActivityItem]    `json:"recentActivity"`
	TopJobs        DashboardSection[[]JobPerformance]  `json:"topJobs"`
	Trend          DashboardSection[[]TrendPoint]      `json:"trend"`
}

// Degraded - хотя бы один раздел построен на демонстрационных данных
func (d Dashboard) Degraded() bool {
	return d.Overview.Degraded || d.RecentActivity.Degraded || d.TopJobs.Degraded || d.Trend.Degraded
}
