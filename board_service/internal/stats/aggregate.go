// агрегированная статистика дашборда работодателя
package stats

import (
	"math"
	"sort"
	"time"

	"jobboard/board_service/internal/domain/models"
)

// NewApplicationsWindow - отклик считается новым в течение этого окна
const NewApplicationsWindow = 7 * 24 * time.Hour

const trendDateLayout = "2006-01-02"

// Overview - сводка по вакансиям и откликам одной компании
func Overview(jobs []models.Job, apps []models.Application, now time.Time) models.DashboardOverview {
	o := models.DashboardOverview{
		TotalJobs:         len(jobs),
		TotalApplications: len(apps),
		AverageTimeToHire: AverageTimeToHire(apps),
	}

	for _, j := range jobs {
		if j.Status == models.JobPublished {
			o.ActiveJobs++
		}
		o.TotalViews += j.ViewCount
	}

	since := now.Add(-NewApplicationsWindow)
	for _, a := range apps {
		if a.AppliedAt.After(since) && !a.AppliedAt.After(now) {
			o.NewApplications++
		}
	}

	o.ConversionRate = ConversionRate(o.TotalApplications, o.TotalViews)
	return o
}

// AverageTimeToHire - среднее целых дней от отклика до интервью по нанятым; 0 без наймов
func AverageTimeToHire(apps []models.Application) int {
	var (
		total float64
		hires int
	)
	for _, a := range apps {
		if a.Status != models.ApplicationHired || a.InterviewAt == nil {
			continue
		}
		days := math.Floor(a.InterviewAt.Sub(a.AppliedAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
		total += days
		hires++
	}
	if hires == 0 {
		return 0
	}
	return int(math.Round(total / float64(hires)))
}

// ConversionRate - applications / views * 100; 0 при нуле просмотров
func ConversionRate(applications, views int) float64 {
	if views <= 0 {
		return 0
	}
	return float64(applications) / float64(views) * 100
}

// TopJobs - n вакансий с наибольшим числом просмотров; при равенстве порядок входа
func TopJobs(jobs []models.Job, n int) []models.JobPerformance {
	sorted := make([]models.Job, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ViewCount > sorted[j].ViewCount
	})

	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}

	out := make([]models.JobPerformance, len(sorted))
	for i, j := range sorted {
		out[i] = models.JobPerformance{
			JobID:          j.ID,
			Title:          j.Title,
			Slug:           j.Slug,
			Status:         j.Status,
			Views:          j.ViewCount,
			Applications:   j.ApplicationCount,
			ConversionRate: ConversionRate(j.ApplicationCount, j.ViewCount),
		}
	}
	return out
}

// ApplicationTrend - ровно days точек по календарным дням в loc, от старых к новым,
// сегодняшний день включён, дни без откликов заполнены нулями
func ApplicationTrend(apps []models.Application, days int, now time.Time, loc *time.Location) []models.TrendPoint {
	if days <= 0 {
		return []models.TrendPoint{}
	}
	if loc == nil {
		loc = time.UTC
	}

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	points := make([]models.TrendPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-days+1).Format(trendDateLayout)
		points[i] = models.TrendPoint{Date: date}
		index[date] = i
	}

	for _, a := range apps {
		if i, ok := index[a.AppliedAt.In(loc).Format(trendDateLayout)]; ok {
			points[i].Count++
		}
	}
	return points
}

// RecentActivity - n последних откликов, новые первыми
func RecentActivity(jobs []models.Job, apps []models.Application, n int) []models.ActivityItem {
	titles := make(map[string]string, len(jobs))
	for _, j := range jobs {
		titles[j.ID] = j.Title
	}

	sorted := make([]models.Application, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AppliedAt.After(sorted[j].AppliedAt)
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}

	out := make([]models.ActivityItem, len(sorted))
	for i, a := range sorted {
		out[i] = models.ActivityItem{
			ApplicationID: a.ID,
			JobID:         a.JobID,
			JobTitle:      titles[a.JobID],
			ApplicantName: a.Applicant.Name,
			Status:        a.Status,
			AppliedAt:     a.AppliedAt,
		}
	}
	return out
}
