// демонстрационный набор данных: подставляется на публичных страницах и в дашборде,
// когда хранилище недоступно (ответ помечается degraded), и загружается командой seed
package sampledata

import (
	"strconv"
	"time"

	"jobboard/board_service/internal/domain/models"
)

// IDPrefix - все идентификаторы демонстрационных документов начинаются с него
const IDPrefix = "sample-"

type category struct {
	slug, name, description string
}

type company struct {
	slug, name, city, county, description string
	size                                  models.CompanySize
	verified                              bool
}

type job struct {
	slug, title, company, category string
	city, county                   string
	jobType                        models.JobType
	level                          models.ExperienceLevel
	remote                         models.RemoteMode
	salaryType                     models.SalaryType
	min, max                       float64
	status                         models.JobStatus
	featured, urgent               bool
	publishedDaysAgo               int
	views                          int
	description                    string
	skills                         []string
}

type application struct {
	job, name, email, phone string
	status                  models.ApplicationStatus
	rating                  int
	daysAgo                 int
	interviewAfterDays      int // 0 - интервью не назначено
}

var categories = []category{
	{"skilled-trades", "Skilled Trades", "Welding, fabrication, machining and maintenance"},
	{"healthcare", "Healthcare", "Clinical and care roles"},
	{"logistics", "Logistics & Warehouse", "Distribution, driving and warehouse work"},
	{"office-admin", "Office & Administration", "Front office, billing and scheduling"},
}

var companies = []company{
	{"central-valley-fabrication", "Central Valley Fabrication", "Fresno", "Fresno County", "Structural steel and custom fabrication shop.", models.SizeSmall, true},
	{"sierra-health-partners", "Sierra Health Partners", "Visalia", "Tulare County", "Regional clinic network.", models.SizeMedium, true},
	{"kings-river-logistics", "Kings River Logistics", "Hanford", "Kings County", "Regional distribution and trucking.", models.SizeLarge, false},
}

var jobs = []job{
	{"mig-welder", "MIG Welder", "central-valley-fabrication", "skilled-trades", "Fresno", "Fresno County", models.JobFullTime, models.LevelExperienced, models.RemoteOnsite, models.SalaryHourly, 28, 38, models.JobPublished, true, false, 2, 340, "Weld structural steel assemblies from blueprints.", []string{"MIG", "blueprint reading"}},
	{"cnc-machinist", "CNC Machinist", "central-valley-fabrication", "skilled-trades", "Fresno", "Fresno County", models.JobFullTime, models.LevelIntermediate, models.RemoteOnsite, models.SalaryHourly, 25, 32, models.JobPublished, false, true, 5, 210, "Set up and run Haas mills.", []string{"CNC", "G-code"}},
	{"maintenance-tech", "Maintenance Technician", "central-valley-fabrication", "skilled-trades", "Clovis", "Fresno County", models.JobFullTime, models.LevelSenior, models.RemoteOnsite, models.SalaryAnnual, 62000, 78000, models.JobFilled, false, false, 40, 95, "Keep presses and cranes running.", []string{"PLC", "hydraulics"}},
	{"registered-nurse", "Registered Nurse", "sierra-health-partners", "healthcare", "Visalia", "Tulare County", models.JobFullTime, models.LevelExperienced, models.RemoteOnsite, models.SalaryHourly, 52, 68, models.JobPublished, true, true, 1, 520, "Outpatient clinic RN, day shift.", []string{"BLS", "EHR"}},
	{"medical-assistant", "Medical Assistant", "sierra-health-partners", "healthcare", "Tulare", "Tulare County", models.JobPartTime, models.LevelEntry, models.RemoteOnsite, models.SalaryHourly, 19, 23, models.JobPublished, false, false, 9, 180, "Room patients and take vitals.", []string{"phlebotomy"}},
	{"billing-specialist", "Medical Billing Specialist", "sierra-health-partners", "office-admin", "Visalia", "Tulare County", models.JobFullTime, models.LevelIntermediate, models.RemoteHybrid, models.SalaryAnnual, 45000, 52000, models.JobDraft, false, false, 0, 0, "Claims submission and follow-up.", []string{"ICD-10"}},
	{"class-a-driver", "Class A Driver", "kings-river-logistics", "logistics", "Hanford", "Kings County", models.JobFullTime, models.LevelExperienced, models.RemoteOnsite, models.SalaryAnnual, 70000, 85000, models.JobPublished, false, true, 3, 260, "Regional routes, home most nights.", []string{"CDL-A"}},
	{"warehouse-associate", "Warehouse Associate", "kings-river-logistics", "logistics", "Lemoore", "Kings County", models.JobTemporary, models.LevelEntry, models.RemoteOnsite, models.SalaryHourly, 18, 0, models.JobPublished, false, false, 12, 150, "Pick, pack and load outbound orders.", []string{"forklift"}},
}

var applications = []application{
	{"mig-welder", "Luis Ortega", "luis.ortega@example.com", "559-555-0101", models.ApplicationNew, 0, 0, 0},
	{"mig-welder", "Dana Whitfield", "dana.w@example.com", "559-555-0102", models.ApplicationReviewed, 4, 1, 0},
	{"mig-welder", "Sam Keller", "sam.keller@example.com", "559-555-0103", models.ApplicationInterviewing, 5, 3, 5},
	{"mig-welder", "Priya Natarajan", "priya.n@example.com", "559-555-0104", models.ApplicationHired, 5, 12, 6},
	{"cnc-machinist", "Marco Reyes", "marco.reyes@example.com", "559-555-0105", models.ApplicationNew, 0, 2, 0},
	{"cnc-machinist", "Jo Fenwick", "jo.fenwick@example.com", "559-555-0106", models.ApplicationRejected, 2, 6, 0},
	{"maintenance-tech", "Grace Liu", "grace.liu@example.com", "559-555-0107", models.ApplicationHired, 4, 30, 9},
	{"registered-nurse", "Hannah Brooks", "hannah.brooks@example.com", "559-555-0108", models.ApplicationInterviewing, 4, 1, 2},
	{"registered-nurse", "Tomás Silva", "tomas.silva@example.com", "559-555-0109", models.ApplicationNew, 0, 0, 0},
	{"registered-nurse", "Alicia Moore", "alicia.moore@example.com", "559-555-0110", models.ApplicationHired, 5, 20, 4},
	{"medical-assistant", "Kevin Tran", "kevin.tran@example.com", "559-555-0111", models.ApplicationReviewed, 3, 8, 0},
	{"class-a-driver", "Ray Jackson", "ray.jackson@example.com", "559-555-0112", models.ApplicationNew, 0, 1, 0},
	{"class-a-driver", "Maria Delgado", "maria.delgado@example.com", "559-555-0113", models.ApplicationReviewed, 3, 4, 0},
	{"warehouse-associate", "Ben Carter", "ben.carter@example.com", "559-555-0114", models.ApplicationNew, 0, 10, 0},
}

func categoryID(slug string) string { return IDPrefix + "category-" + slug }
func companyID(slug string) string  { return IDPrefix + "company-" + slug }
func jobID(slug string) string      { return IDPrefix + "job-" + slug }
func applicationID(i int) string    { return IDPrefix + "application-" + strconv.Itoa(i+1) }

// время демонстрационных документов округляется до часа
func truncHour(t time.Time) time.Time { return t.Truncate(time.Hour) }

// Categories - демонстрационные категории с посчитанным числом публичных вакансий
func Categories() []models.Category {
	counts := map[string]int{}
	for _, j := range jobs {
		if j.status == models.JobPublished {
			counts[j.category]++
		}
	}

	out := make([]models.Category, len(categories))
	for i, c := range categories {
		out[i] = models.Category{
			ID:          categoryID(c.slug),
			Name:        c.name,
			Slug:        c.slug,
			Description: c.description,
			JobCount:    counts[c.slug],
		}
	}
	return out
}

// Companies - демонстрационные компании
func Companies() []models.Company {
	out := make([]models.Company, len(companies))
	for i, c := range companies {
		out[i] = models.Company{
			ID:          companyID(c.slug),
			Name:        c.name,
			Slug:        c.slug,
			Description: c.description,
			Size:        c.size,
			Locations:   []models.Location{{City: c.city, County: c.county}},
			Benefits:    []string{},
			Verified:    c.verified,
		}
	}
	return out
}

// Jobs - демонстрационные вакансии со ссылками на компании и категории
func Jobs(now time.Time) []models.Job {
	companyBySlug := map[string]company{}
	for _, c := range companies {
		companyBySlug[c.slug] = c
	}
	categoryBySlug := map[string]category{}
	for _, c := range categories {
		categoryBySlug[c.slug] = c
	}
	appCounts := map[string]int{}
	for _, a := range applications {
		appCounts[a.job]++
	}

	out := make([]models.Job, len(jobs))
	for i, j := range jobs {
		out[i] = buildJob(j, now)
		out[i].ApplicationCount = appCounts[j.slug]

		c := companyBySlug[j.company]
		out[i].Company = &models.CompanyRef{ID: companyID(c.slug), Name: c.name, Slug: c.slug, Verified: c.verified}
		cat := categoryBySlug[j.category]
		out[i].Category = &models.CategoryRef{ID: categoryID(cat.slug), Name: cat.name, Slug: cat.slug}
	}
	return out
}

func buildJob(j job, now time.Time) models.Job {
	var salaryMax *float64
	if j.max > 0 {
		v := j.max
		salaryMax = &v
	}

	out := models.Job{
		ID:              jobID(j.slug),
		Title:           j.title,
		Slug:            j.slug,
		CompanyID:       companyID(j.company),
		CategoryID:      categoryID(j.category),
		Description:     j.description,
		Salary:          models.Salary{Type: j.salaryType, Min: j.min, Max: salaryMax, ShowOnListing: true},
		Location:        models.Location{City: j.city, County: j.county},
		Remote:          j.remote,
		JobType:         j.jobType,
		ExperienceLevel: j.level,
		Benefits:        []string{},
		Skills:          append([]string(nil), j.skills...),
		Certifications:  []string{},
		Urgent:          j.urgent,
		Featured:        j.featured,
		Status:          j.status,
		ViewCount:       j.views,
		CreatedAt:       truncHour(now).AddDate(0, 0, -j.publishedDaysAgo-1),
	}
	if j.status != models.JobDraft {
		published := truncHour(now).AddDate(0, 0, -j.publishedDaysAgo)
		out.PublishedAt = &published
	}
	out.UpdatedAt = out.CreatedAt
	return out
}

// Applications - демонстрационные отклики, время отсчитывается от now
func Applications(now time.Time) []models.Application {
	titles := map[string]string{}
	for _, j := range jobs {
		titles[j.slug] = j.title
	}

	out := make([]models.Application, len(applications))
	for i, a := range applications {
		out[i] = buildApplication(i, a, now)
		out[i].Job = &models.JobRef{ID: jobID(a.job), Title: titles[a.job], Slug: a.job}
	}
	return out
}

func buildApplication(i int, a application, now time.Time) models.Application {
	applied := truncHour(now).AddDate(0, 0, -a.daysAgo)
	out := models.Application{
		ID:    applicationID(i),
		JobID: jobID(a.job),
		Applicant: models.Applicant{
			Name:  a.name,
			Email: a.email,
			Phone: a.phone,
		},
		Status:    a.status,
		Rating:    a.rating,
		AppliedAt: applied,
	}
	if a.interviewAfterDays > 0 {
		interview := applied.AddDate(0, 0, a.interviewAfterDays)
		out.InterviewAt = &interview
	}
	return out
}
