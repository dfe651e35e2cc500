// построение и выполнение запросов публичного листинга вакансий
package listing

import (
	"fmt"
	"time"

	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/domain/docmap"
	"jobboard/board_service/internal/domain/models"
)

// JobQueries - запрос страницы и запрос количества с общим предикатом
type JobQueries struct {
	Page  docstore.Query
	Count docstore.Query
}

// JobOrder - фиксированная сортировка листинга; хранилище добавляет порядок вставки последним ключом
var JobOrder = []docstore.Order{
	{Field: "featured", Desc: true},
	{Field: "urgent", Desc: true},
	{Field: "publishedAt", Desc: true},
}

// PublicJobPredicate - вакансия опубликована и не истекла на момент $now
func PublicJobPredicate() docstore.Expr {
	return docstore.And{
		docstore.Eq("status", "status"),
		docstore.Or{
			docstore.Not{X: docstore.Defined{Field: "expiresAt"}},
			docstore.Gt("expiresAt", "now"),
		},
	}
}

// PublicJobParams - параметры для PublicJobPredicate
func PublicJobParams(now time.Time) docstore.Params {
	return docstore.Params{
		"status": string(models.JobPublished),
		"now":    now,
	}
}

// BuildJobQueries строит оба запроса из одного фрагмента предиката.
// Фильтр не валидируется: неизвестное значение перечисления просто ничего не найдёт
func BuildJobQueries(f models.JobFilter, now time.Time) (JobQueries, error) {
	if f.PageSize <= 0 {
		return JobQueries{}, fmt.Errorf("%w: got %d", models.ErrInvalidPageSize, f.PageSize)
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	filter := docstore.And{PublicJobPredicate()}
	params := PublicJobParams(now)

	if v, ok := f.Category.Get(); ok {
		filter = append(filter, docstore.Eq("category->slug", "category"))
		params["category"] = v
	}
	if v, ok := f.Location.Get(); ok {
		filter = append(filter, docstore.Or{
			docstore.Eq("location.city", "location"),
			docstore.Eq("location.county", "location"),
		})
		params["location"] = v
	}
	if v, ok := f.JobType.Get(); ok {
		filter = append(filter, docstore.Eq("jobType", "jobType"))
		params["jobType"] = string(v)
	}
	if v, ok := f.ExperienceLevel.Get(); ok {
		filter = append(filter, docstore.Eq("experienceLevel", "experienceLevel"))
		params["experienceLevel"] = string(v)
	}
	if v, ok := f.SalaryMin.Get(); ok {
		filter = append(filter, docstore.Gte("salary.min", "salaryMin"))
		params["salaryMin"] = v
	}
	if v, ok := f.Search.Get(); ok {
		filter = append(filter, docstore.Or{
			docstore.Match{Field: "title", Param: "search"},
			docstore.Match{Field: "company->name", Param: "search"},
		})
		params["search"] = "*" + v + "*"
	}

	pageQuery := docstore.Query{
		Type:   models.DocJob,
		Filter: filter,
		Order:  JobOrder,
		Offset: (page - 1) * f.PageSize,
		Limit:  f.PageSize,
		Params: params,
		Expand: docmap.JobRefs,
	}

	return JobQueries{
		Page:  pageQuery,
		Count: pageQuery.CountQuery(),
	}, nil
}

// Pages - число страниц, ceil(total / pageSize)
func Pages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
