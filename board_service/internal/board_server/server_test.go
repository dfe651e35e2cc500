package board_server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/board_service/configs"
	"jobboard/board_service/internal/board_server/handlers"
	"jobboard/board_service/internal/board_server/repository"
	"jobboard/board_service/internal/board_server/service"
	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/docstore/memstore"
	"jobboard/board_service/internal/domain/models"
	"jobboard/board_service/internal/sampledata"
	"jobboard/board_service/internal/stats"
	"jobboard/shared/config"
	"jobboard/shared/cookie"
	"jobboard/shared/jwt_service"
)

// outageStore - хранилище, которое по флагу перестаёт отвечать на чтения
type outageStore struct {
	docstore.Store
	down atomic.Bool
}

var errOutage = errors.New("connection refused")

func (s *outageStore) Fetch(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	if s.down.Load() {
		return nil, errOutage
	}
	return s.Store.Fetch(ctx, q)
}

func (s *outageStore) Count(ctx context.Context, q docstore.Query) (int, error) {
	if s.down.Load() {
		return 0, errOutage
	}
	return s.Store.Count(ctx, q)
}

type passBreaker struct{}

func (passBreaker) Execute(fn func() error) error { return fn() }

type testEnv struct {
	server   *BoardServer
	store    *outageStore
	repo     *repository.BoardRepository
	tokens   *jwt_service.JWTService
	company  models.Company
	other    models.Company
	employer string
	seeker   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := &outageStore{Store: memstore.New()}
	repo, err := repository.NewBoardRepository(store)
	require.NoError(t, err)
	sample, err := sampledata.NewStore(time.Now())
	require.NoError(t, err)
	fallback, err := repository.NewBoardRepository(sample)
	require.NoError(t, err)

	company, err := repo.Companies.Create(ctx, "owner-1", models.CompanyInput{Name: "Valley Fabrication", Description: "Steel"})
	require.NoError(t, err)
	other, err := repo.Companies.Create(ctx, "owner-2", models.CompanyInput{Name: "Kings Logistics", Description: "Freight"})
	require.NoError(t, err)
	seekerUser, _, err := repo.Users.FindOrCreate(ctx, "seeker@example.com", "Sam Keller")
	require.NoError(t, err)

	tokens := jwt_service.NewJWTService(&jwt_service.JWTConfig{
		SecretKey:       "0123456789abcdef0123456789abcdef",
		Issuer:          "test",
		SessionTokenExp: time.Hour,
	})
	cookies := cookie.NewManager(*config.DefaultCookieConfig())
	listingConf := configs.UseDefaultListingConfig()
	statsConf := configs.UseDefaultStatsConfig()
	oauthConf := configs.UseDefaultOAuthConfig()

	engine := stats.NewEngine(repo, sampledata.StatsSource{}, time.UTC, logger)
	services := handlers.Services{
		Public:       service.NewPublicService(repo, fallback, passBreaker{}, nil, listingConf, logger),
		Jobs:         service.NewJobService(repo, nil, logger),
		Applications: service.NewApplicationService(repo, nil, logger),
		Dashboard:    service.NewDashboardService(engine, statsConf, logger),
		Auth:         service.NewAuthService(repo, nil, oauthConf, tokens, nil, logger),
		Follows:      service.NewFollowService(repo, logger),
	}
	handler := handlers.NewBoardHandler(services, cookies, oauthConf, listingConf, logger)

	cfg := &configs.BoardServiceConfig{CORSOrigins: []string{"*"}, ServerConf: config.UseDefaultServerConfig()}
	server, err := NewBoardServer(ctx, cfg, handler, tokens, cookies)
	require.NoError(t, err)
	server.SetUpRoutes()

	employer, _, err := tokens.GenerateSessionToken(jwt_service.Subject{UserID: "owner-1", Email: "boss@valley.test", Role: "employer", CompanyID: company.ID})
	require.NoError(t, err)
	seeker, _, err := tokens.GenerateSessionToken(jwt_service.Subject{UserID: seekerUser.ID, Email: seekerUser.Email, Role: "jobseeker"})
	require.NoError(t, err)

	return &testEnv{
		server:   server,
		store:    store,
		repo:     repo,
		tokens:   tokens,
		company:  company,
		other:    other,
		employer: employer,
		seeker:   seeker,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.server.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) job(t *testing.T, companyID, title string, status models.JobStatus) models.Job {
	t.Helper()
	job, err := e.repo.Jobs.Create(context.Background(), companyID, models.JobDraftInput{
		Title: title, Description: "Shop work", JobType: models.JobFullTime, Status: status,
	})
	require.NoError(t, err)
	return job
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func validJob() map[string]any {
	return map[string]any{
		"title":           "MIG Welder",
		"description":     "Weld structural steel",
		"salary":          map[string]any{"type": "hourly", "min": 28, "max": 38},
		"location":        map[string]any{"city": "Fresno", "county": "Fresno County"},
		"jobType":         "full-time",
		"experienceLevel": "experienced",
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployerRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"jobs without session", http.MethodGet, "/api/jobs", "", http.StatusUnauthorized},
		{"jobs as jobseeker", http.MethodGet, "/api/jobs", env.seeker, http.StatusForbidden},
		{"jobs as employer", http.MethodGet, "/api/jobs", env.employer, http.StatusOK},
		{"dashboard without session", http.MethodGet, "/api/dashboard", "", http.StatusUnauthorized},
		{"dashboard as jobseeker", http.MethodGet, "/api/dashboard", env.seeker, http.StatusForbidden},
		{"dashboard bad days", http.MethodGet, "/api/dashboard?days=abc", env.employer, http.StatusBadRequest},
		{"applications as employer", http.MethodGet, "/api/applications", env.employer, http.StatusOK},
		{"applications unknown status", http.MethodGet, "/api/applications?status=lost", env.employer, http.StatusBadRequest},
		{"follows without session", http.MethodGet, "/api/follows", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestCreateJobValidation(t *testing.T) {
	env := newTestEnv(t)

	invalid := validJob()
	delete(invalid, "title")
	invalid["salary"] = map[string]any{"type": "hourly", "min": 40, "max": 30}

	w := env.do(t, http.MethodPost, "/api/jobs", env.employer, invalid)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "salary.max")

	w = env.do(t, http.MethodPost, "/api/jobs", env.employer, validJob())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "draft", created["status"])
	assert.Equal(t, env.company.ID, created["companyId"])
	assert.EqualValues(t, 0, created["viewCount"])
}

func TestJobOwnership(t *testing.T) {
	env := newTestEnv(t)
	foreign := env.job(t, env.other.ID, "Driver", models.JobPublished)

	w := env.do(t, http.MethodGet, "/api/jobs/"+foreign.ID, env.employer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, "/api/jobs/"+foreign.ID, env.employer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/jobs/missing", env.employer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decode(t, w)["error"])
}

func TestBulkIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	own := env.job(t, env.company.ID, "Welder", models.JobDraft)
	foreign := env.job(t, env.other.ID, "Driver", models.JobDraft)

	w := env.do(t, http.MethodPost, "/api/jobs/bulk", env.employer, map[string]any{
		"action": "publish",
		"jobIds": []string{own.ID, foreign.ID},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	for _, id := range []string{own.ID, foreign.ID} {
		job, err := env.repo.Jobs.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.JobDraft, job.Status)
		assert.Nil(t, job.PublishedAt)
	}

	w = env.do(t, http.MethodPost, "/api/jobs/bulk", env.employer, map[string]any{"action": "archive", "jobIds": []string{own.ID}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/jobs/bulk", env.employer, map[string]any{"action": "publish", "jobIds": []string{own.ID}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["affected"])
}

func TestApplyDuplicate(t *testing.T) {
	env := newTestEnv(t)
	job := env.job(t, env.company.ID, "Welder", models.JobPublished)
	payload := map[string]any{"name": "Luis Ortega", "email": "luis@example.com", "phone": "559-555-0101"}

	w := env.do(t, http.MethodPost, "/api/public/jobs/"+job.Slug+"/apply", "", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	payload["email"] = "LUIS@example.com"
	w = env.do(t, http.MethodPost, "/api/public/jobs/"+job.Slug+"/apply", "", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/api/public/jobs/"+job.Slug+"/apply", "", map[string]any{"name": "X", "email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicListing(t *testing.T) {
	env := newTestEnv(t)
	env.job(t, env.company.ID, "Welder", models.JobPublished)
	env.job(t, env.company.ID, "Draft", models.JobDraft)

	w := env.do(t, http.MethodGet, "/api/public/jobs?pageSize=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(handlers.DegradedHeader))
	body := decode(t, w)
	assert.EqualValues(t, 1, body["total"])
	assert.Equal(t, false, body["degraded"])

	w = env.do(t, http.MethodGet, "/api/public/jobs?pageSize=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.store.down.Store(true)
	w = env.do(t, http.MethodGet, "/api/public/jobs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get(handlers.DegradedHeader))
	assert.Equal(t, true, decode(t, w)["degraded"])
}

func TestOnboardReissuesSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/companies", env.seeker, map[string]any{"name": "Fresno Bakery", "description": "Bread"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Result().Cookies())

	body := decode(t, w)
	token, _ := body["token"].(string)
	claims, err := env.tokens.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "employer", claims.Role)
	assert.NotEmpty(t, claims.CompanyID)

	w = env.do(t, http.MethodPost, "/api/companies", token, map[string]any{"name": "Second", "description": "Again"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginDisabledWithoutClient(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/auth/login", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCompanyPageFollowState(t *testing.T) {
	env := newTestEnv(t)
	path := "/api/public/companies/" + env.company.Slug

	w := env.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, decode(t, w), "following")

	w = env.do(t, http.MethodPut, "/api/follows/"+env.company.ID, env.seeker, map[string]any{"following": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, path, env.seeker, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["following"])

	w = env.do(t, http.MethodPost, "/api/follows/"+env.company.ID+"/toggle", env.seeker, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["following"])
}
