package middleware

import (
	"encoding/json"
	"jobboard/shared/config"
	"jobboard/shared/cookie"
	"jobboard/shared/jwt_service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokens() *jwt_service.JWTService {
	return jwt_service.NewJWTService(&jwt_service.JWTConfig{
		SecretKey:       "0123456789abcdef0123456789abcdef",
		Issuer:          "test",
		SessionTokenExp: time.Hour,
	})
}

func TestSessionAuthAndRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := newTokens()
	cookies := cookie.NewManager(*config.DefaultCookieConfig())

	router := gin.New()
	router.GET("/employer", SessionAuth(tokens, cookies), RequireRole("employer"), func(c *gin.Context) {
		subject, _ := GetSession(c)
		c.JSON(http.StatusOK, gin.H{"company": subject.CompanyID})
	})

	employerToken, _, err := tokens.GenerateSessionToken(jwt_service.Subject{UserID: "u1", Email: "e@x.test", Role: "employer", CompanyID: "c1"})
	require.NoError(t, err)
	seekerToken, _, err := tokens.GenerateSessionToken(jwt_service.Subject{UserID: "u2", Email: "s@x.test", Role: "jobseeker"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
	}{
		{"no credentials", "", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", "", http.StatusUnauthorized},
		{"wrong role", "Bearer " + seekerToken, "", http.StatusForbidden},
		{"employer header", "Bearer " + employerToken, "", http.StatusOK},
		{"employer cookie", "", employerToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/employer", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "c1", body["company"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

type testPayload struct {
	Title     string   `json:"title" validate:"required,min=3"`
	Email     string   `json:"email" validate:"required,email"`
	SalaryMin *float64 `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax *float64 `json:"salaryMax" validate:"omitempty,gte=0"`
}

func (p *testPayload) ValidateFields() map[string]string {
	if p.SalaryMin != nil && p.SalaryMax != nil && *p.SalaryMax < *p.SalaryMin {
		return map[string]string{"salaryMax": "salaryMax must not be less than salaryMin"}
	}
	return nil
}

func TestValidateJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/", ValidateJSON(&testPayload{}), func(c *gin.Context) {
		data, _ := c.Get(ValidatedDataKey)
		c.JSON(http.StatusOK, data)
	})

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantDetails map[string]string
	}{
		{"valid", `{"title":"Welder","email":"a@b.test"}`, http.StatusOK, nil},
		{"broken json", `{"title":`, http.StatusBadRequest, nil},
		{
			"field errors",
			`{"title":"ab","email":"nope"}`,
			http.StatusBadRequest,
			map[string]string{"title": "title must be at least 3", "email": "email must be a valid email address"},
		},
		{
			"struct level",
			`{"title":"Welder","email":"a@b.test","salaryMin":30,"salaryMax":20}`,
			http.StatusBadRequest,
			map[string]string{"salaryMax": "salaryMax must not be less than salaryMin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantDetails != nil {
				var body struct {
					Error   string            `json:"error"`
					Details map[string]string `json:"details"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "validation failed", body.Error)
				assert.Equal(t, tt.wantDetails, body.Details)
			}
		})
	}
}

func TestCheckBearerFormat(t *testing.T) {
	token, err := CheckBearerFormat("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = CheckBearerFormat("Bearer ")
	assert.Error(t, err)
}
