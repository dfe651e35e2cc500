package cookie

import (
	"jobboard/shared/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSetAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := *config.DefaultCookieConfig()
	cfg.Prefix = "board"
	m := NewManager(cfg)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, m.SetCookie(c, CookieOptions{Name: m.SessionName(), Value: "tok", MaxAge: m.SessionMaxAge()}))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "board_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	// читаем куку в следующем запросе
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(cookies[0])

	value, err := m.GetCookie(c2, "session")
	require.NoError(t, err)
	assert.Equal(t, "tok", value)

	_, err = m.GetCookie(c2, "missing")
	assert.ErrorIs(t, err, ErrCookieNotFound)
}

func TestManagerSetCookieRequiresName(t *testing.T) {
	m := NewManager(*config.DefaultCookieConfig())
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Error(t, m.SetCookie(c, CookieOptions{Value: "x"}))
}
