package handlers

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobboard/board_service/internal/board_server/converters"
	"jobboard/board_service/internal/board_server/dto"
	"jobboard/board_service/internal/domain/models"
	"jobboard/shared/cookie"
)

// время жизни куки со state на время похода к провайдеру
const stateCookieMaxAge = 600

// GET /api/auth/login - редирект на страницу согласия провайдера
func (h *BoardHandler) Login(c *gin.Context) {
	if !h.oauth.Enabled() {
		c.JSON(http.StatusServiceUnavailable, APIError{Error: "sign-in is not configured"})
		return
	}

	state := uuid.NewString()
	if err := h.cookies.SetCookie(c, cookie.CookieOptions{
		Name:   h.oauth.StateCookie,
		Value:  state,
		MaxAge: stateCookieMaxAge,
	}); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.auth.LoginURL(state))
}

// GET /api/auth/callback - обмен кода, создание пользователя при первом входе, сессионная кука
func (h *BoardHandler) Callback(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		h.respondError(c, fmt.Errorf("%w: provider returned %s", models.ErrUnauthorized, providerErr))
		return
	}

	expected, err := h.cookies.GetCookie(c, h.oauth.StateCookie)
	if err != nil || subtle.ConstantTimeCompare([]byte(expected), []byte(c.Query("state"))) != 1 {
		h.respondError(c, fmt.Errorf("%w: oauth state mismatch", models.ErrUnauthorized))
		return
	}
	h.cookies.DeleteCookie(c, h.oauth.StateCookie, "")

	user, err := h.auth.CompleteLogin(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if _, err := h.startSession(c, user); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "user signed in", "user_id", user.ID, "role", user.Role)
	c.Redirect(http.StatusFound, h.oauth.AfterLogin)
}

// POST /api/auth/logout
func (h *BoardHandler) Logout(c *gin.Context) {
	h.cookies.DeleteCookie(c, h.cookies.SessionName(), "")
	c.Status(http.StatusNoContent)
}

// GET /api/auth/me
func (h *BoardHandler) Me(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	user, err := h.auth.Me(c.Request.Context(), ident)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /api/companies - пользователь без компании создаёт её; сессия перевыпускается с ролью employer
func (h *BoardHandler) Onboard(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	req, ok := validated[dto.CompanyRequest](c)
	if !ok {
		return
	}

	company, user, err := h.auth.Onboard(c.Request.Context(), ident, converters.CompanyInput(req))
	if err != nil {
		h.respondError(c, err)
		return
	}

	session, err := h.startSession(c, user)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OnboardResponse{
		Company:   company,
		User:      user,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

// PUT /api/companies/me
func (h *BoardHandler) UpdateCompany(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	req, ok := validated[dto.CompanyRequest](c)
	if !ok {
		return
	}

	company, err := h.auth.UpdateCompany(c.Request.Context(), ident, converters.CompanyInput(req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

type session struct {
	Token     string
	ExpiresAt time.Time
}

// startSession выпускает токен и кладёт его в сессионную куку
func (h *BoardHandler) startSession(c *gin.Context, user models.User) (session, error) {
	token, expiresAt, err := h.auth.IssueSession(user)
	if err != nil {
		return session{}, fmt.Errorf("failed to issue session: %w", err)
	}
	if err := h.cookies.SetCookie(c, cookie.CookieOptions{
		Name:   h.cookies.SessionName(),
		Value:  token,
		MaxAge: h.cookies.SessionMaxAge(),
	}); err != nil {
		return session{}, err
	}
	return session{Token: token, ExpiresAt: expiresAt}, nil
}
