package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/board_service/internal/board_server/converters"
	"jobboard/board_service/internal/board_server/dto"
	"jobboard/board_service/internal/domain/models"
	"jobboard/shared/middleware"
)

// GET /api/public/jobs - листинг с фильтрами и уточнением q по странице
func (h *BoardHandler) ListJobs(c *gin.Context) {
	filter, err := models.ParseJobFilter(c.Request.URL.Query(), h.listing.DefaultPageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}

	listing, err := h.public.ListJobs(c.Request.Context(), filter, c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	markDegraded(c, listing.Degraded)
	c.JSON(http.StatusOK, listing)
}

// GET /api/public/jobs/:slug
func (h *BoardHandler) GetJob(c *gin.Context) {
	details, degraded, err := h.public.GetJob(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	markDegraded(c, degraded)
	c.JSON(http.StatusOK, dto.ItemResponse[models.JobDetails]{Data: details, Degraded: degraded})
}

// POST /api/public/jobs/:slug/apply
func (h *BoardHandler) Apply(c *gin.Context) {
	req, ok := validated[dto.ApplyRequest](c)
	if !ok {
		return
	}

	app, err := h.applications.Apply(c.Request.Context(), c.Param("slug"), converters.ApplicationInput(req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *BoardHandler) ListCompanies(c *gin.Context) {
	companies, degraded, err := h.public.ListCompanies(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	markDegraded(c, degraded)
	c.JSON(http.StatusOK, dto.ListResponse[models.Company]{Items: companies, Degraded: degraded})
}

func (h *BoardHandler) GetCompany(c *gin.Context) {
	details, degraded, err := h.public.GetCompany(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	markDegraded(c, degraded)

	resp := dto.CompanyResponse{Data: details, Degraded: degraded}
	if subject, ok := middleware.GetSession(c); ok && !degraded {
		following, err := h.follows.Get(c.Request.Context(), converters.IdentityFromSubject(subject), details.Company.ID)
		if err != nil {
			h.logger.WarnContext(c.Request.Context(), "follow state unavailable", "company_id", details.Company.ID, "error", err)
		} else {
			resp.Following = &following
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BoardHandler) ListCategories(c *gin.Context) {
	categories, degraded, err := h.public.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	markDegraded(c, degraded)
	c.JSON(http.StatusOK, dto.ListResponse[models.Category]{Items: categories, Degraded: degraded})
}
