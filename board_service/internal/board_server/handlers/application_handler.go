package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobboard/board_service/internal/board_server/converters"
	"jobboard/board_service/internal/board_server/dto"
	"jobboard/board_service/internal/domain/models"
)

var applicationStatuses = map[models.ApplicationStatus]struct{}{
	models.ApplicationNew:          {},
	models.ApplicationReviewed:     {},
	models.ApplicationInterviewing: {},
	models.ApplicationHired:        {},
	models.ApplicationRejected:     {},
}

// GET /api/applications?jobId=&status=
func (h *BoardHandler) ListApplications(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}

	filter := models.ApplicationFilter{
		JobID:  c.Query("jobId"),
		Status: models.ApplicationStatus(c.Query("status")),
	}
	if filter.Status != "" {
		if _, known := applicationStatuses[filter.Status]; !known {
			h.respondError(c, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, filter.Status))
			return
		}
	}

	apps, err := h.applications.List(c.Request.Context(), ident, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[models.Application]{Items: apps})
}

// PATCH /api/applications/:id
func (h *BoardHandler) UpdateApplication(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	req, ok := validated[dto.ApplicationUpdateRequest](c)
	if !ok {
		return
	}

	app, err := h.applications.Update(c.Request.Context(), ident, c.Param("id"), converters.ApplicationUpdate(req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// GET /api/dashboard?days=30&top=5
func (h *BoardHandler) Dashboard(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}

	days, err := queryInt(c, "days")
	if err != nil {
		h.respondError(c, err)
		return
	}
	top, err := queryInt(c, "top")
	if err != nil {
		h.respondError(c, err)
		return
	}

	d, err := h.dashboard.Dashboard(c.Request.Context(), ident, days, top)
	if err != nil {
		h.respondError(c, err)
		return
	}
	markDegraded(c, d.Degraded())
	c.JSON(http.StatusOK, d)
}

// queryInt - необязательный целый параметр; отсутствие даёт 0
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", models.ErrInvalidInput, name)
	}
	return n, nil
}
