package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/board_service/internal/board_server/converters"
	"jobboard/board_service/internal/board_server/dto"
	"jobboard/board_service/internal/domain/models"
)

// GET /api/jobs - все вакансии компании работодателя
func (h *BoardHandler) ListOwnJobs(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	jobs, err := h.jobs.ListOwn(c.Request.Context(), ident)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[models.Job]{Items: jobs})
}

func (h *BoardHandler) CreateJob(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	req, ok := validated[dto.JobRequest](c)
	if !ok {
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), ident, converters.JobInput(req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *BoardHandler) GetOwnJob(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	job, err := h.jobs.Get(c.Request.Context(), ident, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *BoardHandler) UpdateJob(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	req, ok := validated[dto.JobRequest](c)
	if !ok {
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), ident, c.Param("id"), converters.JobInput(req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *BoardHandler) DeleteJob(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), ident, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/jobs/bulk - всё или ничего
func (h *BoardHandler) BulkJobs(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	req, ok := validated[dto.BulkJobsRequest](c)
	if !ok {
		return
	}

	result, err := h.jobs.Bulk(c.Request.Context(), ident, models.BulkAction(req.Action), req.JobIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
