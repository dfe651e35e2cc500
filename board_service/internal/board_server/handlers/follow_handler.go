package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/board_service/internal/board_server/dto"
	"jobboard/board_service/internal/domain/models"
)

// GET /api/follows
func (h *BoardHandler) ListFollows(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	follows, err := h.follows.List(c.Request.Context(), ident)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[models.Follow]{Items: follows})
}

// PUT /api/follows/:companyId {"following": bool}
func (h *BoardHandler) SetFollow(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}
	req, ok := validated[dto.FollowRequest](c)
	if !ok {
		return
	}

	companyID := c.Param("companyId")
	following, err := h.follows.Set(c.Request.Context(), ident, companyID, *req.Following)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FollowResponse{CompanyID: companyID, Following: following})
}

// POST /api/follows/:companyId/toggle
func (h *BoardHandler) ToggleFollow(c *gin.Context) {
	ident, ok := h.identity(c)
	if !ok {
		return
	}

	companyID := c.Param("companyId")
	following, err := h.follows.Toggle(c.Request.Context(), ident, companyID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FollowResponse{CompanyID: companyID, Following: following})
}
