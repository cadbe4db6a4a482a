package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
)

type activityHandler struct {
	activityService portssvc.ActivityFeedSvc
}

func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivityFeedSvc) {
	h := &activityHandler{activityService: activityService}

	activity := rg.Group("/activity")
	{
		activity.GET("", h.listFeed)
		activity.POST("/read-all", h.markAllRead)
		activity.POST("/:activityID/read", h.markRead)
	}
}

// listFeed godoc
// @Summary Activity feed
// @Description Recent actions in the shops the caller can access, newest first.
// @Tags activity
// @Produce json
// @Param shopID query string false "Restrict to one shop"
// @Param unreadOnly query bool false "Only unread entries"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListActivityResponse
// @Security BearerAuth
// @Router /activity [get]
func (h *activityHandler) listFeed(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListActivityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	entries, err := h.activityService.ListFeed(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to load activity")
		return
	}

	unread := 0
	for _, e := range entries {
		if !e.IsRead {
			unread++
		}
	}
	c.JSON(http.StatusOK, dto.ListActivityResponse{Activities: entries, Unread: unread})
}

// markRead godoc
// @Summary Mark an activity entry read
// @Tags activity
// @Param activityID path string true "Activity ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /activity/{activityID}/read [post]
func (h *activityHandler) markRead(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.activityService.MarkRead(c.Request.Context(), c.Param("activityID"), userID); err != nil {
		respondError(c, err, "Failed to mark activity read")
		return
	}
	c.Status(http.StatusNoContent)
}

// markAllRead godoc
// @Summary Mark all activity read
// @Tags activity
// @Accept json
// @Produce json
// @Param request body dto.MarkAllReadRequest false "Optional shop filter"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /activity/read-all [post]
func (h *activityHandler) markAllRead(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.MarkAllReadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err, "request format")
			return
		}
	}

	count, err := h.activityService.MarkAllRead(c.Request.Context(), req.ShopID, userID)
	if err != nil {
		respondError(c, err, "Failed to mark activity read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": count})
}
