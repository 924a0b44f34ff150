package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beezen/internal/service"
)

type TicketHandler struct {
	Query  *service.TicketQueryService
	Stats  *service.StatsService
	Logger *zap.Logger
}

func (h *TicketHandler) Register(r *gin.Engine) {
	r.GET("/api/tickets", h.listTickets)
	r.GET("/api/stats/overview", h.statsOverview)
}

// @Summary List mirrored tickets and users for an instance
// @Tags tickets
// @Param instance_id query string true "instance id"
// @Success 200 {object} apiResponse
// @Router /api/tickets [get]
func (h *TicketHandler) listTickets(c *gin.Context) {
	if h.Query == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	instanceID := c.Query("instance_id")
	if instanceID == "" {
		Error(c, http.StatusBadRequest, "instance_id is required", nil)
		return
	}
	listing, err := h.Query.List(c.Request.Context(), instanceID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list tickets failed", zap.String("instance", instanceID), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, listing, map[string]any{"count": len(listing.Tickets)})
}

// @Summary Ticket aggregates for the dashboard overview
// @Tags tickets
// @Param instance_id query string true "instance id"
// @Success 200 {object} apiResponse
// @Router /api/stats/overview [get]
func (h *TicketHandler) statsOverview(c *gin.Context) {
	if h.Stats == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	instanceID := c.Query("instance_id")
	if instanceID == "" {
		Error(c, http.StatusBadRequest, "instance_id is required", nil)
		return
	}
	overview, err := h.Stats.Overview(c.Request.Context(), instanceID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, overview, nil)
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}
