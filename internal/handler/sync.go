package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beezen/internal/client/zendesk"
	"beezen/internal/repository"
	"beezen/internal/service"
)

type SyncHandler struct {
	Delta  *service.DeltaSyncService
	Staff  *service.StaffSyncService
	Repo   repository.Repository
	Logger *zap.Logger
}

func (h *SyncHandler) Register(r *gin.Engine) {
	group := r.Group("/api/sync")
	group.POST("", h.runDeltaSync)
	group.POST("/staff", h.runStaffSync)
	group.GET("/status", h.listSyncStatus)
	group.GET("/runs", h.listSyncRuns)
}

type syncRequest struct {
	InstanceID string `json:"instance_id" binding:"required"`
	Domain     string `json:"domain" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Token      string `json:"token" binding:"required"`
	StartTime  int64  `json:"start_time"`
}

// @Summary Run an incremental ticket sync
// @Tags sync
// @Accept json
// @Param request body syncRequest true "instance and credentials"
// @Success 200 {object} apiResponse
// @Router /api/sync [post]
func (h *SyncHandler) runDeltaSync(c *gin.Context) {
	if h.Delta == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	result, err := h.Delta.Sync(c.Request.Context(), service.SyncOptions{
		InstanceID:  req.InstanceID,
		Domain:      req.Domain,
		Credentials: zendesk.Credentials{Email: req.Email, Token: req.Token},
		StartTime:   req.StartTime,
	})
	if err != nil {
		if errors.Is(err, service.ErrSyncInProgress) {
			Error(c, http.StatusConflict, err.Error(), nil)
			return
		}
		if h.Logger != nil {
			h.Logger.Warn("delta sync failed", zap.String("instance", req.InstanceID), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

type staffSyncRequest struct {
	InstanceID string `json:"instance_id" binding:"required"`
	Domain     string `json:"domain" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Token      string `json:"token" binding:"required"`
}

// @Summary Refresh the full agent roster
// @Tags sync
// @Accept json
// @Param request body staffSyncRequest true "instance and credentials"
// @Success 200 {object} apiResponse
// @Router /api/sync/staff [post]
func (h *SyncHandler) runStaffSync(c *gin.Context) {
	if h.Staff == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req staffSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	result, err := h.Staff.Sync(c.Request.Context(), req.InstanceID, req.Domain,
		zendesk.Credentials{Email: req.Email, Token: req.Token})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("staff sync failed", zap.String("instance", req.InstanceID), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

// @Summary List per-instance sync cursors
// @Tags sync
// @Success 200 {object} apiResponse
// @Router /api/sync/status [get]
func (h *SyncHandler) listSyncStatus(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	statuses, err := h.Repo.ListSyncStatuses(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, statuses, nil)
}

// @Summary List recent sync runs
// @Tags sync
// @Param instance_id query string false "filter by instance"
// @Param limit query int false "limit"
// @Success 200 {object} apiResponse
// @Router /api/sync/runs [get]
func (h *SyncHandler) listSyncRuns(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	runs, err := h.Repo.ListSyncRuns(c.Request.Context(), c.Query("instance_id"), intQuery(c, "limit", 50))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, runs, nil)
}
