package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beezen/internal/client/zendesk"
)

type AgentHandler struct {
	Zendesk *zendesk.Client
	Logger  *zap.Logger
}

func (h *AgentHandler) Register(r *gin.Engine) {
	r.GET("/api/agents/statuses", h.agentStatuses)
}

// @Summary Live agent presence
// @Description Tries each known presence endpoint in order and returns the
// @Description first shape that parses, along with which endpoint answered.
// @Tags agents
// @Param domain query string true "helpdesk domain"
// @Param X-Zendesk-Email header string true "account email"
// @Param X-Zendesk-Token header string true "API token"
// @Success 200 {object} apiResponse
// @Router /api/agents/statuses [get]
func (h *AgentHandler) agentStatuses(c *gin.Context) {
	if h.Zendesk == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	domain := c.Query("domain")
	creds := zendesk.Credentials{
		Email: c.GetHeader("X-Zendesk-Email"),
		Token: c.GetHeader("X-Zendesk-Token"),
	}
	if domain == "" || creds.Email == "" || creds.Token == "" {
		Error(c, http.StatusBadRequest, "domain, X-Zendesk-Email and X-Zendesk-Token are required", nil)
		return
	}
	result, err := h.Zendesk.FetchAgentStatuses(c.Request.Context(), domain, creds)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("agent presence fetch failed", zap.String("domain", domain), zap.Error(err))
		}
		var apiErr *zendesk.APIError
		if errors.As(err, &apiErr) {
			Error(c, apiErr.Status, err.Error(), nil)
			return
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, map[string]any{"endpoint": result.Endpoint})
}
