package handler

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProxyHandler is the thin passthrough the browser uses for remote calls it
// cannot make directly (CORS). Method, body and response status/body are
// forwarded verbatim; the only rewriting is credential injection.
type ProxyHandler struct {
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func (h *ProxyHandler) Register(r *gin.Engine) {
	r.Any("/api/proxy", h.proxy)
}

// @Summary Forward a request to a remote API with injected credentials
// @Tags proxy
// @Param url query string true "target url"
// @Param X-Zendesk-Email header string false "basic auth email"
// @Param X-Zendesk-Token header string false "basic auth token"
// @Param X-OpenAI-Key header string false "bearer key"
// @Success 200 {string} string "upstream body"
// @Router /api/proxy [get]
func (h *ProxyHandler) proxy(c *gin.Context) {
	targetURL := c.Query("url")
	if targetURL == "" {
		Error(c, http.StatusBadRequest, "url is required", nil)
		return
	}

	var body io.Reader
	if c.Request.Body != nil && c.Request.Method != http.MethodGet {
		body = c.Request.Body
	}
	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, targetURL, body)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	// Which credential headers are present decides the auth scheme.
	if email, token := c.GetHeader("X-Zendesk-Email"), c.GetHeader("X-Zendesk-Token"); email != "" && token != "" {
		basic := base64.StdEncoding.EncodeToString([]byte(email + "/token:" + token))
		req.Header.Set("Authorization", "Basic "+basic)
	}
	if key := c.GetHeader("X-OpenAI-Key"); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	client := h.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("proxy request failed", zap.String("url", targetURL), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	c.Data(resp.StatusCode, "application/json", payload)
}
