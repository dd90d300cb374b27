// Package contact forwards contact-form submissions to the third-party
// form-collection service. No mailbox logic lives here.
package contact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type submissionDTO struct {
	Name    string `json:"name"    binding:"required"`
	Email   string `json:"email"   binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type Handler struct {
	endpoint string
	http     *http.Client
	log      *zap.Logger
}

func NewHandler(endpoint string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		endpoint: strings.TrimSpace(endpoint),
		http:     &http.Client{Timeout: 15 * time.Second},
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.submit)
}

func (h *Handler) submit(c *gin.Context) {
	if h.endpoint == "" {
		response.ServiceUnavailable(c, "contact form is disabled")
		return
	}

	var dto submissionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, "name, email and message are required")
		return
	}

	body, _ := json.Marshal(dto)
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.http.Do(req)
	if err != nil {
		h.log.Warn("contact forward failed", zap.Error(err))
		response.ServiceUnavailable(c, "could not deliver your message, please try again later")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.log.Warn("contact forward rejected",
			zap.Int("status", resp.StatusCode))
		response.ServiceUnavailable(c, fmt.Sprintf("form service answered %d", resp.StatusCode))
		return
	}

	response.OK(c, gin.H{"delivered": true})
}
