package summary

import (
	"errors"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// syncWait bounds how long the action endpoint waits for an in-flight
// fetch before answering with the loading snapshot.
const syncWait = 25 * time.Second

// Handler exposes per-publication summaries. A nil registry means the
// summarization endpoint is not configured.
type Handler struct {
	db  *gorm.DB
	reg *Registry
}

func NewHandler(db *gorm.DB, reg *Registry) *Handler {
	return &Handler{db: db, reg: reg}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/publications/:id/summary")
	g.POST("", h.request)
	g.GET("", h.state)
}

// request drives the fetcher's single user-facing action. When the action
// starts a fetch, the response waits for its completion (bounded), so the
// common path returns the final Shown or Failed state.
func (h *Handler) request(c *gin.Context) {
	if h.reg == nil {
		response.ServiceUnavailable(c, "summaries are disabled")
		return
	}

	pub, err := h.lookup(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if pub == nil {
		response.NotFoundMsg(c, "publication not found")
		return
	}

	f := h.reg.ForPublication(DescriptorFromModel(pub))
	snap := f.Request(c.Request.Context())
	if snap.State != StateLoading {
		response.OK(c, snap)
		return
	}

	select {
	case <-f.Done():
		response.OK(c, f.Snapshot())
	case <-time.After(syncWait):
		response.OK(c, f.Snapshot())
	case <-c.Request.Context().Done():
		// client went away; the fetch keeps running for the next poll
		response.OK(c, snap)
	}
}

func (h *Handler) state(c *gin.Context) {
	if h.reg == nil {
		response.ServiceUnavailable(c, "summaries are disabled")
		return
	}

	pub, err := h.lookup(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if pub == nil {
		response.NotFoundMsg(c, "publication not found")
		return
	}

	f := h.reg.ForPublication(DescriptorFromModel(pub))
	response.OK(c, f.Snapshot())
}

func (h *Handler) lookup(id string) (*models.PublicationModel, error) {
	var pub models.PublicationModel
	if err := h.db.First(&pub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pub, nil
}
