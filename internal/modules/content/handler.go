package content

import (
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.profile)
	rg.GET("/projects", h.projects)
	rg.GET("/publications", h.publications)
	rg.GET("/publications/:id", h.publication)
}

func wantsHTML(c *gin.Context) bool {
	return c.Query("render") == "html"
}

func (h *Handler) profile(c *gin.Context) {
	p, err := h.svc.Profile()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	if wantsHTML(c) {
		p.Bio = renderMarkdown(p.Bio)
	}
	response.OK(c, p)
}

func (h *Handler) projects(c *gin.Context) {
	items, err := h.svc.ListProjects()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if wantsHTML(c) {
		for i := range items {
			items[i].Text = renderMarkdown(items[i].Text)
		}
	}
	if items == nil {
		items = []models.ProjectModel{}
	}
	response.OK(c, items)
}

func (h *Handler) publications(c *gin.Context) {
	items, err := h.svc.ListPublications()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if items == nil {
		items = []models.PublicationModel{}
	}
	response.OK(c, items)
}

func (h *Handler) publication(c *gin.Context) {
	p, err := h.svc.GetPublication(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFoundMsg(c, "publication not found")
		return
	}
	response.OK(c, p)
}
