package prefs

import (
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// themeCookie is the visual mode marker the page root reads. It mirrors
// every change of the flag, including the initial load.
const themeCookie = "theme"

const themeCookieMaxAge = 365 * 24 * 60 * 60

type setDarkModeDTO struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// Handler exposes the dark-mode preference over HTTP. Identity resolution
// is supplied by the app layer.
type Handler struct {
	mgr     *Manager
	resolve func(*gin.Context) string
}

func NewHandler(mgr *Manager, resolve func(*gin.Context) string) *Handler {
	return &Handler{mgr: mgr, resolve: resolve}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/preferences")
	g.GET("/dark-mode", h.get)
	g.PATCH("/dark-mode", h.set)
	g.POST("/dark-mode", h.set)
}

// Session bootstraps the visitor: resolves an identity, loads its
// preferences and reports both. The app layer binds it to POST /session.
func (h *Handler) Session(c *gin.Context) {
	identity := h.resolve(c)
	store := h.mgr.ForIdentity(c.Request.Context(), identity)
	enabled := store.Get()
	applyThemeMarker(c, enabled)
	response.OK(c, gin.H{"identity": identity, "dark_mode": enabled})
}

func (h *Handler) get(c *gin.Context) {
	identity := h.resolve(c)
	store := h.mgr.ForIdentity(c.Request.Context(), identity)
	enabled := store.Get()
	applyThemeMarker(c, enabled)
	response.OK(c, gin.H{"enabled": enabled})
}

func (h *Handler) set(c *gin.Context) {
	var dto setDarkModeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "enabled must be a boolean")
		return
	}

	identity := h.resolve(c)
	store := h.mgr.ForIdentity(c.Request.Context(), identity)
	store.Set(c.Request.Context(), *dto.Enabled)
	applyThemeMarker(c, *dto.Enabled)
	response.OK(c, gin.H{"enabled": *dto.Enabled})
}

func applyThemeMarker(c *gin.Context, enabled bool) {
	theme := "light"
	if enabled {
		theme = "dark"
	}
	c.SetCookie(themeCookie, theme, themeCookieMaxAge, "/", "", false, false)
}
