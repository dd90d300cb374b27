package app

import (
	"net/http"
	"time"

	"github.com/folio-space/core/internal/modules/contact"
	"github.com/folio-space/core/internal/modules/content"
	"github.com/folio-space/core/internal/modules/identity"
	"github.com/folio-space/core/internal/modules/prefs"
	"github.com/folio-space/core/internal/modules/summary"
	pkgredis "github.com/folio-space/core/internal/pkg/redis"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const fallbackCookieMaxAge = 365 * 24 * 60 * 60

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "folio-core",
		"version": "1.0.0",
	}

	api := r.Group("/api/v1")

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"timestamp": time.Since(processStart).Milliseconds()})
	})

	// Preference tiers: Redis local cache, database documents as the
	// authoritative remote.
	var local prefs.LocalTier
	if rc != nil {
		local = prefs.NewRedisTier(rc)
	} else {
		local = prefs.NewMemoryTier()
	}
	var remote prefs.RemoteTier
	if a.cfg.RemoteEnabled() {
		remote = prefs.NewDocumentTier(a.db, a.cfg.AppID)
	}
	prefsMgr := prefs.NewManager(local, remote, a.logger)
	prefsHandler := prefs.NewHandler(prefsMgr, a.resolveIdentity)

	api.POST("/session", prefsHandler.Session)
	prefsHandler.RegisterRoutes(api)

	content.NewHandler(content.NewService(a.db)).RegisterRoutes(api)

	var reg *summary.Registry
	if a.cfg.SummaryEnabled() {
		client := summary.NewClient(
			a.cfg.Summary.Endpoint,
			a.cfg.Summary.APIKey,
			time.Duration(a.cfg.Summary.TimeoutSeconds)*time.Second,
		)
		reg = summary.NewRegistry(client, a.logger)
	} else {
		a.logger.Warn("summary endpoint not configured, publication summaries are disabled")
	}
	summary.NewHandler(a.db, reg).RegisterRoutes(api)

	contact.NewHandler(a.cfg.Contact.Endpoint, a.logger).RegisterRoutes(api)
}

// resolveIdentity runs the identity bootstrap chain for a request: embed
// token, then the persisted fallback cookie, then a freshly minted id.
func (a *App) resolveIdentity(c *gin.Context) string {
	return identity.Bootstrap(c.Request.Context(), identity.BootstrapOptions{
		Token:       embedToken(c),
		TokenSecret: a.cfg.EmbedTokenSecret,
		Fallback:    &cookieFallback{c: c},
		Logger:      a.logger,
	})
}

func embedToken(c *gin.Context) string {
	if token := c.GetHeader("X-Embed-Token"); token != "" {
		return token
	}
	return c.Query("token")
}

// cookieFallback persists the fallback identity in a visitor cookie.
type cookieFallback struct {
	c *gin.Context
}

func (f *cookieFallback) Load() (string, bool) {
	v, err := f.c.Cookie(identity.FallbackKey)
	return v, err == nil && v != ""
}

func (f *cookieFallback) Save(id string) {
	f.c.SetCookie(identity.FallbackKey, id, fallbackCookieMaxAge, "/", "", false, true)
}
