package prefs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, local LocalTier, remote RemoteTier, identity string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr := NewManager(local, remote, zap.NewNop())
	h := NewHandler(mgr, func(*gin.Context) string { return identity })

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/session", h.Session)
	h.RegisterRoutes(api)
	return r
}

func themeCookieValue(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == themeCookie {
			return ck.Value
		}
	}
	t.Fatal("theme cookie not set")
	return ""
}

func TestHandlerSetThenGet(t *testing.T) {
	local := NewMemoryTier()
	r := newTestRouter(t, local, nil, "visitor-1")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/preferences/dark-mode", strings.NewReader(`{"enabled":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("PATCH status = %d, want 200", rec.Code)
	}
	if got := themeCookieValue(t, rec); got != "dark" {
		t.Errorf("theme cookie = %q, want dark", got)
	}
	if v, ok := local.Read(context.Background(), "visitor-1"); !ok || !v {
		t.Errorf("local tier after set = (%v, %v), want (true, true)", v, ok)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/preferences/dark-mode", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Enabled {
		t.Error("GET enabled = false after setting true")
	}
}

func TestHandlerRejectsMissingFlag(t *testing.T) {
	r := newTestRouter(t, NewMemoryTier(), nil, "visitor-1")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/preferences/dark-mode", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerSession(t *testing.T) {
	local := NewMemoryTier()
	if err := local.Write(context.Background(), "visitor-2", true); err != nil {
		t.Fatal(err)
	}
	r := newTestRouter(t, local, nil, "visitor-2")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/session", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Identity string `json:"identity"`
		DarkMode bool   `json:"dark_mode"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Identity != "visitor-2" {
		t.Errorf("identity = %q, want visitor-2", body.Identity)
	}
	if !body.DarkMode {
		t.Error("dark_mode = false, want local tier value true")
	}
	if got := themeCookieValue(t, rec); got != "dark" {
		t.Errorf("theme cookie = %q, want dark", got)
	}
}
