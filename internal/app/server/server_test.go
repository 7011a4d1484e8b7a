package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cdentertainment/site-api/config"
	"github.com/cdentertainment/site-api/internal/http/util"
	"github.com/gofiber/fiber/v2"
)

func TestServer_HealthAndRequestID(t *testing.T) {
	srv := New(Dependencies{})

	resp, err := srv.App().Test(httptest.NewRequest(fiber.MethodGet, "/health", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Fatal("expected a request id header")
	}
}

func TestServer_ModerationRoutesNeedStaffToken(t *testing.T) {
	cfg := &config.Config{Admin: config.AdminConfig{TokenSecret: "s3cret", TokenTTL: time.Hour}}
	srv := New(Dependencies{Config: cfg})

	routes := []struct{ method, path string }{
		{fiber.MethodPut, "/api/song-requests/1"},
		{fiber.MethodDelete, "/api/song-requests/1"},
		{fiber.MethodDelete, "/api/song-requests"},
		{fiber.MethodPut, "/api/song-requests/setting"},
		{fiber.MethodGet, "/api/admin/settings"},
		{fiber.MethodGet, "/api/admin/contact-submissions"},
		{fiber.MethodGet, "/api/intake"},
		{fiber.MethodPut, "/api/about"},
	}
	for _, r := range routes {
		resp, err := srv.App().Test(httptest.NewRequest(r.method, r.path, nil), -1)
		if err != nil {
			t.Fatalf("%s %s: %v", r.method, r.path, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", r.method, r.path, resp.StatusCode)
		}
	}
}

func TestServer_ForgedTokenRejected(t *testing.T) {
	cfg := &config.Config{Admin: config.AdminConfig{TokenSecret: "s3cret", TokenTTL: time.Hour}}
	srv := New(Dependencies{Config: cfg})

	forged, _, err := util.NewTokenSigner([]byte("other"), time.Hour).Issue("cd")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodDelete, "/api/song-requests", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+forged)
	resp, err := srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
