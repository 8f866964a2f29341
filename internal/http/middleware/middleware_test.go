package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardapi/internal/auth"
	"boardapi/internal/logging"
	"boardapi/internal/rbac"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/projects", func(c *fiber.Ctx) error {
		return c.SendString(RequestIDFrom(c))
	})

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when absent"},
		{name: "propagated from caller", incoming: "edge-7f3a9c", keep: true},
		{name: "oversized is replaced", incoming: strings.Repeat("x", maxRequestIDLen+1)},
		{name: "whitespace is replaced", incoming: "abc def"},
		{name: "non ascii is replaced", incoming: "id-\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/projects", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)

			got := resp.Header.Get(RequestIDHeader)
			assert.Equal(t, got, string(body), "handler sees the echoed id")
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	loc := time.UTC

	app.Use(RequestID())
	app.Use(AccessLog(logging.New(&buf, "info", loc)))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
	assert.Equal(t, "info", logData["level"])
}

func TestLogger_ErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(AccessLog(logging.New(&buf, "info", time.UTC)))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "gone")
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/boom", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, float64(fiber.StatusNotFound), logData["status"])
	assert.Equal(t, "warning", logData["level"])
}

func newTestIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	iss, err := auth.NewTokenIssuer("test-secret", "boardapi", time.Minute)
	require.NoError(t, err)
	return iss
}

func TestAuthenticate(t *testing.T) {
	iss := newTestIssuer(t)
	token, _, err := iss.Issue(auth.Principal{UserID: "u-1", ClientID: "c-1", Role: rbac.RoleMember})
	require.NoError(t, err)

	app := fiber.New()
	app.Use(Authenticate(iss))
	app.Get("/me", func(c *fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(p.UserID + "/" + p.ClientID)
	})

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{name: "bearer header", header: "Bearer " + token, wantStatus: fiber.StatusOK, wantBody: "u-1/c-1"},
		{name: "lowercase scheme", header: "bearer " + token, wantStatus: fiber.StatusOK, wantBody: "u-1/c-1"},
		{name: "cookie", cookie: token, wantStatus: fiber.StatusOK, wantBody: "u-1/c-1"},
		{name: "missing", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: fiber.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", wantStatus: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.Header.Set("Cookie", AccessTokenCookie+"="+tt.cookie)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				buf := new(bytes.Buffer)
				buf.ReadFrom(resp.Body)
				assert.Equal(t, tt.wantBody, buf.String())
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	iss := newTestIssuer(t)
	tokenFor := func(role rbac.Role, admin rbac.AdminRole) string {
		tok, _, err := iss.Issue(auth.Principal{UserID: "u-1", ClientID: "c-1", Role: role, AdminRole: admin})
		require.NoError(t, err)
		return tok
	}

	app := fiber.New()
	app.Use(Authenticate(iss))
	app.Delete("/projects/:id", RequirePermission(rbac.PermProjectDelete), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/admin/profiles", RequireAdmin(rbac.PermAdminProfiles), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"owner deletes", "DELETE", "/projects/p-1", tokenFor(rbac.RoleOwner, ""), fiber.StatusNoContent},
		{"member cannot delete", "DELETE", "/projects/p-1", tokenFor(rbac.RoleMember, ""), fiber.StatusForbidden},
		{"unknown role", "DELETE", "/projects/p-1", tokenFor("intern", ""), fiber.StatusForbidden},
		{"super admin", "GET", "/admin/profiles", tokenFor(rbac.RoleMember, rbac.AdminSuper), fiber.StatusOK},
		{"operations cannot manage profiles", "GET", "/admin/profiles", tokenFor(rbac.RoleMember, rbac.AdminOperations), fiber.StatusForbidden},
		{"tenant owner is not an admin", "GET", "/admin/profiles", tokenFor(rbac.RoleOwner, ""), fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequirePermission_WithoutAuthenticate(t *testing.T) {
	app := fiber.New()
	app.Get("/x", RequirePermission(rbac.PermProjectRead), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/x", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
