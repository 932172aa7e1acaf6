package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/terraincognita07/periodtracker/internal/db"
	"github.com/terraincognita07/periodtracker/internal/i18n"
	"github.com/terraincognita07/periodtracker/internal/metrics"
	"go.uber.org/zap"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type testApp struct {
	app     *fiber.App
	handler *Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "periodtracker-test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	registry := prometheus.NewRegistry()
	handler, err := NewHandler(Config{
		Database:       database,
		SecretKey:      testSecretKey,
		Location:       time.UTC,
		I18n:           i18nManager,
		Metrics:        metrics.NewCollector(registry),
		MetricsHandler: metrics.Handler(registry),
		Now:            func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.StatusMetrics)
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return &testApp{app: app, handler: handler}
}

func (testApp *testApp) do(t *testing.T, method string, path string, cookie string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := testApp.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return response, payload
}

func (testApp *testApp) expectStatus(t *testing.T, method string, path string, cookie string, body any, status int) []byte {
	t.Helper()

	response, payload := testApp.do(t, method, path, cookie, body)
	if response.StatusCode != status {
		t.Fatalf("%s %s expected status %d, got %d: %s", method, path, status, response.StatusCode, payload)
	}
	return payload
}

func (testApp *testApp) registerAndLogin(t *testing.T, username string) string {
	t.Helper()

	testApp.expectStatus(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":             "Test " + username,
		"email":            username + "@example.com",
		"username":         username,
		"password":         "secret1",
		"confirm_password": "secret1",
	}, http.StatusCreated)

	response, payload := testApp.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": username,
		"password": "secret1",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d: %s", response.StatusCode, payload)
	}
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("auth cookie is missing in login response")
	return ""
}

func decodeJSON(t *testing.T, payload []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(payload, target); err != nil {
		t.Fatalf("decode %s: %v", payload, err)
	}
}
