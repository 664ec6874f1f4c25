package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/rangepicker/internal/db"
	"github.com/terraincognita07/rangepicker/internal/i18n"
	"github.com/terraincognita07/rangepicker/internal/services"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testPickerNow = time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)

func newPickerTestApp(t *testing.T) (*fiber.App, *Handler, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "rangepicker-api-test.db"))
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

	handler, err := NewHandler(database, HandlerOptions{
		SecretKey: testSecretKey,
		Location:  time.UTC,
		I18n:      i18nManager,
		Clock:     services.FixedClock{At: testPickerNow},
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, handler, database
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	bytes, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(bytes, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}

func readBody(t *testing.T, body io.Reader) string {
	t.Helper()

	bytes, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(bytes)
}

func decodeJSON[T any](t *testing.T, body io.Reader) T {
	t.Helper()

	var payload T
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

// startPickerSession opens the page once and returns the issued session
// cookie header value.
func startPickerSession(t *testing.T, app *fiber.App) string {
	t.Helper()

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/picker", nil), -1)
	if err != nil {
		t.Fatalf("picker request failed: %v", err)
	}
	defer response.Body.Close()

	cookie := responseCookie(response.Cookies(), sessionCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie on first picker visit")
	}
	return sessionCookieName + "=" + cookie.Value
}

func sendPickerJSON(t *testing.T, app *fiber.App, method string, path string, cookie string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(""))
	request.Header.Set("Accept", "application/json")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}
