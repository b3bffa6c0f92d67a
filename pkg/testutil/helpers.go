// -----------------------------------------------------------------------------
// Testing Helpers
// -----------------------------------------------------------------------------
// HTTP handler testleri ve geçici SQLite veritabanları için yardımcılar.
//
// Kullanım:
//
//	func TestUserCreation(t *testing.T) {
//	    db := testutil.SQLiteDatabase(t, repositories.UsersTableSQLite)
//	    handler := newHandler(db)
//
//	    testutil.NewTestRequest("POST", "/users").
//	        WithJSON(testutil.UserFactory().Make(nil)).
//	        Send(handler).
//	        AssertStatus(t, 201).
//	        AssertJSONPath(t, "data.email", "test@example.com")
//	}
// -----------------------------------------------------------------------------

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biyonik/atom/pkg/database"
	"github.com/jmoiron/sqlx"
)

// -----------------------------------------------------------------------------
// HTTP Testing Helpers
// -----------------------------------------------------------------------------

// TestRequest represents an HTTP test request builder.
type TestRequest struct {
	method  string
	url     string
	body    io.Reader
	headers map[string]string
	cookies []*http.Cookie
}

// NewTestRequest creates a new test request builder.
func NewTestRequest(method, url string) *TestRequest {
	return &TestRequest{
		method:  method,
		url:     url,
		headers: make(map[string]string),
	}
}

// WithJSON sets the request body as JSON.
func (r *TestRequest) WithJSON(data interface{}) *TestRequest {
	jsonData, _ := json.Marshal(data)
	r.body = bytes.NewReader(jsonData)
	r.headers["Content-Type"] = "application/json"
	return r
}

// WithForm sets the request body as an urlencoded form.
func (r *TestRequest) WithForm(values url.Values) *TestRequest {
	r.body = strings.NewReader(values.Encode())
	r.headers["Content-Type"] = "application/x-www-form-urlencoded"
	return r
}

// WithBody sets a raw body with the given content type.
func (r *TestRequest) WithBody(contentType string, body io.Reader) *TestRequest {
	r.body = body
	r.headers["Content-Type"] = contentType
	return r
}

// WithHeader adds a header to the request.
func (r *TestRequest) WithHeader(key, value string) *TestRequest {
	r.headers[key] = value
	return r
}

// WithCookie adds a cookie, typically one taken from a previous response.
func (r *TestRequest) WithCookie(c *http.Cookie) *TestRequest {
	if c != nil {
		r.cookies = append(r.cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return r
}

// Send executes the test request.
func (r *TestRequest) Send(handler http.Handler) *TestResponse {
	req := httptest.NewRequest(r.method, r.url, r.body)
	for key, value := range r.headers {
		req.Header.Set(key, value)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	return &TestResponse{
		recorder: w,
	}
}

// TestResponse represents an HTTP test response.
type TestResponse struct {
	recorder *httptest.ResponseRecorder
}

// Code returns the response status code.
func (r *TestResponse) Code() int {
	return r.recorder.Code
}

// AssertStatus asserts the response status code.
func (r *TestResponse) AssertStatus(t *testing.T, expectedStatus int) *TestResponse {
	t.Helper()
	if r.recorder.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d (body: %s)", expectedStatus, r.recorder.Code, r.recorder.Body.String())
	}
	return r
}

// AssertJSON asserts the response contains JSON.
func (r *TestResponse) AssertJSON(t *testing.T) *TestResponse {
	t.Helper()
	contentType := r.recorder.Header().Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		t.Errorf("Expected JSON response, got %s", contentType)
	}
	return r
}

// AssertJSONPath asserts a value at a dotted JSON path ("data.email").
// JSON sayıları float64 olarak karşılaştırılır.
func (r *TestResponse) AssertJSONPath(t *testing.T, path string, expected interface{}) *TestResponse {
	t.Helper()
	actual, ok := r.JSONPath(t, path)
	if !ok {
		t.Errorf("JSON path '%s' not found", path)
		return r
	}

	if actual != expected {
		t.Errorf("Expected '%v' at path '%s', got '%v'", expected, path, actual)
	}

	return r
}

// JSONPath returns the value at a dotted JSON path.
func (r *TestResponse) JSONPath(t *testing.T, path string) (interface{}, bool) {
	t.Helper()
	var current interface{} = r.GetJSON(t)
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if current, ok = obj[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// GetJSON parses the response body as JSON.
func (r *TestResponse) GetJSON(t *testing.T) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	if err := json.Unmarshal(r.recorder.Body.Bytes(), &data); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	return data
}

// GetBody returns the response body as string.
func (r *TestResponse) GetBody() string {
	return r.recorder.Body.String()
}

// Cookie returns the response cookie with the given name, or nil.
func (r *TestResponse) Cookie(name string) *http.Cookie {
	for _, c := range r.recorder.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Database Testing Helpers
// -----------------------------------------------------------------------------

// DiscardLogger, testlerde çıktı üretmeyen logger.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// SQLiteDatabase, geçici dizinde yeni bir SQLite veritabanı açar ve verilen
// şema ifadelerini çalıştırır. Bağlantı test sonunda kapatılır.
//
// Kullanım:
//
//	db := SQLiteDatabase(t, repositories.UsersTableSQLite)
func SQLiteDatabase(t *testing.T, schema ...string) *sqlx.DB {
	t.Helper()

	reg := database.NewRegistry(DiscardLogger())
	t.Cleanup(func() { reg.Close() })

	db, err := reg.Connect(context.Background(), database.Config{
		Driver:   "sqlite",
		Host:     "localhost",
		Database: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to apply schema: %v", err)
		}
	}
	return db
}

// -----------------------------------------------------------------------------
// Assertion Helpers
// -----------------------------------------------------------------------------

// AssertEquals asserts two values are equal.
func AssertEquals(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertContains asserts a string contains a substring.
func AssertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected '%s' to contain '%s'", haystack, needle)
	}
}

// AssertNotContains asserts a string does not contain a substring.
func AssertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("Expected '%s' to NOT contain '%s'", haystack, needle)
	}
}

// -----------------------------------------------------------------------------
// Factory Pattern Helpers
// -----------------------------------------------------------------------------

// Factory represents a test data factory.
type Factory struct {
	defaults map[string]interface{}
}

// NewFactory creates a new factory with default values.
func NewFactory(defaults map[string]interface{}) *Factory {
	return &Factory{
		defaults: defaults,
	}
}

// Make creates a new instance with optional overrides.
func (f *Factory) Make(overrides map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(f.defaults)+len(overrides))
	for k, v := range f.defaults {
		result[k] = v
	}
	for k, v := range overrides {
		result[k] = v
	}
	return result
}

// UserFactory creates a user factory with default values.
func UserFactory() *Factory {
	return NewFactory(map[string]interface{}{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
	})
}
