package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biyonik/atom/internal/http/request"
	"github.com/biyonik/atom/internal/middleware"
)

func TestMatchRoute(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		matched bool
		params  map[string]string
	}{
		{"/users", "/users", true, map[string]string{}},
		{"/users", "/users/", true, map[string]string{}},
		{"/users/{id}", "/users/42", true, map[string]string{"id": "42"}},
		{"/posts/{id}/comments/{cid}", "/posts/1/comments/9", true, map[string]string{"id": "1", "cid": "9"}},
		{"/users/{id}", "/users", false, nil},
		{"/users", "/accounts", false, nil},
		{"/", "", true, map[string]string{}},
	}

	for _, tc := range tests {
		params, matched := matchRoute(tc.pattern, tc.path)
		if matched != tc.matched {
			t.Errorf("matchRoute(%q, %q): expected matched=%v", tc.pattern, tc.path, tc.matched)
			continue
		}
		for k, v := range tc.params {
			if params[k] != v {
				t.Errorf("Expected param %s=%s, got %s", k, v, params[k])
			}
		}
	}
}

func TestRouter_DispatchWithParams(t *testing.T) {
	r := New()
	r.GET("/users/{id}", func(w http.ResponseWriter, req *request.Request) {
		w.Write([]byte("user " + req.RouteParam("id")))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7", nil))

	if rec.Body.String() != "user 7" {
		t.Errorf("Expected 'user 7', got %q", rec.Body.String())
	}
}

func TestRouter_APIModeStripsPrefix(t *testing.T) {
	r := New(WithAPIMode(true))
	r.GET("/users", func(w http.ResponseWriter, req *request.Request) {
		w.Write([]byte(req.Path()))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users?page=1", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "/users" {
		t.Errorf("Expected routed /users, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	r := New()
	r.GET("/users", func(w http.ResponseWriter, req *request.Request) {})
	r.POST("/users", func(w http.ResponseWriter, req *request.Request) {})
	r.GET("/users/{id}", func(w http.ResponseWriter, req *request.Request) {})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/users", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("Expected Allow: GET, POST, got %q", allow)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Error("Expected JSON error body")
	}
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	r.Use(mark("global"))
	g := r.Group("/admin")
	g.Use(mark("group"))
	g.GET("/stats", func(w http.ResponseWriter, req *request.Request) {
		order = append(order, "handler")
	}).Middleware(mark("route"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	expected := []string{"global", "group", "route", "handler"}
	if len(order) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, order)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, order)
			break
		}
	}
}
