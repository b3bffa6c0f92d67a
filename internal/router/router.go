// Package router, HTTP isteklerini yönlendirmek ve route tanımlamak için
// basit bir router sağlar.
//
// Eşleştirme request.Request.Path() üzerinden yapılır; API modunda "/api"
// öneki atıldıktan sonra kalan path route'larla karşılaştırılır.
package router

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/biyonik/atom/internal/http/request"
	"github.com/biyonik/atom/internal/http/response"
	"github.com/biyonik/atom/internal/middleware"
)

// HandlerFunc, framework'ün handler fonksiyon tipidir.
// Standard http.HandlerFunc'tan farkı, *request.Request kullanmasıdır.
type HandlerFunc func(http.ResponseWriter, *request.Request)

// Router, HTTP routing yapısını temsil eder.
type Router struct {
	routes      []*Route
	middlewares []middleware.Middleware
	apiMode     bool
}

// Route, tek bir HTTP route'unu temsil eder.
type Route struct {
	method      string
	path        string
	handler     HandlerFunc
	middlewares []middleware.Middleware
}

// RouteGroup, ortak prefix ve middleware paylaşan route grubu.
type RouteGroup struct {
	prefix      string
	middlewares []middleware.Middleware
	router      *Router
}

// Option, Router yapılandırma seçeneği.
type Option func(*Router)

// WithAPIMode, isteklerin API modunda yorumlanmasını sağlar.
func WithAPIMode(on bool) Option {
	return func(r *Router) { r.apiMode = on }
}

// New, yeni bir Router instance'ı oluşturur.
func New(opts ...Option) *Router {
	r := &Router{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use, router seviyesinde global middleware ekler.
func (r *Router) Use(m middleware.Middleware) {
	r.middlewares = append(r.middlewares, m)
}

// Handle, verilen method ve path için route tanımlar.
func (r *Router) Handle(method, path string, handler HandlerFunc) *Route {
	route := &Route{
		method:  method,
		path:    path,
		handler: handler,
	}
	r.routes = append(r.routes, route)
	return route
}

// GET, GET metodu için route tanımlar.
func (r *Router) GET(path string, handler HandlerFunc) *Route {
	return r.Handle(http.MethodGet, path, handler)
}

// POST, POST metodu için route tanımlar.
func (r *Router) POST(path string, handler HandlerFunc) *Route {
	return r.Handle(http.MethodPost, path, handler)
}

// PUT, PUT metodu için route tanımlar.
func (r *Router) PUT(path string, handler HandlerFunc) *Route {
	return r.Handle(http.MethodPut, path, handler)
}

// DELETE, DELETE metodu için route tanımlar.
func (r *Router) DELETE(path string, handler HandlerFunc) *Route {
	return r.Handle(http.MethodDelete, path, handler)
}

// Middleware, route'a middleware ekler (method chaining için).
func (route *Route) Middleware(m middleware.Middleware) *Route {
	route.middlewares = append(route.middlewares, m)
	return route
}

// Group, route grubu oluşturur.
//
// Kullanım:
//
//	users := r.Group("/users")
//	users.GET("", ctrl.Index)
//	users.PUT("/{id}", ctrl.Update)
func (r *Router) Group(prefix string) *RouteGroup {
	return &RouteGroup{prefix: prefix, router: r}
}

// Use, grup seviyesinde middleware ekler.
func (g *RouteGroup) Use(m middleware.Middleware) {
	g.middlewares = append(g.middlewares, m)
}

// Handle, grup içinde route tanımlar; grup middleware'leri route'unkilerden
// önce çalışır.
func (g *RouteGroup) Handle(method, path string, handler HandlerFunc) *Route {
	route := g.router.Handle(method, g.prefix+path, handler)
	route.middlewares = append(append([]middleware.Middleware{}, g.middlewares...), route.middlewares...)
	return route
}

func (g *RouteGroup) GET(path string, handler HandlerFunc) *Route {
	return g.Handle(http.MethodGet, path, handler)
}

func (g *RouteGroup) POST(path string, handler HandlerFunc) *Route {
	return g.Handle(http.MethodPost, path, handler)
}

func (g *RouteGroup) PUT(path string, handler HandlerFunc) *Route {
	return g.Handle(http.MethodPut, path, handler)
}

func (g *RouteGroup) DELETE(path string, handler HandlerFunc) *Route {
	return g.Handle(http.MethodDelete, path, handler)
}

// ServeHTTP, http.Handler interface'ini implement eder.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var handler http.Handler = http.HandlerFunc(r.handleRequest)

	// Global middleware chain oluştur (reverse order)
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}

	handler.ServeHTTP(w, req)
}

// handleRequest, gelen isteği uygun route'a yönlendirir.
func (r *Router) handleRequest(w http.ResponseWriter, req *http.Request) {
	path := request.New(req, request.WithAPIMode(r.apiMode)).Path()

	var allowed []string
	for _, route := range r.routes {
		params, matched := matchRoute(route.path, path)
		if !matched {
			continue
		}
		if route.method != req.Method {
			if !slices.Contains(allowed, route.method) {
				allowed = append(allowed, route.method)
			}
			continue
		}

		ctx := context.WithValue(req.Context(), request.RequestParamsKey, params)
		req = req.WithContext(ctx)

		var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			route.handler(w, request.New(req, request.WithAPIMode(r.apiMode)))
		})

		// Route middleware chain oluştur (reverse order)
		for i := len(route.middlewares) - 1; i >= 0; i-- {
			handler = route.middlewares[i](handler)
		}

		handler.ServeHTTP(w, req)
		return
	}

	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		response.Error(w, http.StatusMethodNotAllowed, "Bu method desteklenmiyor")
		return
	}
	response.NotFound(w, "Route bulunamadı")
}

// matchRoute, route pattern'i ile URL path'ini karşılaştırır.
//
// Pattern örnekleri:
//
//	/users/{id}
//	/posts/{id}/comments/{commentId}
func matchRoute(pattern, path string) (map[string]string, bool) {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	params := make(map[string]string)

	for i, part := range patternParts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			if pathParts[i] == "" {
				return nil, false
			}
			params[strings.Trim(part, "{}")] = pathParts[i]
			continue
		}

		if part != pathParts[i] {
			return nil, false
		}
	}

	return params, true
}
