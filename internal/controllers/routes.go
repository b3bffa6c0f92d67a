package controllers

import "github.com/biyonik/atom/internal/router"

// RegisterUserRoutes, users kaynağının route'larını kaydeder.
func RegisterUserRoutes(r *router.Router, c *UserController) {
	g := r.Group("/users")
	g.GET("", c.Index)
	g.POST("", c.Store)
	g.GET("/{id}", c.Show)
	g.PUT("/{id}", c.Update)
	g.DELETE("/{id}", c.Destroy)
	g.POST("/{id}/avatar", c.Avatar)
}
