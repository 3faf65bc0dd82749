// Package api is the HTTP surface of the storefront: the customer-facing
// catalog/cart/submission routes and the gated admin section.
package api

import (
	"context"
	"net/http"

	"cafe45/internal/auth"
	"cafe45/internal/cart"
	"cafe45/internal/dashboard"
	"cafe45/internal/feed"
	"cafe45/internal/models"
	"cafe45/internal/submission"

	"github.com/gin-gonic/gin"
)

// CatalogStore reads the reference data the storefront shows.
type CatalogStore interface {
	ListStandardCakes(ctx context.Context) ([]models.StandardCake, error)
	ListMeals(ctx context.Context) ([]models.Meal, error)
}

// Options wires the server to everything it serves.
type Options struct {
	Carts       *cart.Sessions
	Catalog     CatalogStore
	Submissions *submission.Service
	Board       *dashboard.Board
	Dashboard   *dashboard.Service
	Tokens      *auth.TokenService
	Profiles    auth.ProfileStore
	Hub         *feed.Hub

	AdminUser     string
	AdminPassword string
}

// Server owns the gin engine and its handlers.
type Server struct {
	Router *gin.Engine

	carts       *cart.Sessions
	catalog     CatalogStore
	submissions *submission.Service
	board       *dashboard.Board
	dashboard   *dashboard.Service
	tokens      *auth.TokenService
	hub         *feed.Hub

	adminUser     string
	adminPassword string
}

// NewServer builds the router and registers every route.
func NewServer(opts Options) *Server {
	s := &Server{
		Router:        gin.Default(),
		carts:         opts.Carts,
		catalog:       opts.Catalog,
		submissions:   opts.Submissions,
		board:         opts.Board,
		dashboard:     opts.Dashboard,
		tokens:        opts.Tokens,
		hub:           opts.Hub,
		adminUser:     opts.AdminUser,
		adminPassword: opts.AdminPassword,
	}
	s.setupRoutes(opts.Profiles)
	return s
}

func (s *Server) setupRoutes(profiles auth.ProfileStore) {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Café 45 API is running"})
	})

	v1 := s.Router.Group("/api/v1")
	{
		// Catalog
		v1.GET("/cakes", s.ListCakes)
		v1.GET("/meals", s.ListMeals)

		// Cart
		v1.GET("/cart", s.GetCart)
		v1.POST("/cart/items", s.AddCartItem)
		v1.DELETE("/cart/items/:id", s.RemoveCartItem)
		v1.DELETE("/cart", s.ClearCart)

		// Submissions
		v1.POST("/inquiry", s.SubmitInquiry)
		v1.POST("/checkout", s.Checkout)
	}

	admin := s.Router.Group("/admin", auth.Gate(s.tokens, profiles))
	{
		admin.POST("/login", s.Login) // passes the gate by path
		admin.POST("/logout", s.Logout)
		admin.GET("/dashboard", s.GetDashboard)
		admin.GET("/items/:kind/:id", s.GetItemDetail)
		admin.PUT("/status", s.UpdateStatus)
		admin.DELETE("/items/:kind/:id", s.DeleteItem)
		admin.GET("/ws", s.hub.HandleConnection)
	}
}
