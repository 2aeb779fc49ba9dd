package httpserver

import (
	"net/http"
	"strings"

	"savora-storefront/internal/address"
	"savora-storefront/internal/auth"
	"savora-storefront/internal/cart"
	"savora-storefront/internal/checkout"
	"savora-storefront/internal/geo"
	"savora-storefront/internal/metrics"
	"savora-storefront/internal/middleware"
	"savora-storefront/internal/platform"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Server wires the stores, the checkout orchestrator and the external
// collaborators to the REST surface the storefront frontend consumes.
type Server struct {
	carts     *cart.Store
	addresses *address.Store
	sessions  *auth.Store
	checkout  *checkout.Service
	platform  *platform.Client
	geo       *geo.Client
	stats     *metrics.Checkout
}

func NewServer(
	carts *cart.Store,
	addresses *address.Store,
	sessions *auth.Store,
	co *checkout.Service,
	pf *platform.Client,
	gc *geo.Client,
	stats *metrics.Checkout,
) *Server {
	return &Server{
		carts:     carts,
		addresses: addresses,
		sessions:  sessions,
		checkout:  co,
		platform:  pf,
		geo:       gc,
		stats:     stats,
	}
}

// Router assembles the middleware chain and routes.
func (s *Server) Router(allowedOrigins string) http.Handler {
	r := chi.NewRouter()

	origins := []string{"*"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Device-ID", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.Identity)
	r.Use(middleware.Logging)
	r.Use(middleware.NewRateLimiter().Middleware)

	r.Get("/menu", s.handleMenu)
	r.Get("/branches", s.handleBranches)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
		r.Post("/logout", s.handleLogout)
		r.Post("/check-phone", s.handleCheckPhone)
		r.Get("/session", s.handleSession)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", s.handleGetCart)
		r.Delete("/", s.handleClearCart)
		r.Post("/items", s.handleAddLine)
		r.Post("/items/{id}/increase", s.handleIncrease)
		r.Post("/items/{id}/decrease", s.handleDecrease)
		r.Delete("/items/{id}", s.handleRemoveLine)
	})

	r.Route("/addresses", func(r chi.Router) {
		r.Get("/", s.handleListAddresses)
		r.Post("/", s.handleSaveAddress)
		r.Get("/selected", s.handleGetSelected)
		r.Put("/selected", s.handleSetSelected)
		r.Patch("/{id}", s.handleRenameAddress)
		r.Delete("/{id}", s.handleDeleteAddress)
		r.Post("/{id}/default", s.handleSetDefaultAddress)
	})

	r.Route("/geo", func(r chi.Router) {
		r.Get("/search", s.handleGeoSearch)
		r.Get("/reverse", s.handleGeoReverse)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Post("/quote", s.handleQuote)
		r.Post("/submit", s.handleSubmit)
		r.Get("/confirmation", s.handleConfirmation)
	})

	r.Get("/metrics", s.handleMetrics)

	return r
}
