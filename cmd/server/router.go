package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vestryhq/marketplace-api/internal/api"
	apiMiddleware "github.com/vestryhq/marketplace-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Every marketplace route requires a valid bearer token;
// only the health check is public.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	categoryHandler := api.NewCategoryHandler(app.catalogService, app.logger)
	providerHandler := api.NewProviderHandler(app.catalogService, app.logger)
	serviceHandler := api.NewServiceHandler(app.catalogService, app.logger)
	bookingHandler := api.NewBookingHandler(app.bookingService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	savedServiceHandler := api.NewSavedServiceHandler(app.bookmarkService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api/marketplace", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		// Catalog endpoints (read-only)
		r.Get("/categories", categoryHandler.ListCategories)
		r.Get("/categories/{id}", categoryHandler.GetCategory)

		r.Get("/providers", providerHandler.ListProviders)
		r.Get("/providers/{id}", providerHandler.GetProvider)

		r.Get("/services", serviceHandler.ListServices)
		r.Get("/services/{id}", serviceHandler.GetService)
		r.Get("/services/{id}/similar", serviceHandler.ListSimilarServices)

		// Booking endpoints
		r.Get("/bookings", bookingHandler.ListBookings)
		r.Post("/bookings", bookingHandler.CreateBooking)
		r.Get("/bookings/{id}", bookingHandler.GetBooking)
		r.Put("/bookings/{id}", bookingHandler.UpdateBooking)
		r.Delete("/bookings/{id}", bookingHandler.DeleteBooking)

		// Review endpoints
		r.Get("/reviews", reviewHandler.ListReviews)
		r.Post("/reviews", reviewHandler.CreateReview)
		r.Get("/reviews/{id}", reviewHandler.GetReview)
		r.Put("/reviews/{id}", reviewHandler.UpdateReview)
		r.Delete("/reviews/{id}", reviewHandler.DeleteReview)

		// Saved service endpoints
		r.Get("/saved-services", savedServiceHandler.ListSavedServices)
		r.Post("/saved-services", savedServiceHandler.CreateSavedService)
		r.Get("/saved-services/{id}", savedServiceHandler.GetSavedService)
		r.Delete("/saved-services/{id}", savedServiceHandler.DeleteSavedService)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
