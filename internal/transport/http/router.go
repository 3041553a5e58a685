package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/quintal/roomdesk/internal/auth"
)

// Services groups everything the router needs behind minimal interfaces.
type Services struct {
	Bookings interface {
		BookingCreator
	}
	Transitions interface {
		StatusChanger
		Refunder
		BookingReader
	}
	Catalog interface {
		CatalogAdmin
		CatalogReader
	}
}

// NewRouter wires the full HTTP surface: public catalog and booking
// creation, operator transitions, admin catalog writes.
func NewRouter(svcs Services, verifier TokenVerifier, corsOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(CORS(corsOrigins))

	r.NotFound(NotFoundHandler)
	r.MethodNotAllowed(MethodNotAllowedHandler)

	r.Get("/health", HealthHandler)

	// Public surface.
	r.Get("/events", HandleListEvents(svcs.Catalog))
	r.Get("/events/{eventID}/packages", HandleListPackages(svcs.Catalog))
	r.Post("/bookings", HandleCreateBooking(svcs.Bookings))

	// Operator surface.
	r.Group(func(r chi.Router) {
		r.Use(RequireRole(verifier, auth.Role.CanOperate))
		r.Get("/bookings/{bookingID}", HandleGetBooking(svcs.Transitions))
		r.Post("/bookings/{bookingID}/status", HandleChangeStatus(svcs.Transitions))
		r.Post("/bookings/{bookingID}/refund", HandleRefund(svcs.Transitions))
	})

	// Admin surface.
	r.Group(func(r chi.Router) {
		r.Use(RequireRole(verifier, auth.Role.CanAdminister))
		r.Post("/admin/hotels", HandleCreateHotel(svcs.Catalog))
		r.Get("/admin/hotels", HandleListHotels(svcs.Catalog))
		r.Post("/admin/events", HandleCreateEvent(svcs.Catalog))
		r.Post("/admin/events/{eventID}/packages", HandleCreatePackage(svcs.Catalog))
	})

	return r
}
