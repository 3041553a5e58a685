package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/quintal/roomdesk/internal/app"
	"github.com/quintal/roomdesk/internal/domain"
)

// BookingCreator is the minimal interface needed to create a booking.
type BookingCreator interface {
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (domain.Booking, error)
}

// BookingReader is the minimal interface needed for operator lookup.
type BookingReader interface {
	GetBooking(ctx context.Context, bookingID string) (domain.Booking, error)
}

// HandleCreateBooking returns the guest-facing reservation handler.
func HandleCreateBooking(svc BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookingRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		booking, err := svc.CreateBooking(r.Context(), app.CreateBookingInput{
			PackageID:  req.PackageID,
			GuestName:  req.GuestName,
			GuestEmail: req.GuestEmail,
			GuestPhone: req.GuestPhone,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(newBookingResponse(booking))
	}
}

// HandleGetBooking returns the operator booking lookup handler.
func HandleGetBooking(svc BookingReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		booking, err := svc.GetBooking(r.Context(), chi.URLParam(r, "bookingID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(newBookingResponse(booking))
	}
}

type createBookingRequest struct {
	PackageID  string `json:"package_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone,omitempty"`
}

type bookingResponse struct {
	ID           string           `json:"id"`
	PackageID    string           `json:"package_id"`
	Reference    string           `json:"reference"`
	GuestName    string           `json:"guest_name"`
	GuestEmail   string           `json:"guest_email"`
	GuestPhone   string           `json:"guest_phone,omitempty"`
	Status       string           `json:"status"`
	Price        decimal.Decimal  `json:"price"`
	RefundAmount *decimal.Decimal `json:"refund_amount,omitempty"`
	RefundNotes  *string          `json:"refund_notes,omitempty"`
	RefundedAt   *time.Time       `json:"refunded_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func newBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:           b.ID,
		PackageID:    b.PackageID,
		Reference:    b.Reference,
		GuestName:    b.GuestName,
		GuestEmail:   b.GuestEmail,
		GuestPhone:   b.GuestPhone,
		Status:       string(b.Status),
		Price:        b.Price,
		RefundAmount: b.RefundAmount,
		RefundNotes:  b.RefundNotes,
		RefundedAt:   b.RefundedAt,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
