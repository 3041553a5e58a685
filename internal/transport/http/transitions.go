package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/quintal/roomdesk/internal/app"
	"github.com/quintal/roomdesk/internal/domain"
)

// StatusChanger is the minimal interface needed for operator transitions.
type StatusChanger interface {
	ChangeStatus(ctx context.Context, in app.ChangeStatusInput) (domain.Booking, error)
}

// Refunder is the minimal interface needed to refund a booking.
type Refunder interface {
	Refund(ctx context.Context, in app.RefundInput) (domain.Booking, error)
}

// HandleChangeStatus returns the operator status-transition handler.
func HandleChangeStatus(svc StatusChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changeStatusRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		booking, err := svc.ChangeStatus(r.Context(), app.ChangeStatusInput{
			BookingID: chi.URLParam(r, "bookingID"),
			NewStatus: domain.BookingStatus(req.Status),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(newBookingResponse(booking))
	}
}

// HandleRefund returns the operator refund handler.
func HandleRefund(svc Refunder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refundRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		booking, err := svc.Refund(r.Context(), app.RefundInput{
			BookingID: chi.URLParam(r, "bookingID"),
			Amount:    req.Amount,
			Notes:     req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(newBookingResponse(booking))
	}
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

type refundRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes,omitempty"`
}
