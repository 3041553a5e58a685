package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quintal/roomdesk/internal/domain"
)

const (
	codeNotFound            = "not_found"
	codeMethodNotAllowed    = "method_not_allowed"
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidID           = "invalid_id"
	codeValidation          = "validation_error"
	codeUnauthorized        = "unauthorized"
	codeForbidden           = "forbidden"
	codeHotelNotFound       = "hotel_not_found"
	codeEventNotFound       = "event_not_found"
	codePackageNotFound     = "package_not_found"
	codeBookingNotFound     = "booking_not_found"
	codeSoldOut             = "sold_out"
	codeIllegalTransition   = "illegal_transition"
	codeInventoryExhausted  = "inventory_exhausted"
	codeAlreadyRefunded     = "already_refunded"
	codeConcurrencyConflict = "concurrency_conflict"
	codeReferenceConflict   = "reference_conflict"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps service errors onto the wire contract. Validation
// failures are 400, missing records 404, lifecycle conflicts 409 and
// transient store conflicts 503.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrHotelNameRequired),
		errors.Is(err, domain.ErrEventNameRequired),
		errors.Is(err, domain.ErrRoomTypeRequired),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidTotalUnits),
		errors.Is(err, domain.ErrGuestNameRequired),
		errors.Is(err, domain.ErrGuestEmailRequired),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrRefundAmountInvalid),
		errors.Is(err, domain.ErrRefundNotesTooLong):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, domain.ErrHotelNotFound):
		writeError(w, http.StatusNotFound, codeHotelNotFound, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrPackageNotFound):
		writeError(w, http.StatusNotFound, codePackageNotFound, err.Error())
	case errors.Is(err, domain.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, codeBookingNotFound, err.Error())
	case errors.Is(err, domain.ErrSoldOut):
		writeError(w, http.StatusConflict, codeSoldOut, err.Error())
	case errors.Is(err, domain.ErrIllegalTransition):
		writeError(w, http.StatusConflict, codeIllegalTransition, err.Error())
	case errors.Is(err, domain.ErrInventoryExhausted):
		writeError(w, http.StatusConflict, codeInventoryExhausted, err.Error())
	case errors.Is(err, domain.ErrAlreadyRefunded):
		writeError(w, http.StatusConflict, codeAlreadyRefunded, err.Error())
	case errors.Is(err, domain.ErrReferenceConflict):
		writeError(w, http.StatusServiceUnavailable, codeReferenceConflict, err.Error())
	case errors.Is(err, domain.ErrConcurrencyConflict):
		writeError(w, http.StatusServiceUnavailable, codeConcurrencyConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
