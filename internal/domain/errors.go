package domain

import "errors"

var (
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrPackageNotFound = errors.New("package not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidID       = errors.New("invalid id")

	ErrHotelNameRequired  = errors.New("hotel name required")
	ErrEventNameRequired  = errors.New("event name required")
	ErrRoomTypeRequired   = errors.New("room type required")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidPrice       = errors.New("price must be positive")
	ErrInvalidTotalUnits  = errors.New("total units must be at least 1")
	ErrGuestNameRequired  = errors.New("guest name required")
	ErrGuestEmailRequired = errors.New("guest email required")

	ErrSoldOut            = errors.New("package sold out")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrInventoryExhausted = errors.New("no remaining units to re-claim")
	ErrAlreadyRefunded    = errors.New("booking already refunded")
	ErrInvalidStatus      = errors.New("invalid booking status")

	ErrRefundAmountInvalid = errors.New("refund amount out of range")
	ErrRefundNotesTooLong  = errors.New("refund notes too long")

	// ErrReferenceConflict covers both collision-retry exhaustion and a
	// lost race on the reference unique index; callers treat it as transient.
	ErrReferenceConflict = errors.New("booking reference conflict")

	// ErrConcurrencyConflict is surfaced after bounded retries when the
	// store keeps reporting a write conflict on the same rows.
	ErrConcurrencyConflict = errors.New("concurrent write conflict")
)
