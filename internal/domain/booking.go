package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusPaid      BookingStatus = "paid"
	StatusCancelled BookingStatus = "cancelled"
	StatusRefunded  BookingStatus = "refunded"
)

// Valid reports whether s is one of the five known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPaid, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// HoldsUnit reports whether a booking in this status still counts against
// its package's remaining units.
func (s BookingStatus) HoldsUnit() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPaid:
		return true
	}
	return false
}

// UnitDelta returns the remaining_units adjustment for moving a booking
// from one status to another. The delta depends on the (from, to) pair,
// never on the target alone, so re-setting the current status is always a
// zero-delta no-op. Refunded is terminal: every outgoing transition is
// rejected, including refunded -> refunded.
func UnitDelta(from, to BookingStatus) (int, error) {
	if !to.Valid() {
		return 0, ErrInvalidStatus
	}
	if from == StatusRefunded {
		return 0, ErrIllegalTransition
	}
	if from == to {
		return 0, nil
	}
	switch {
	case from.HoldsUnit() && to.HoldsUnit():
		return 0, nil
	case from.HoldsUnit() && !to.HoldsUnit():
		return +1, nil
	case from == StatusCancelled && to.HoldsUnit():
		return -1, nil
	default:
		// cancelled -> refunded: a cancelled booking holds nothing to refund.
		return 0, ErrIllegalTransition
	}
}

// Booking is one reservation consuming exactly one unit of its package
// while its status holds a unit.
type Booking struct {
	ID        string
	PackageID string
	Reference string

	GuestName  string
	GuestEmail string
	GuestPhone string

	Status BookingStatus

	// Price is the VAT-inclusive amount snapshotted at creation; later
	// package price edits do not touch it.
	Price decimal.Decimal

	RefundAmount *decimal.Decimal
	RefundNotes  *string
	RefundedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VATRate is the fixed markup applied to the package net price at booking
// time.
var VATRate = decimal.NewFromFloat(0.20)

// GrossPrice applies the VAT markup to a net price, rounded to cents.
func GrossPrice(net decimal.Decimal) decimal.Decimal {
	return net.Add(net.Mul(VATRate)).Round(2)
}
