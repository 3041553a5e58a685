package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Hotel is a property that room packages are sold against.
type Hotel struct {
	ID        string
	Name      string
	City      string
	CreatedAt time.Time
}

// Event is a published happening that hotels and packages attach to.
type Event struct {
	ID       string
	Name     string
	StartsAt time.Time
}

// Package is a purchasable room offer: room type, date range, net price
// and a fixed unit count. RemainingUnits is the inventory record; it is
// mutated only by the booking and transition services under a row lock.
type Package struct {
	ID       string
	EventID  string
	HotelID  string
	RoomType string
	CheckIn  time.Time
	CheckOut time.Time

	// Price is the net (pre-VAT) price per unit.
	Price decimal.Decimal

	TotalUnits     int
	RemainingUnits int
}

// Available derives the sellable flag from the counter. It is never
// stored; persisting it alongside RemainingUnits invites drift.
func (p Package) Available() bool {
	return p.RemainingUnits > 0
}
