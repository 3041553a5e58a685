package notify

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quintal/roomdesk/internal/domain"
)

type EventType string

const (
	TypeBookingCreated EventType = "booking.created"
	TypeStatusChanged  EventType = "booking.status_changed"
	TypeRefunded       EventType = "booking.refunded"
)

// Event is the narrow payload handed to the external notifier after a
// booking mutation commits. Turning it into guest emails or vouchers is
// the notifier's concern, not ours.
type Event struct {
	Type         EventType            `json:"type"`
	BookingID    string               `json:"booking_id"`
	Reference    string               `json:"reference"`
	PackageID    string               `json:"package_id"`
	Status       domain.BookingStatus `json:"status"`
	OldStatus    domain.BookingStatus `json:"old_status,omitempty"`
	GuestEmail   string               `json:"guest_email"`
	RefundAmount *decimal.Decimal     `json:"refund_amount,omitempty"`
	OccurredAt   time.Time            `json:"occurred_at"`
}

type Notifier interface {
	Publish(ctx context.Context, ev Event) error
}

// LogNotifier writes events to the structured log. It is the default
// sink when no broker is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(_ context.Context, ev Event) error {
	n.logger.Info("booking event",
		zap.String("type", string(ev.Type)),
		zap.String("booking_id", ev.BookingID),
		zap.String("reference", ev.Reference),
		zap.String("status", string(ev.Status)),
	)
	return nil
}
