package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quintal/roomdesk/internal/clock"
	"github.com/quintal/roomdesk/internal/domain"
	"github.com/quintal/roomdesk/internal/notify"
)

type TransitionRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetBookingForUpdate(ctx context.Context, bookingID string) (domain.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (domain.Booking, error)
	GetPackageForUpdate(ctx context.Context, packageID string) (domain.Package, error)
	SetRemainingUnits(ctx context.Context, packageID string, units int) error
	UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, now time.Time) error
	MarkRefunded(ctx context.Context, bookingID string, amount decimal.Decimal, notes string, now time.Time) error
}

const maxRefundNotesLen = 1000

// TransitionService applies operator status changes and refunds. The
// inventory delta is a function of the (old, new) status pair and is
// written in the same transaction that reads the old status, so two
// operators racing on one booking cannot both apply a delta.
type TransitionService struct {
	repo     TransitionRepository
	clock    clock.Clock
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewTransitionService(repo TransitionRepository, clk clock.Clock, notifier notify.Notifier, logger *zap.Logger) *TransitionService {
	return &TransitionService{
		repo:     repo,
		clock:    clk,
		notifier: notifier,
		logger:   logger,
	}
}

type ChangeStatusInput struct {
	BookingID string
	NewStatus domain.BookingStatus
}

// ChangeStatus moves a booking to a new status and adjusts the package's
// remaining units per the transition table. Re-setting the current status
// is a no-op. A target of refunded is routed through Refund with a zero
// amount, keeping the refund bookkeeping in one place.
func (s *TransitionService) ChangeStatus(ctx context.Context, in ChangeStatusInput) (domain.Booking, error) {
	if in.BookingID == "" {
		return domain.Booking{}, domain.ErrInvalidID
	}
	if !in.NewStatus.Valid() {
		return domain.Booking{}, domain.ErrInvalidStatus
	}
	if in.NewStatus == domain.StatusRefunded {
		return s.Refund(ctx, RefundInput{BookingID: in.BookingID, Amount: decimal.Zero})
	}

	now := s.clock.Now()
	var result domain.Booking
	var oldStatus domain.BookingStatus
	changed := false

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.GetBookingForUpdate(txCtx, in.BookingID)
		if err != nil {
			return err
		}
		oldStatus = booking.Status

		delta, err := domain.UnitDelta(booking.Status, in.NewStatus)
		if err != nil {
			return err
		}

		if booking.Status == in.NewStatus {
			// Second cancel (or any repeated target) leaves both records
			// untouched.
			result = booking
			return nil
		}

		if delta != 0 {
			pkg, err := s.repo.GetPackageForUpdate(txCtx, booking.PackageID)
			if err != nil {
				return err
			}
			if delta < 0 && pkg.RemainingUnits <= 0 {
				return domain.ErrInventoryExhausted
			}
			if err := s.repo.SetRemainingUnits(txCtx, pkg.ID, pkg.RemainingUnits+delta); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateBookingStatus(txCtx, booking.ID, in.NewStatus, now); err != nil {
			return err
		}

		booking.Status = in.NewStatus
		booking.UpdatedAt = now
		result = booking
		changed = true
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}

	if changed {
		s.emit(ctx, notify.Event{
			Type:       notify.TypeStatusChanged,
			BookingID:  result.ID,
			Reference:  result.Reference,
			PackageID:  result.PackageID,
			Status:     result.Status,
			OldStatus:  oldStatus,
			GuestEmail: result.GuestEmail,
			OccurredAt: now,
		})
	}

	return result, nil
}

type RefundInput struct {
	BookingID string
	Amount    decimal.Decimal
	Notes     string
}

// Refund sets the booking to refunded, records amount and notes, and
// releases one unit in the same transaction. Refunded is terminal: a
// second attempt fails with ErrAlreadyRefunded and touches nothing.
func (s *TransitionService) Refund(ctx context.Context, in RefundInput) (domain.Booking, error) {
	if in.BookingID == "" {
		return domain.Booking{}, domain.ErrInvalidID
	}
	if in.Amount.IsNegative() {
		return domain.Booking{}, domain.ErrRefundAmountInvalid
	}
	if len(in.Notes) > maxRefundNotesLen {
		return domain.Booking{}, domain.ErrRefundNotesTooLong
	}

	now := s.clock.Now()
	var result domain.Booking
	var oldStatus domain.BookingStatus

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.GetBookingForUpdate(txCtx, in.BookingID)
		if err != nil {
			return err
		}
		oldStatus = booking.Status

		if booking.Status == domain.StatusRefunded {
			return domain.ErrAlreadyRefunded
		}
		if !booking.Status.HoldsUnit() {
			return domain.ErrIllegalTransition
		}
		if in.Amount.GreaterThan(booking.Price) {
			return domain.ErrRefundAmountInvalid
		}

		pkg, err := s.repo.GetPackageForUpdate(txCtx, booking.PackageID)
		if err != nil {
			return err
		}
		if err := s.repo.SetRemainingUnits(txCtx, pkg.ID, pkg.RemainingUnits+1); err != nil {
			return err
		}
		if err := s.repo.MarkRefunded(txCtx, booking.ID, in.Amount, in.Notes, now); err != nil {
			return err
		}

		booking.Status = domain.StatusRefunded
		amount := in.Amount
		booking.RefundAmount = &amount
		if in.Notes != "" {
			notes := in.Notes
			booking.RefundNotes = &notes
		}
		refundedAt := now
		booking.RefundedAt = &refundedAt
		booking.UpdatedAt = now
		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.emit(ctx, notify.Event{
		Type:         notify.TypeRefunded,
		BookingID:    result.ID,
		Reference:    result.Reference,
		PackageID:    result.PackageID,
		Status:       result.Status,
		OldStatus:    oldStatus,
		GuestEmail:   result.GuestEmail,
		RefundAmount: result.RefundAmount,
		OccurredAt:   now,
	})

	return result, nil
}

// GetBooking is the operator lookup used by support flows.
func (s *TransitionService) GetBooking(ctx context.Context, bookingID string) (domain.Booking, error) {
	if bookingID == "" {
		return domain.Booking{}, domain.ErrInvalidID
	}
	return s.repo.GetBooking(ctx, bookingID)
}

func (s *TransitionService) emit(ctx context.Context, ev notify.Event) {
	if err := s.notifier.Publish(ctx, ev); err != nil {
		s.logger.Warn("notification publish failed",
			zap.String("type", string(ev.Type)),
			zap.String("booking_id", ev.BookingID),
			zap.Error(err),
		)
	}
}
