package app

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quintal/roomdesk/internal/clock"
	"github.com/quintal/roomdesk/internal/domain"
	"github.com/quintal/roomdesk/internal/notify"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetPackageForUpdate(ctx context.Context, packageID string) (domain.Package, error)
	SetRemainingUnits(ctx context.Context, packageID string, units int) error
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	CreateBooking(ctx context.Context, booking domain.Booking) error
}

// BookingService creates bookings. The inventory claim and the booking
// insert commit together or not at all.
type BookingService struct {
	repo     BookingRepository
	clock    clock.Clock
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewBookingService(repo BookingRepository, clk clock.Clock, notifier notify.Notifier, logger *zap.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		clock:    clk,
		notifier: notifier,
		logger:   logger,
	}
}

type CreateBookingInput struct {
	PackageID  string
	GuestName  string
	GuestEmail string
	GuestPhone string
}

func (in CreateBookingInput) validate() error {
	if in.PackageID == "" {
		return domain.ErrInvalidID
	}
	if in.GuestName == "" {
		return domain.ErrGuestNameRequired
	}
	if in.GuestEmail == "" {
		return domain.ErrGuestEmailRequired
	}
	return nil
}

// CreateBooking claims one unit of the package and persists a pending
// booking atomically. The remaining_units read happens under the package
// row lock, so two creations racing for the last unit cannot both pass
// the sold-out check.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (domain.Booking, error) {
	if err := in.validate(); err != nil {
		return domain.Booking{}, err
	}

	now := s.clock.Now()
	var result domain.Booking

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		pkg, err := s.repo.GetPackageForUpdate(txCtx, in.PackageID)
		if err != nil {
			return err
		}
		if pkg.RemainingUnits <= 0 {
			return domain.ErrSoldOut
		}
		if err := s.repo.SetRemainingUnits(txCtx, pkg.ID, pkg.RemainingUnits-1); err != nil {
			return err
		}

		ref, err := generateReference(txCtx, s.repo.ReferenceExists)
		if err != nil {
			return err
		}

		booking := domain.Booking{
			ID:         uuid.NewString(),
			PackageID:  pkg.ID,
			Reference:  ref,
			GuestName:  in.GuestName,
			GuestEmail: in.GuestEmail,
			GuestPhone: in.GuestPhone,
			Status:     domain.StatusPending,
			Price:      domain.GrossPrice(pkg.Price),
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		// The unique index on reference backstops the pre-check; losing
		// that race aborts the whole transaction, decrement included.
		if err := s.repo.CreateBooking(txCtx, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.emit(ctx, notify.Event{
		Type:       notify.TypeBookingCreated,
		BookingID:  result.ID,
		Reference:  result.Reference,
		PackageID:  result.PackageID,
		Status:     result.Status,
		GuestEmail: result.GuestEmail,
		OccurredAt: now,
	})

	return result, nil
}

// emit publishes after commit; delivery failures are the notifier's
// problem and never turn a committed booking into an error.
func (s *BookingService) emit(ctx context.Context, ev notify.Event) {
	if err := s.notifier.Publish(ctx, ev); err != nil {
		s.logger.Warn("notification publish failed",
			zap.String("type", string(ev.Type)),
			zap.String("booking_id", ev.BookingID),
			zap.Error(err),
		)
	}
}
