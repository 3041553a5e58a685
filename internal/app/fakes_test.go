package app

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quintal/roomdesk/internal/domain"
	"github.com/quintal/roomdesk/internal/notify"
)

// fakeRepo backs both the booking and transition services in unit tests.
// WithTx takes a mutex for its whole duration, mirroring the row-lock
// serialization the Postgres implementation gets from FOR UPDATE.
type fakeRepo struct {
	mu       sync.Mutex
	packages map[string]domain.Package
	bookings map[string]domain.Booking

	createBookingErr error
}

func newFakeRepo(packages []domain.Package, bookings []domain.Booking) *fakeRepo {
	f := &fakeRepo{
		packages: make(map[string]domain.Package),
		bookings: make(map[string]domain.Booking),
	}
	for _, p := range packages {
		f.packages[p.ID] = p
	}
	for _, b := range bookings {
		f.bookings[b.ID] = b
	}
	return f
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeRepo) GetPackageForUpdate(_ context.Context, packageID string) (domain.Package, error) {
	pkg, ok := f.packages[packageID]
	if !ok {
		return domain.Package{}, domain.ErrPackageNotFound
	}
	return pkg, nil
}

func (f *fakeRepo) SetRemainingUnits(_ context.Context, packageID string, units int) error {
	pkg, ok := f.packages[packageID]
	if !ok {
		return domain.ErrPackageNotFound
	}
	pkg.RemainingUnits = units
	f.packages[packageID] = pkg
	return nil
}

func (f *fakeRepo) ReferenceExists(_ context.Context, reference string) (bool, error) {
	for _, b := range f.bookings {
		if b.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, booking domain.Booking) error {
	if f.createBookingErr != nil {
		return f.createBookingErr
	}
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeRepo) GetBookingForUpdate(_ context.Context, bookingID string) (domain.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetBooking(ctx context.Context, bookingID string) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.GetBookingForUpdate(ctx, bookingID)
}

func (f *fakeRepo) UpdateBookingStatus(_ context.Context, bookingID string, status domain.BookingStatus, now time.Time) error {
	b, ok := f.bookings[bookingID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = now
	f.bookings[bookingID] = b
	return nil
}

func (f *fakeRepo) MarkRefunded(_ context.Context, bookingID string, amount decimal.Decimal, notes string, now time.Time) error {
	b, ok := f.bookings[bookingID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = domain.StatusRefunded
	b.RefundAmount = &amount
	if notes != "" {
		b.RefundNotes = &notes
	}
	refundedAt := now
	b.RefundedAt = &refundedAt
	b.UpdatedAt = now
	f.bookings[bookingID] = b
	return nil
}

// remaining reads the counter outside any transaction.
func (f *fakeRepo) remaining(packageID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.packages[packageID].RemainingUnits
}

// holding counts bookings still holding a unit of the package.
func (f *fakeRepo) holding(packageID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.bookings {
		if b.PackageID == packageID && b.Status.HoldsUnit() {
			n++
		}
	}
	return n
}

// checkInvariant verifies remaining == total - holding for a package.
func (f *fakeRepo) checkInvariant(packageID string) bool {
	held := f.holding(packageID)
	f.mu.Lock()
	defer f.mu.Unlock()
	pkg := f.packages[packageID]
	return pkg.RemainingUnits == pkg.TotalUnits-held
}

// recordingNotifier captures published events; a failure can be injected
// to prove it never surfaces to the caller.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, ev notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, ev)
	return nil
}

func (n *recordingNotifier) types() []notify.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notify.EventType, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Type)
	}
	return out
}
