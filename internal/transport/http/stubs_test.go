package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quintal/roomdesk/internal/app"
	"github.com/quintal/roomdesk/internal/auth"
	"github.com/quintal/roomdesk/internal/domain"
	transporthttp "github.com/quintal/roomdesk/internal/transport/http"
)

const testSecret = "test-secret"

type stubBookings struct {
	createIn  app.CreateBookingInput
	booking   domain.Booking
	createErr error
}

func (s *stubBookings) CreateBooking(_ context.Context, in app.CreateBookingInput) (domain.Booking, error) {
	s.createIn = in
	if s.createErr != nil {
		return domain.Booking{}, s.createErr
	}
	return s.booking, nil
}

type stubTransitions struct {
	changeIn  app.ChangeStatusInput
	refundIn  app.RefundInput
	booking   domain.Booking
	changeErr error
	refundErr error
	getErr    error
}

func (s *stubTransitions) ChangeStatus(_ context.Context, in app.ChangeStatusInput) (domain.Booking, error) {
	s.changeIn = in
	if s.changeErr != nil {
		return domain.Booking{}, s.changeErr
	}
	return s.booking, nil
}

func (s *stubTransitions) Refund(_ context.Context, in app.RefundInput) (domain.Booking, error) {
	s.refundIn = in
	if s.refundErr != nil {
		return domain.Booking{}, s.refundErr
	}
	return s.booking, nil
}

func (s *stubTransitions) GetBooking(_ context.Context, bookingID string) (domain.Booking, error) {
	if s.getErr != nil {
		return domain.Booking{}, s.getErr
	}
	b := s.booking
	b.ID = bookingID
	return b, nil
}

type stubCatalog struct {
	hotels   []domain.Hotel
	events   []domain.Event
	packages []domain.Package

	hotel domain.Hotel
	event domain.Event
	pkg   domain.Package

	createPackageIn app.CreatePackageInput

	err error
}

func (s *stubCatalog) CreateHotel(_ context.Context, in app.CreateHotelInput) (domain.Hotel, error) {
	if s.err != nil {
		return domain.Hotel{}, s.err
	}
	return s.hotel, nil
}

func (s *stubCatalog) ListHotels(_ context.Context) ([]domain.Hotel, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.hotels, nil
}

func (s *stubCatalog) CreateEvent(_ context.Context, in app.CreateEventInput) (domain.Event, error) {
	if s.err != nil {
		return domain.Event{}, s.err
	}
	return s.event, nil
}

func (s *stubCatalog) CreatePackage(_ context.Context, in app.CreatePackageInput) (domain.Package, error) {
	s.createPackageIn = in
	if s.err != nil {
		return domain.Package{}, s.err
	}
	return s.pkg, nil
}

func (s *stubCatalog) ListEvents(_ context.Context) ([]domain.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func (s *stubCatalog) ListPackages(_ context.Context, eventID string) ([]domain.Package, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.packages, nil
}

func sampleBooking() domain.Booking {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return domain.Booking{
		ID:         "9c7a3f1e-0000-0000-0000-000000000001",
		PackageID:  "9c7a3f1e-0000-0000-0000-000000000002",
		Reference:  "BK-A2B3C4D5",
		GuestName:  "Ada Lovelace",
		GuestEmail: "ada@example.com",
		Status:     domain.StatusPending,
		Price:      decimal.NewFromInt(120),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

type testServices struct {
	bookings    *stubBookings
	transitions *stubTransitions
	catalog     *stubCatalog
}

// newRouter builds the full chi router with stub services and a real
// token manager.
func newRouter(t *testing.T, origins []string) (*testServices, *auth.Manager, http.Handler) {
	t.Helper()

	svcs := &testServices{
		bookings:    &stubBookings{booking: sampleBooking()},
		transitions: &stubTransitions{booking: sampleBooking()},
		catalog:     &stubCatalog{},
	}
	manager := auth.NewManager(testSecret)
	handler := transporthttp.NewRouter(transporthttp.Services{
		Bookings:    svcs.bookings,
		Transitions: svcs.transitions,
		Catalog:     svcs.catalog,
	}, manager, origins, zap.NewNop())
	return svcs, manager, handler
}

// bearer issues a token for the given role, failing the test on error.
func bearer(t *testing.T, manager *auth.Manager, role auth.Role) string {
	t.Helper()
	token, err := manager.Generate("test-user", role, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}
