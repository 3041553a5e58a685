package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quintal/roomdesk/internal/cache"
	"github.com/quintal/roomdesk/internal/clock"
	"github.com/quintal/roomdesk/internal/domain"
)

type CatalogRepository interface {
	CreateHotel(ctx context.Context, hotel domain.Hotel) error
	ListHotels(ctx context.Context) ([]domain.Hotel, error)
	CreateEvent(ctx context.Context, event domain.Event) error
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreatePackage(ctx context.Context, pkg domain.Package) error
	ListPackagesByEvent(ctx context.Context, eventID string) ([]domain.Package, error)
}

// CatalogService covers the admin catalog surface plus the public,
// cacheable listings. Listing reads may be stale; the mutating booking
// paths never go through here.
type CatalogService struct {
	repo     CatalogRepository
	clock    clock.Clock
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		clock:    clk,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

type CreateHotelInput struct {
	Name string
	City string
}

func (s *CatalogService) CreateHotel(ctx context.Context, in CreateHotelInput) (domain.Hotel, error) {
	if in.Name == "" {
		return domain.Hotel{}, domain.ErrHotelNameRequired
	}

	hotel := domain.Hotel{
		ID:        uuid.NewString(),
		Name:      in.Name,
		City:      in.City,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateHotel(ctx, hotel); err != nil {
		return domain.Hotel{}, err
	}
	return hotel, nil
}

func (s *CatalogService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.repo.ListHotels(ctx)
}

type CreateEventInput struct {
	Name     string
	StartsAt *time.Time
}

func (s *CatalogService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	if in.Name == "" {
		return domain.Event{}, domain.ErrEventNameRequired
	}
	startsAt := s.clock.Now()
	if in.StartsAt != nil {
		startsAt = *in.StartsAt
	}

	event := domain.Event{
		ID:       uuid.NewString(),
		Name:     in.Name,
		StartsAt: startsAt,
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *CatalogService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx)
}

type CreatePackageInput struct {
	EventID    string
	HotelID    string
	RoomType   string
	CheckIn    time.Time
	CheckOut   time.Time
	Price      decimal.Decimal
	TotalUnits int
}

// CreatePackage fixes total_units at creation and starts the inventory
// counter full. total_units is immutable afterwards.
func (s *CatalogService) CreatePackage(ctx context.Context, in CreatePackageInput) (domain.Package, error) {
	if in.EventID == "" || in.HotelID == "" {
		return domain.Package{}, domain.ErrInvalidID
	}
	if in.RoomType == "" {
		return domain.Package{}, domain.ErrRoomTypeRequired
	}
	if !in.CheckOut.After(in.CheckIn) {
		return domain.Package{}, domain.ErrInvalidDateRange
	}
	if !in.Price.IsPositive() {
		return domain.Package{}, domain.ErrInvalidPrice
	}
	if in.TotalUnits < 1 {
		return domain.Package{}, domain.ErrInvalidTotalUnits
	}

	pkg := domain.Package{
		ID:             uuid.NewString(),
		EventID:        in.EventID,
		HotelID:        in.HotelID,
		RoomType:       in.RoomType,
		CheckIn:        in.CheckIn,
		CheckOut:       in.CheckOut,
		Price:          in.Price,
		TotalUnits:     in.TotalUnits,
		RemainingUnits: in.TotalUnits,
	}
	if err := s.repo.CreatePackage(ctx, pkg); err != nil {
		return domain.Package{}, err
	}

	s.invalidatePackages(ctx, in.EventID)
	return pkg, nil
}

// ListPackages serves the public listing through the read-through cache.
func (s *CatalogService) ListPackages(ctx context.Context, eventID string) ([]domain.Package, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}

	key := packagesCacheKey(eventID)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var packages []domain.Package
		if err := json.Unmarshal(raw, &packages); err == nil {
			return packages, nil
		}
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
	}

	packages, err := s.repo.ListPackagesByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(packages); err == nil {
		s.cache.Set(ctx, key, raw, s.cacheTTL)
	}
	return packages, nil
}

func (s *CatalogService) invalidatePackages(ctx context.Context, eventID string) {
	s.cache.Delete(ctx, packagesCacheKey(eventID))
}

func packagesCacheKey(eventID string) string {
	return "packages:" + eventID
}
