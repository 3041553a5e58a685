package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/quintal/roomdesk/internal/app"
	"github.com/quintal/roomdesk/internal/domain"
)

const dateLayout = "2006-01-02"

// CatalogAdmin is the minimal interface needed for admin catalog writes.
type CatalogAdmin interface {
	CreateHotel(ctx context.Context, in app.CreateHotelInput) (domain.Hotel, error)
	ListHotels(ctx context.Context) ([]domain.Hotel, error)
	CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
	CreatePackage(ctx context.Context, in app.CreatePackageInput) (domain.Package, error)
}

// HandleCreateHotel returns the admin hotel creation handler.
func HandleCreateHotel(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createHotelRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		hotel, err := svc.CreateHotel(r.Context(), app.CreateHotelInput{
			Name: req.Name,
			City: req.City,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(newHotelResponse(hotel))
	}
}

// HandleListHotels returns the admin hotel listing handler.
func HandleListHotels(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hotels, err := svc.ListHotels(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]hotelResponse, 0, len(hotels))
		for _, h := range hotels {
			resp = append(resp, newHotelResponse(h))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleCreateEvent returns the admin event creation handler.
func HandleCreateEvent(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		var startsAt *time.Time
		if req.StartsAt != "" {
			parsed, err := time.Parse(time.RFC3339, req.StartsAt)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeValidation, "invalid starts_at format")
				return
			}
			startsAt = &parsed
		}

		event, err := svc.CreateEvent(r.Context(), app.CreateEventInput{
			Name:     req.Name,
			StartsAt: startsAt,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(newEventResponse(event))
	}
}

// HandleCreatePackage returns the admin package creation handler.
func HandleCreatePackage(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPackageRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		checkIn, err := time.Parse(dateLayout, req.CheckIn)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, "invalid check_in date")
			return
		}
		checkOut, err := time.Parse(dateLayout, req.CheckOut)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidation, "invalid check_out date")
			return
		}

		pkg, err := svc.CreatePackage(r.Context(), app.CreatePackageInput{
			EventID:    chi.URLParam(r, "eventID"),
			HotelID:    req.HotelID,
			RoomType:   req.RoomType,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Price:      req.Price,
			TotalUnits: req.TotalUnits,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(newPackageResponse(pkg))
	}
}

type createHotelRequest struct {
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

type hotelResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newHotelResponse(h domain.Hotel) hotelResponse {
	return hotelResponse{ID: h.ID, Name: h.Name, City: h.City, CreatedAt: h.CreatedAt}
}

type createEventRequest struct {
	Name     string `json:"name"`
	StartsAt string `json:"starts_at,omitempty"`
}

type eventResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at"`
}

func newEventResponse(e domain.Event) eventResponse {
	return eventResponse{ID: e.ID, Name: e.Name, StartsAt: e.StartsAt}
}

type createPackageRequest struct {
	HotelID    string          `json:"hotel_id"`
	RoomType   string          `json:"room_type"`
	CheckIn    string          `json:"check_in"`
	CheckOut   string          `json:"check_out"`
	Price      decimal.Decimal `json:"price"`
	TotalUnits int             `json:"total_units"`
}

type packageResponse struct {
	ID             string          `json:"id"`
	EventID        string          `json:"event_id"`
	HotelID        string          `json:"hotel_id"`
	RoomType       string          `json:"room_type"`
	CheckIn        string          `json:"check_in"`
	CheckOut       string          `json:"check_out"`
	Price          decimal.Decimal `json:"price"`
	GrossPrice     decimal.Decimal `json:"gross_price"`
	TotalUnits     int             `json:"total_units"`
	RemainingUnits int             `json:"remaining_units"`
	Available      bool            `json:"available"`
}

func newPackageResponse(p domain.Package) packageResponse {
	return packageResponse{
		ID:             p.ID,
		EventID:        p.EventID,
		HotelID:        p.HotelID,
		RoomType:       p.RoomType,
		CheckIn:        p.CheckIn.Format(dateLayout),
		CheckOut:       p.CheckOut.Format(dateLayout),
		Price:          p.Price,
		GrossPrice:     domain.GrossPrice(p.Price),
		TotalUnits:     p.TotalUnits,
		RemainingUnits: p.RemainingUnits,
		Available:      p.Available(),
	}
}
