package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quintal/roomdesk/internal/domain"
)

// CatalogReader is the minimal interface needed for the public catalog.
type CatalogReader interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListPackages(ctx context.Context, eventID string) ([]domain.Package, error)
}

// HandleListEvents returns the public event listing handler.
func HandleListEvents(svc CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.ListEvents(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]eventResponse, 0, len(events))
		for _, e := range events {
			resp = append(resp, newEventResponse(e))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleListPackages returns the public package listing with the derived
// availability flag. This read may be cache-stale; the booking path never
// trusts it.
func HandleListPackages(svc CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packages, err := svc.ListPackages(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]packageResponse, 0, len(packages))
		for _, p := range packages {
			resp = append(resp, newPackageResponse(p))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
