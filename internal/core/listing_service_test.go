package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rabbitsit-backend-go/internal/db"
	"rabbitsit-backend-go/internal/models"
)

// fakeListingRepo is an in-memory ListingRepository. It emulates the store's
// behavior the service depends on: server-stamped createdAt, equality
// filters, createdAt-descending order and the atomic owned delete.
type fakeListingRepo struct {
	listings map[string]*models.Listing
	nextID   int
	listErr  error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*models.Listing)}
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *models.Listing) (string, error) {
	r.nextID++
	id := fmt.Sprintf("listing-%d", r.nextID)
	stored := *listing
	stored.ID = id
	stored.CreatedAt = time.Unix(int64(r.nextID), 0).UTC() // store clock
	r.listings[id] = &stored
	listing.ID = id
	return id, nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, listingID string) (*models.Listing, error) {
	l, ok := r.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("listing with ID '%s' not found: %w", listingID, db.ErrNotFound)
	}
	copied := *l
	return &copied, nil
}

func (r *fakeListingRepo) List(ctx context.Context, filters models.ListingFilters) ([]*models.Listing, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*models.Listing
	for _, l := range r.listings {
		if filters.ListingType != "" && l.ListingType != filters.ListingType {
			continue
		}
		if filters.ServiceType != "" && l.ServiceType != filters.ServiceType {
			continue
		}
		copied := *l
		out = append(out, &copied)
	}
	// createdAt descending
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakeListingRepo) DeleteOwned(ctx context.Context, listingID, requestingUserID string) error {
	l, ok := r.listings[listingID]
	if !ok {
		return fmt.Errorf("listing with ID '%s' not found: %w", listingID, db.ErrNotFound)
	}
	if l.UserID != requestingUserID {
		return fmt.Errorf("user '%s' does not own listing '%s': %w", requestingUserID, listingID, db.ErrForbidden)
	}
	delete(r.listings, listingID)
	return nil
}

func validCreateRequest() models.CreateListingRequest {
	return models.CreateListingRequest{
		ListingType:   models.ListingTypeOwner,
		Title:         "Two weeks of care for Clover",
		Description:   "Friendly lop, needs daily greens.",
		ServiceType:   models.ServiceTypeHost,
		Location:      "Austin, TX",
		DateFrom:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DateTo:        time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		PricePerNight: 25,
		RabbitName:    "Clover",
	}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo)

	req := validCreateRequest()
	created, err := svc.Create(context.Background(), "uid-1", "Alice", req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create returned empty ID")
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if got.UserID != "uid-1" || got.UserDisplayName != "Alice" {
		t.Fatalf("creator identity not stamped: %+v", got)
	}
	if got.ListingType != req.ListingType ||
		got.Title != req.Title ||
		got.Description != req.Description ||
		got.ServiceType != req.ServiceType ||
		got.Location != req.Location ||
		!got.DateFrom.Equal(req.DateFrom) ||
		!got.DateTo.Equal(req.DateTo) ||
		got.PricePerNight != req.PricePerNight ||
		got.RabbitName != req.RabbitName {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, req)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("CreatedAt was not stamped")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())
	ctx := context.Background()

	bad := validCreateRequest()
	bad.DateFrom, bad.DateTo = bad.DateTo, bad.DateFrom
	if _, err := svc.Create(ctx, "uid-1", "Alice", bad); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	bad = validCreateRequest()
	bad.PricePerNight = -1
	if _, err := svc.Create(ctx, "uid-1", "Alice", bad); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}

	bad = validCreateRequest()
	bad.Experience = "5 years with rabbits" // owner listing cannot carry experience
	if _, err := svc.Create(ctx, "uid-1", "Alice", bad); !errors.Is(err, ErrMismatchedVariant) {
		t.Fatalf("expected ErrMismatchedVariant for owner+experience, got %v", err)
	}

	bad = validCreateRequest()
	bad.ListingType = models.ListingTypeSitter
	bad.Experience = ""
	// rabbit fields stay set from validCreateRequest
	if _, err := svc.Create(ctx, "uid-1", "Alice", bad); !errors.Is(err, ErrMismatchedVariant) {
		t.Fatalf("expected ErrMismatchedVariant for sitter+rabbit fields, got %v", err)
	}
}

func TestCreateRoundsPriceToCents(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())

	req := validCreateRequest()
	req.PricePerNight = 19.999
	created, err := svc.Create(context.Background(), "uid-1", "Alice", req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.PricePerNight != 20 {
		t.Fatalf("expected price rounded to 20, got %v", created.PricePerNight)
	}
}

func TestListFiltersByTypeNewestFirst(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo)
	ctx := context.Background()

	owner1 := validCreateRequest()
	sitter := validCreateRequest()
	sitter.ListingType = models.ListingTypeSitter
	sitter.RabbitName = ""
	sitter.Experience = "bonded pairs welcome"
	owner2 := validCreateRequest()
	owner2.Title = "Weekend visit for Pepper"

	if _, err := svc.Create(ctx, "uid-1", "Alice", owner1); err != nil {
		t.Fatalf("Create owner1: %v", err)
	}
	if _, err := svc.Create(ctx, "uid-2", "Bob", sitter); err != nil {
		t.Fatalf("Create sitter: %v", err)
	}
	second, err := svc.Create(ctx, "uid-1", "Alice", owner2)
	if err != nil {
		t.Fatalf("Create owner2: %v", err)
	}

	got, err := svc.List(ctx, models.ListingFilters{ListingType: models.ListingTypeOwner})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 owner listings, got %d", len(got))
	}
	for _, l := range got {
		if l.ListingType != models.ListingTypeOwner {
			t.Fatalf("filter leaked listing of type %s", l.ListingType)
		}
	}
	if got[0].ID != second.ID {
		t.Fatalf("expected newest listing first, got %s", got[0].ID)
	}
	if got[0].CreatedAt.Before(got[1].CreatedAt) {
		t.Fatal("listings not in createdAt descending order")
	}
}

func TestListLocationFilterIsCaseInsensitive(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo)
	ctx := context.Background()

	austin := validCreateRequest() // location "Austin, TX"
	denver := validCreateRequest()
	denver.Location = "DENVER, CO"

	if _, err := svc.Create(ctx, "uid-1", "Alice", austin); err != nil {
		t.Fatalf("Create austin: %v", err)
	}
	if _, err := svc.Create(ctx, "uid-1", "Alice", denver); err != nil {
		t.Fatalf("Create denver: %v", err)
	}

	for _, query := range []string{"AUSTIN", "austin", "Austin"} {
		got, err := svc.List(ctx, models.ListingFilters{Location: query})
		if err != nil {
			t.Fatalf("List(%q): %v", query, err)
		}
		if len(got) != 1 || got[0].Location != "Austin, TX" {
			t.Fatalf("List(%q): expected the Austin listing, got %d results", query, len(got))
		}
	}

	got, err := svc.List(ctx, models.ListingFilters{Location: "denver"})
	if err != nil {
		t.Fatalf("List(denver): %v", err)
	}
	if len(got) != 1 || got[0].Location != "DENVER, CO" {
		t.Fatalf("lowercase query should match uppercase stored value, got %d results", len(got))
	}
}

func TestDeleteByOwner(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "uid-1", "Alice", validCreateRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, "uid-1"); err != nil {
		t.Fatalf("Delete by owner: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound after delete, got %v", err)
	}
}

func TestDeleteByNonOwnerIsForbidden(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "uid-1", "Alice", validCreateRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, "uid-2"); !errors.Is(err, ErrNotListingOwner) {
		t.Fatalf("expected ErrNotListingOwner, got %v", err)
	}

	// The listing must remain fetchable after the rejected delete.
	if _, err := svc.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("listing should still exist after forbidden delete: %v", err)
	}
}

func TestDeleteMissingListingIsNotFound(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())

	err := svc.Delete(context.Background(), "no-such-listing", "uid-1")
	if !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}
