package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"rabbitsit-backend-go/internal/db"
	"rabbitsit-backend-go/internal/models"
)

// Custom errors for the ListingService.
var (
	ErrListingNotFound   = errors.New("listing not found")
	ErrNotListingOwner   = errors.New("not authorized to delete this listing")
	ErrInvalidDateRange  = errors.New("dateFrom must be before dateTo")
	ErrNegativePrice     = errors.New("pricePerNight cannot be negative")
	ErrMismatchedVariant = errors.New("listing fields do not match the listing type")
)

// listingService implements the ListingService interface.
type listingService struct {
	listingRepo db.ListingRepository
}

// NewListingService creates a new ListingService instance.
func NewListingService(listingRepo db.ListingRepository) ListingService {
	return &listingService{listingRepo: listingRepo}
}

// validateVariant enforces the owner/sitter field split: owner listings
// ("seeking care") may carry rabbit fields but not experience, sitter
// listings ("offering services") the reverse. The document shape stays flat;
// the split is an invariant checked at the write boundary.
func validateVariant(req models.CreateListingRequest) error {
	switch req.ListingType {
	case models.ListingTypeOwner:
		if req.Experience != "" {
			return fmt.Errorf("%w: owner listings cannot carry experience", ErrMismatchedVariant)
		}
	case models.ListingTypeSitter:
		if req.RabbitName != "" || req.RabbitPhotoURL != "" {
			return fmt.Errorf("%w: sitter listings cannot carry rabbit details", ErrMismatchedVariant)
		}
	default:
		return fmt.Errorf("%w: unknown listing type '%s'", ErrMismatchedVariant, req.ListingType)
	}
	return nil
}

// Create validates and appends one listing. The creating user's identity is
// stamped from the verified token, never from the request body, which is what
// makes the ownership invariant hold from birth. Duplicate listings are
// permitted; there is no uniqueness constraint.
func (s *listingService) Create(ctx context.Context, userID, userDisplayName string, req models.CreateListingRequest) (*models.Listing, error) {
	if s.listingRepo == nil {
		return nil, errors.New("ListingRepository not initialized in ListingService")
	}
	if userID == "" {
		return nil, errors.New("userID is required to create a listing")
	}

	if err := validateVariant(req); err != nil {
		return nil, err
	}
	if !req.DateFrom.Before(req.DateTo) {
		return nil, fmt.Errorf("%w: got %s .. %s", ErrInvalidDateRange,
			req.DateFrom.Format(time.RFC3339), req.DateTo.Format(time.RFC3339))
	}
	if req.PricePerNight < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrNegativePrice, req.PricePerNight)
	}

	listing := &models.Listing{
		UserID:          userID,
		UserDisplayName: userDisplayName,
		ListingType:     req.ListingType,
		Title:           req.Title,
		Description:     req.Description,
		ServiceType:     req.ServiceType,
		Location:        req.Location,
		DateFrom:        req.DateFrom,
		DateTo:          req.DateTo,
		PricePerNight:   math.Round(req.PricePerNight*100) / 100, // plain decimal, cent precision
		RabbitPhotoURL:  req.RabbitPhotoURL,
		RabbitName:      req.RabbitName,
		Experience:      req.Experience,
		CreatedAt:       time.Now().UTC(), // overridden by the store's serverTimestamp
	}

	listingID, err := s.listingRepo.Create(ctx, listing)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing in repository: %w", err)
	}
	listing.ID = listingID

	return listing, nil
}

// List returns listings newest first. The structured filters go to the store
// as equality predicates; the location filter runs here as a case-insensitive
// substring match over the predicate-matched set. Two-phase on purpose:
// equality fields are cheap and indexable server-side, free text is not.
func (s *listingService) List(ctx context.Context, filters models.ListingFilters) ([]*models.Listing, error) {
	if s.listingRepo == nil {
		return nil, errors.New("ListingRepository not initialized in ListingService")
	}

	listings, err := s.listingRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	if filters.Location == "" {
		return listings, nil
	}

	search := strings.ToLower(filters.Location)
	filtered := listings[:0]
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.Location), search) {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}

// GetByID fetches one listing, mapping store absence to ErrListingNotFound.
func (s *listingService) GetByID(ctx context.Context, listingID string) (*models.Listing, error) {
	if s.listingRepo == nil {
		return nil, errors.New("ListingRepository not initialized in ListingService")
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrListingNotFound, listingID)
		}
		return nil, fmt.Errorf("failed to get listing '%s': %w", listingID, err)
	}
	return listing, nil
}

// Delete enforces the ownership invariant: only the creating user may delete
// a listing. The repository performs the read, the comparison and the delete
// atomically. No retry on failure; the error is surfaced to the caller.
func (s *listingService) Delete(ctx context.Context, listingID, requestingUserID string) error {
	if s.listingRepo == nil {
		return errors.New("ListingRepository not initialized in ListingService")
	}

	err := s.listingRepo.DeleteOwned(ctx, listingID, requestingUserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: ID '%s'", ErrListingNotFound, listingID)
		}
		if errors.Is(err, db.ErrForbidden) {
			return fmt.Errorf("%w (listing '%s')", ErrNotListingOwner, listingID)
		}
		return fmt.Errorf("failed to delete listing '%s': %w", listingID, err)
	}
	return nil
}
