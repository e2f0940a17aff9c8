package db

import (
	"context"

	"rabbitsit-backend-go/internal/models"
)

// ProfileRepository defines the interface for user profile storage operations.
type ProfileRepository interface {
	GetByID(ctx context.Context, uid string) (*models.Profile, error)
	// Create writes a new profile document keyed by the auth UID.
	// Returns ErrAlreadyExists if a profile for that UID is already stored.
	Create(ctx context.Context, profile *models.Profile) error
	// UpdateActiveRole changes only the activeRole field of an existing profile.
	UpdateActiveRole(ctx context.Context, uid string, role models.UserRole) error
}

// ListingRepository defines the interface for listing storage operations.
// Listings are append-only from the application's perspective; there is no
// update operation, only create, read and an owner-checked delete.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) (string, error) // returns new listing ID
	GetByID(ctx context.Context, listingID string) (*models.Listing, error)
	// List returns listings matching the equality filters (listingType,
	// serviceType), newest first. Location filtering is not a store concern
	// and is applied by the service layer.
	List(ctx context.Context, filters models.ListingFilters) ([]*models.Listing, error)
	// DeleteOwned atomically reads the listing, verifies ownership and
	// deletes it. Returns ErrNotFound if absent, ErrForbidden when
	// requestingUserID does not match the stored userId.
	DeleteOwned(ctx context.Context, listingID, requestingUserID string) error
}
