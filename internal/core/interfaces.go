package core

import (
	"context"

	"rabbitsit-backend-go/internal/models"
)

// ProfileService defines the interface for profile and role operations.
type ProfileService interface {
	// GetOrCreate retrieves a profile by UID, creating one with defaults on
	// first sign-in. The boolean reports whether a profile was created.
	GetOrCreate(ctx context.Context, uid, email, displayName, photoURL string) (*models.Profile, bool, error)
	GetByID(ctx context.Context, uid string) (*models.Profile, error)
	// BootstrapSession fetches the profile for an authenticated user and
	// syncs the session role cache. It fails open: on a fetch failure the
	// user is treated as logged-in-without-profile and nil is returned.
	BootstrapSession(ctx context.Context, uid string) *models.Profile
	// SetActiveRole toggles the active role optimistically: the session
	// cache flips first, the remote write follows, and the cached value is
	// rolled back if the write is rejected.
	SetActiveRole(ctx context.Context, uid string, role models.UserRole) error
	// ActiveRole returns the session-cached role for uid, defaulting to
	// owner when the session has no cached value.
	ActiveRole(uid string) models.UserRole
}

// ListingService defines the interface for listing lifecycle operations.
type ListingService interface {
	Create(ctx context.Context, userID, userDisplayName string, req models.CreateListingRequest) (*models.Listing, error)
	List(ctx context.Context, filters models.ListingFilters) ([]*models.Listing, error)
	GetByID(ctx context.Context, listingID string) (*models.Listing, error)
	// Delete removes a listing on behalf of requestingUserID, enforcing the
	// ownership invariant. Returns ErrListingNotFound or ErrNotListingOwner.
	Delete(ctx context.Context, listingID, requestingUserID string) error
}
