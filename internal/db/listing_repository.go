package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rabbitsit-backend-go/internal/models"
)

const listingsCollection = "listings"

// firestoreListingRepository implements ListingRepository using Firestore.
type firestoreListingRepository struct {
	client *firestore.Client
}

// NewFirestoreListingRepository creates a new instance of firestoreListingRepository.
func NewFirestoreListingRepository(client *firestore.Client) ListingRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ListingRepository.")
	}
	return &firestoreListingRepository{client: client}
}

// Create adds a new listing document with an auto-generated ID and sets
// listing.ID before the write. CreatedAt is stamped by Firestore's clock via
// the serverTimestamp tag. There is no uniqueness constraint beyond the
// store-assigned identity; duplicate listings are permitted.
func (r *firestoreListingRepository) Create(ctx context.Context, listing *models.Listing) (string, error) {
	docRef := r.client.Collection(listingsCollection).NewDoc()
	listing.ID = docRef.ID

	_, err := docRef.Create(ctx, listing)
	if err != nil {
		return "", fmt.Errorf("failed to create listing: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a listing document by its ID. Absence is reported as
// ErrNotFound, distinct from network or permission failures.
func (r *firestoreListingRepository) GetByID(ctx context.Context, listingID string) (*models.Listing, error) {
	if listingID == "" {
		return nil, errors.New("listingID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(listingsCollection).Doc(listingID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("listing with ID '%s' not found: %w", listingID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get listing with ID '%s': %w", listingID, err)
	}

	var listing models.Listing
	if err := docSnap.DataTo(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode listing data for ID '%s': %w", listingID, err)
	}
	listing.ID = docSnap.Ref.ID

	return &listing, nil
}

// List returns listings ordered by createdAt descending. ListingType and
// serviceType filters are pushed down as Firestore equality predicates; the
// free-text location filter is the service layer's job. Ordering is not a
// total order when two listings share a store-clock timestamp; it is
// display-only and carries no correctness dependency.
func (r *firestoreListingRepository) List(ctx context.Context, filters models.ListingFilters) ([]*models.Listing, error) {
	query := r.client.Collection(listingsCollection).Query
	if filters.ListingType != "" {
		query = query.Where("listingType", "==", filters.ListingType)
	}
	if filters.ServiceType != "" {
		query = query.Where("serviceType", "==", filters.ServiceType)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var listings []*models.Listing
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate listings: %w", err)
		}

		var listing models.Listing
		if err := doc.DataTo(&listing); err != nil {
			log.Printf("Error decoding listing data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		listing.ID = doc.Ref.ID
		listings = append(listings, &listing)
	}

	return listings, nil
}

// DeleteOwned deletes a listing on behalf of requestingUserID. The read, the
// ownership comparison and the delete run inside one Firestore transaction,
// so a concurrent delete cannot slip between the check and the act.
func (r *firestoreListingRepository) DeleteOwned(ctx context.Context, listingID, requestingUserID string) error {
	if listingID == "" {
		return errors.New("listingID cannot be empty for DeleteOwned operation")
	}
	if requestingUserID == "" {
		return errors.New("requestingUserID cannot be empty for DeleteOwned operation")
	}

	docRef := r.client.Collection(listingsCollection).Doc(listingID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("listing with ID '%s' not found: %w", listingID, ErrNotFound)
			}
			return fmt.Errorf("failed to get listing with ID '%s': %w", listingID, err)
		}

		var listing models.Listing
		if err := snap.DataTo(&listing); err != nil {
			return fmt.Errorf("failed to decode listing data for ID '%s': %w", listingID, err)
		}
		if listing.UserID != requestingUserID {
			return fmt.Errorf("user '%s' does not own listing '%s': %w", requestingUserID, listingID, ErrForbidden)
		}

		return tx.Delete(docRef)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
			return err
		}
		return fmt.Errorf("failed to delete listing with ID '%s': %w", listingID, err)
	}
	return nil
}
