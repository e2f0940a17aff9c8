package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rabbitsit-backend-go/internal/models"
)

const usersCollection = "users"

// ErrNotFound is returned when a document does not exist in Firestore.
var ErrNotFound = errors.New("document not found")

// ErrAlreadyExists is returned when a create targets an existing document.
var ErrAlreadyExists = errors.New("document already exists")

// ErrForbidden is returned when a mutation is attempted by a user who does
// not own the target document.
var ErrForbidden = errors.New("not authorized")

// firestoreProfileRepository implements ProfileRepository using Firestore.
type firestoreProfileRepository struct {
	client *firestore.Client
}

// NewFirestoreProfileRepository creates a new instance of firestoreProfileRepository.
func NewFirestoreProfileRepository(client *firestore.Client) ProfileRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ProfileRepository.")
	}
	return &firestoreProfileRepository{client: client}
}

// Create adds a new profile document to Firestore. The profile's UID (the
// Firebase Auth UID) is used as the document ID, so at most one profile can
// exist per principal. CreatedAt is stamped server-side via the
// serverTimestamp tag on models.Profile.
func (r *firestoreProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.UID == "" {
		return errors.New("profile UID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(profile.UID).Create(ctx, profile)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("profile for UID '%s' already exists: %w", profile.UID, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create profile for UID '%s': %w", profile.UID, err)
	}
	return nil
}

// GetByID retrieves a profile document from Firestore by its UID.
func (r *firestoreProfileRepository) GetByID(ctx context.Context, uid string) (*models.Profile, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("profile for UID '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile for UID '%s': %w", uid, err)
	}

	var profile models.Profile
	if err := docSnap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile data for UID '%s': %w", uid, err)
	}
	profile.UID = docSnap.Ref.ID

	return &profile, nil
}

// UpdateActiveRole writes only the activeRole field. Firestore's Update fails
// with NotFound when the document is absent, so a role toggle can never
// create a profile as a side effect.
func (r *firestoreProfileRepository) UpdateActiveRole(ctx context.Context, uid string, role models.UserRole) error {
	if uid == "" {
		return errors.New("uid cannot be empty for UpdateActiveRole operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "activeRole", Value: role},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("profile for UID '%s' not found: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to update active role for UID '%s': %w", uid, err)
	}
	return nil
}
