package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"rabbitsit-backend-go/internal/db"
	"rabbitsit-backend-go/internal/models"
)

// Custom errors for the ProfileService.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidRole     = errors.New("invalid role")
)

// profileService implements the ProfileService interface. Besides the
// Firestore-backed profile store it keeps a small in-memory cache of each
// session's active role, which is what makes the optimistic toggle (flip
// locally, confirm remotely, roll back on rejection) observable.
type profileService struct {
	profileRepo db.ProfileRepository
	logger      *zap.Logger

	mu    sync.Mutex
	roles map[string]models.UserRole // uid -> session-cached active role
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(profileRepo db.ProfileRepository, logger *zap.Logger) ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &profileService{
		profileRepo: profileRepo,
		logger:      logger,
		roles:       make(map[string]models.UserRole),
	}
}

// GetOrCreate retrieves a profile by UID, creating one on first sign-in.
// Creation is idempotent: a concurrent first sign-in that loses the create
// race falls back to reading the winner's document.
func (s *profileService) GetOrCreate(ctx context.Context, uid, email, displayName, photoURL string) (*models.Profile, bool, error) {
	if s.profileRepo == nil {
		return nil, false, errors.New("ProfileRepository not initialized in ProfileService")
	}

	profile, err := s.profileRepo.GetByID(ctx, uid)
	if err == nil {
		s.cacheRole(uid, profile.ActiveRole)
		return profile, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to get profile for UID '%s': %w", uid, err)
	}

	if displayName == "" {
		displayName = "User"
	}
	newProfile := &models.Profile{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		ActiveRole:  models.RoleOwner,
		CreatedAt:   time.Now().UTC(), // overridden by the store's serverTimestamp
	}
	if createErr := s.profileRepo.Create(ctx, newProfile); createErr != nil {
		if errors.Is(createErr, db.ErrAlreadyExists) {
			// Lost a creation race; the stored document wins.
			existing, getErr := s.profileRepo.GetByID(ctx, uid)
			if getErr != nil {
				return nil, false, fmt.Errorf("profile for UID '%s' exists but could not be read: %w", uid, getErr)
			}
			s.cacheRole(uid, existing.ActiveRole)
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create profile for UID '%s': %w", uid, createErr)
	}

	s.cacheRole(uid, newProfile.ActiveRole)
	return newProfile, true, nil
}

// GetByID retrieves a profile by UID.
func (s *profileService) GetByID(ctx context.Context, uid string) (*models.Profile, error) {
	if s.profileRepo == nil {
		return nil, errors.New("ProfileRepository not initialized in ProfileService")
	}
	profile, err := s.profileRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: UID '%s'", ErrProfileNotFound, uid)
		}
		return nil, fmt.Errorf("failed to get profile for UID '%s': %w", uid, err)
	}
	return profile, nil
}

// BootstrapSession fetches the profile on an identity-provider state change
// and syncs the session role. A fetch failure is treated as profile-absent
// (logged-in-but-profileless), never as logged-out: availability over
// consistency for a non-security-critical read.
func (s *profileService) BootstrapSession(ctx context.Context, uid string) *models.Profile {
	profile, err := s.profileRepo.GetByID(ctx, uid)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			s.logger.Warn("Profile fetch failed during session bootstrap; proceeding without profile",
				zap.String("uid", uid),
				zap.Error(err),
			)
		}
		return nil
	}
	s.cacheRole(uid, profile.ActiveRole)
	return profile
}

// SetActiveRole applies the role optimistically. The session cache flips
// before the remote write; if the write is rejected the cached value is
// restored to the snapshot taken before the toggle and the error propagates.
func (s *profileService) SetActiveRole(ctx context.Context, uid string, role models.UserRole) error {
	if !role.Valid() {
		return fmt.Errorf("%w: '%s'", ErrInvalidRole, role)
	}

	s.mu.Lock()
	prev, hadPrev := s.roles[uid]
	s.roles[uid] = role
	s.mu.Unlock()

	if err := s.profileRepo.UpdateActiveRole(ctx, uid, role); err != nil {
		s.mu.Lock()
		if hadPrev {
			s.roles[uid] = prev
		} else {
			delete(s.roles, uid)
		}
		s.mu.Unlock()

		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: UID '%s'", ErrProfileNotFound, uid)
		}
		return fmt.Errorf("failed to update active role for UID '%s': %w", uid, err)
	}
	return nil
}

// ActiveRole returns the session-cached role, defaulting to owner.
func (s *profileService) ActiveRole(uid string) models.UserRole {
	s.mu.Lock()
	defer s.mu.Unlock()
	if role, ok := s.roles[uid]; ok {
		return role
	}
	return models.RoleOwner
}

func (s *profileService) cacheRole(uid string, role models.UserRole) {
	s.mu.Lock()
	s.roles[uid] = role
	s.mu.Unlock()
}
