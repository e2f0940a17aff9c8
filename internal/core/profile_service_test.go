package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"rabbitsit-backend-go/internal/db"
	"rabbitsit-backend-go/internal/models"
)

// fakeProfileRepo is an in-memory ProfileRepository with injectable failures.
type fakeProfileRepo struct {
	profiles  map[string]*models.Profile
	getErr    error
	createErr error
	updateErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*models.Profile)}
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, uid string) (*models.Profile, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.profiles[uid]
	if !ok {
		return nil, fmt.Errorf("profile for UID '%s' not found: %w", uid, db.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.profiles[profile.UID]; ok {
		return fmt.Errorf("profile for UID '%s' already exists: %w", profile.UID, db.ErrAlreadyExists)
	}
	stored := *profile
	stored.CreatedAt = time.Now().UTC()
	r.profiles[profile.UID] = &stored
	return nil
}

func (r *fakeProfileRepo) UpdateActiveRole(ctx context.Context, uid string, role models.UserRole) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	p, ok := r.profiles[uid]
	if !ok {
		return fmt.Errorf("profile for UID '%s' not found: %w", uid, db.ErrNotFound)
	}
	p.ActiveRole = role
	return nil
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, zap.NewNop())
	ctx := context.Background()

	first, created, err := svc.GetOrCreate(ctx, "uid-1", "alice@example.com", "Alice", "")
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}
	if !created {
		t.Fatal("first GetOrCreate should create a profile")
	}
	if first.ActiveRole != models.RoleOwner {
		t.Fatalf("new profiles default to owner, got %s", first.ActiveRole)
	}

	second, created, err := svc.GetOrCreate(ctx, "uid-1", "alice@example.com", "Alice", "")
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if created {
		t.Fatal("second GetOrCreate must not create again")
	}
	if second.UID != first.UID || second.Email != first.Email {
		t.Fatalf("second GetOrCreate returned a different profile: %+v", second)
	}
}

func TestGetOrCreateDefaultsDisplayName(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(), zap.NewNop())

	profile, _, err := svc.GetOrCreate(context.Background(), "uid-1", "a@example.com", "", "")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if profile.DisplayName != "User" {
		t.Fatalf("expected display name fallback 'User', got %q", profile.DisplayName)
	}
}

// missOnceProfileRepo reports NotFound on the first read only, emulating a
// concurrent first sign-in that writes the profile between our read and our
// create attempt.
type missOnceProfileRepo struct {
	*fakeProfileRepo
	missed bool
}

func (r *missOnceProfileRepo) GetByID(ctx context.Context, uid string) (*models.Profile, error) {
	if !r.missed {
		r.missed = true
		return nil, fmt.Errorf("profile for UID '%s' not found: %w", uid, db.ErrNotFound)
	}
	return r.fakeProfileRepo.GetByID(ctx, uid)
}

func TestGetOrCreateFallsBackAfterLostCreateRace(t *testing.T) {
	inner := newFakeProfileRepo()
	inner.profiles["uid-1"] = &models.Profile{UID: "uid-1", Email: "a@example.com", DisplayName: "Winner", ActiveRole: models.RoleSitter}
	repo := &missOnceProfileRepo{fakeProfileRepo: inner}
	svc := NewProfileService(repo, zap.NewNop())

	// First read misses, the create collides with the winner's document, and
	// the service must fall back to reading the stored profile.
	got, created, err := svc.GetOrCreate(context.Background(), "uid-1", "a@example.com", "Loser", "")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if created {
		t.Fatal("losing the create race must not report a creation")
	}
	if got.DisplayName != "Winner" || got.ActiveRole != models.RoleSitter {
		t.Fatalf("stored document must win the race, got %+v", got)
	}
}

func TestSetActiveRoleUpdatesStoreAndSession(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, zap.NewNop())
	ctx := context.Background()

	if _, _, err := svc.GetOrCreate(ctx, "uid-1", "a@example.com", "Alice", ""); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if err := svc.SetActiveRole(ctx, "uid-1", models.RoleSitter); err != nil {
		t.Fatalf("SetActiveRole: %v", err)
	}
	if got := svc.ActiveRole("uid-1"); got != models.RoleSitter {
		t.Fatalf("session role not updated, got %s", got)
	}
	if repo.profiles["uid-1"].ActiveRole != models.RoleSitter {
		t.Fatalf("stored role not updated, got %s", repo.profiles["uid-1"].ActiveRole)
	}
}

func TestSetActiveRoleRollsBackOnRemoteFailure(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, zap.NewNop())
	ctx := context.Background()

	if _, _, err := svc.GetOrCreate(ctx, "uid-1", "a@example.com", "Alice", ""); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	before := svc.ActiveRole("uid-1")

	repo.updateErr = errors.New("store unavailable")
	err := svc.SetActiveRole(ctx, "uid-1", models.RoleSitter)
	if err == nil {
		t.Fatal("SetActiveRole should propagate the remote failure")
	}

	// Rollback property: the locally observed role equals the role held
	// immediately before the attempted toggle.
	if got := svc.ActiveRole("uid-1"); got != before {
		t.Fatalf("expected rollback to %s, got %s", before, got)
	}
	if repo.profiles["uid-1"].ActiveRole != before {
		t.Fatalf("stored role must be unchanged, got %s", repo.profiles["uid-1"].ActiveRole)
	}
}

func TestSetActiveRoleRejectsUnknownRole(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(), zap.NewNop())

	err := svc.SetActiveRole(context.Background(), "uid-1", models.UserRole("landlord"))
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestBootstrapSessionFailsOpen(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, zap.NewNop())
	ctx := context.Background()

	// A profile fetch failure is treated as profile-absent, never as an
	// error: the caller stays logged in without a profile.
	repo.getErr = errors.New("store unavailable")
	if profile := svc.BootstrapSession(ctx, "uid-1"); profile != nil {
		t.Fatalf("expected nil profile on fetch failure, got %+v", profile)
	}
	if got := svc.ActiveRole("uid-1"); got != models.RoleOwner {
		t.Fatalf("profileless session should default to owner, got %s", got)
	}

	// With a healthy store the bootstrap syncs the session role.
	repo.getErr = nil
	repo.profiles["uid-1"] = &models.Profile{UID: "uid-1", Email: "a@example.com", DisplayName: "Alice", ActiveRole: models.RoleSitter}
	profile := svc.BootstrapSession(ctx, "uid-1")
	if profile == nil || profile.ActiveRole != models.RoleSitter {
		t.Fatalf("expected sitter profile, got %+v", profile)
	}
	if got := svc.ActiveRole("uid-1"); got != models.RoleSitter {
		t.Fatalf("session role not synced from profile, got %s", got)
	}
}
