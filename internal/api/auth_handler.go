package api

import (
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"rabbitsit-backend-go/internal/core"
	"rabbitsit-backend-go/internal/models"
)

// AuthHandler handles sign-up and profile initialization endpoints.
type AuthHandler struct {
	authClient     *auth.Client
	profileService core.ProfileService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authClient *auth.Client, ps core.ProfileService) *AuthHandler {
	return &AuthHandler{authClient: authClient, profileService: ps}
}

// SignUp handles POST /api/v1/auth/signup. It creates the Firebase Auth user
// and the profile document in one request. Provider errors are mapped to
// fixed human-readable strings; the raw provider message never reaches the
// client.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// The binding rules mirror the provider's constraints, so the two
		// most common failures get their mapped strings without a provider
		// round trip.
		msg := msgInvalidEmail
		if len(req.Password) > 0 && len(req.Password) < 6 {
			msg = msgWeakPassword
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Details: err.Error()})
		return
	}

	params := (&auth.UserToCreate{}).
		Email(req.Email).
		Password(req.Password).
		DisplayName(req.DisplayName)

	userRecord, err := h.authClient.CreateUser(c.Request.Context(), params)
	if err != nil {
		log.Printf("SignUp: CreateUser failed for email %s: %v", req.Email, err)
		status, msg := mapAuthError(err)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	profile, _, err := h.profileService.GetOrCreate(c.Request.Context(), userRecord.UID, req.Email, req.DisplayName, "")
	if err != nil {
		// The auth user exists but the profile write failed; the client can
		// recover via POST /users/initialize after signing in.
		log.Printf("SignUp: profile creation failed for UID %s: %v", userRecord.UID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to initialize user profile", Details: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// InitializeUserProfile handles POST /api/v1/users/initialize. Clients call
// it after a Firebase sign-in event to ensure a backend profile exists; the
// operation is idempotent (existence check before write).
func (h *AuthHandler) InitializeUserProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	email := contextString(c, "userEmail")
	displayName := contextString(c, "userDisplayName")
	photoURL := contextString(c, "userPhotoURL")

	profile, created, err := h.profileService.GetOrCreate(c.Request.Context(), uid, email, displayName, photoURL)
	if err != nil {
		log.Printf("InitializeUserProfile: GetOrCreate failed for UID %s: %v", uid, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to initialize user profile", Details: err.Error()})
		return
	}

	if created {
		c.JSON(http.StatusCreated, profile)
	} else {
		c.JSON(http.StatusOK, profile)
	}
}
