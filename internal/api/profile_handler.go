package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rabbitsit-backend-go/internal/core"
	"rabbitsit-backend-go/internal/models"
)

// ProfileHandler handles profile and role endpoints.
type ProfileHandler struct {
	profileService core.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(ps core.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: ps}
}

// GetCurrentUserProfile handles GET /api/v1/users/me with session-bootstrap
// semantics: a failed or empty profile fetch yields a 200 with a null
// profile, not an error. The principal is authenticated either way; the
// profile read is not security-critical.
func (h *ProfileHandler) GetCurrentUserProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	profile := h.profileService.BootstrapSession(c.Request.Context(), uid)
	c.JSON(http.StatusOK, SessionResponse{
		Profile:    profile,
		ActiveRole: h.profileService.ActiveRole(uid),
	})
}

// UpdateActiveRole handles PUT /api/v1/users/me/role.
func (h *ProfileHandler) UpdateActiveRole(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid role request", Details: err.Error()})
		return
	}

	if err := h.profileService.SetActiveRole(c.Request.Context(), uid, req.ActiveRole); err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid role", Details: err.Error()})
		case errors.Is(err, core.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found"})
		default:
			log.Printf("UpdateActiveRole: SetActiveRole failed for UID %s: %v", uid, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update active role", Details: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, RoleResponse{ActiveRole: req.ActiveRole})
}
