package api

import "rabbitsit-backend-go/internal/models"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string `json:"message"`
}

// SessionResponse is the GET /users/me payload. Profile is null for a
// logged-in user whose profile document is missing or unreadable; ActiveRole
// always carries the session's current role.
type SessionResponse struct {
	Profile    *models.Profile `json:"profile"`
	ActiveRole models.UserRole `json:"activeRole"`
}

// RoleResponse is returned after a successful role toggle.
type RoleResponse struct {
	ActiveRole models.UserRole `json:"activeRole"`
}

// UploadResponse carries the public URL of an uploaded photo.
type UploadResponse struct {
	URL string `json:"url"`
}
