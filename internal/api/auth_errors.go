package api

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"
)

// Fixed user-facing strings for identity-provider failures. The client shows
// these verbatim, so they stay stable regardless of the provider's wording.
const (
	msgEmailInUse      = "An account with this email already exists."
	msgInvalidEmail    = "Please enter a valid email address."
	msgWeakPassword    = "Password must be at least 6 characters."
	msgBadCredential   = "Invalid email or password."
	msgTooManyRequests = "Too many attempts. Please try again later."
	msgAuthGeneric     = "An unexpected error occurred. Please try again."
)

// mapAuthError translates a Firebase Auth error into an HTTP status and one
// of the fixed messages above, with a generic fallback for unmatched codes.
func mapAuthError(err error) (int, string) {
	switch {
	case auth.IsEmailAlreadyExists(err):
		return http.StatusConflict, msgEmailInUse
	case auth.IsUserNotFound(err):
		return http.StatusUnauthorized, msgBadCredential
	case errorutils.IsInvalidArgument(err):
		return http.StatusBadRequest, msgInvalidEmail
	case errorutils.IsResourceExhausted(err):
		return http.StatusTooManyRequests, msgTooManyRequests
	case errorutils.IsUnauthenticated(err):
		return http.StatusUnauthorized, msgBadCredential
	default:
		return http.StatusInternalServerError, msgAuthGeneric
	}
}
