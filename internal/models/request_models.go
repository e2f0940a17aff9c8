package models

import "time"

// SignUpRequest is the request body for creating a new account.
// The min=6 password rule mirrors the provider's weak-password threshold so
// the client gets the mapped message without a provider round trip.
type SignUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName" binding:"required"`
}

// UpdateRoleRequest is the request body for switching the active role.
type UpdateRoleRequest struct {
	ActiveRole UserRole `json:"activeRole" binding:"required,oneof=owner sitter admin"`
}

// CreateListingRequest is the request body for publishing a listing.
// UserID and UserDisplayName are never accepted from the client; they are
// stamped server-side from the verified token and the stored profile.
type CreateListingRequest struct {
	ListingType    ListingType `json:"listingType" binding:"required,oneof=owner sitter"`
	Title          string      `json:"title" binding:"required"`
	Description    string      `json:"description" binding:"required"`
	ServiceType    ServiceType `json:"serviceType" binding:"required,oneof=host visit both"`
	Location       string      `json:"location" binding:"required"`
	DateFrom       time.Time   `json:"dateFrom" binding:"required"`
	DateTo         time.Time   `json:"dateTo" binding:"required"`
	PricePerNight  float64     `json:"pricePerNight" binding:"min=0"`
	RabbitPhotoURL string      `json:"rabbitPhotoURL,omitempty"`
	RabbitName     string      `json:"rabbitName,omitempty"`
	Experience     string      `json:"experience,omitempty"`
}
