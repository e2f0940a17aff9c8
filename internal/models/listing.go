package models

import "time"

// ListingType distinguishes "seeking care" posts from "offering services" posts.
type ListingType string

const (
	ListingTypeOwner  ListingType = "owner"
	ListingTypeSitter ListingType = "sitter"
)

// ServiceType is the kind of care a listing covers.
type ServiceType string

const (
	ServiceTypeHost  ServiceType = "host"  // sitter hosts the rabbit at their place
	ServiceTypeVisit ServiceType = "visit" // sitter visits the rabbit's home
	ServiceTypeBoth  ServiceType = "both"
)

// Listing is a published service post. Listings are immutable after creation;
// the only mutation is an owner-initiated delete. UserID is stamped from the
// creating user's auth UID at write time and never changes afterwards.
//
// Owner listings may carry RabbitName/RabbitPhotoURL, sitter listings may
// carry Experience. The two field sets are mutually exclusive; the listing
// service rejects writes that mix them.
type Listing struct {
	ID              string      `json:"id" firestore:"-"` // Firestore document ID, auto-generated
	UserID          string      `json:"userId" firestore:"userId"`
	UserDisplayName string      `json:"userDisplayName" firestore:"userDisplayName"`
	ListingType     ListingType `json:"listingType" firestore:"listingType"`
	Title           string      `json:"title" firestore:"title"`
	Description     string      `json:"description" firestore:"description"`
	ServiceType     ServiceType `json:"serviceType" firestore:"serviceType"`
	Location        string      `json:"location" firestore:"location"`
	DateFrom        time.Time   `json:"dateFrom" firestore:"dateFrom"`
	DateTo          time.Time   `json:"dateTo" firestore:"dateTo"`
	PricePerNight   float64     `json:"pricePerNight" firestore:"pricePerNight"`
	RabbitPhotoURL  string      `json:"rabbitPhotoURL,omitempty" firestore:"rabbitPhotoURL,omitempty"`
	RabbitName      string      `json:"rabbitName,omitempty" firestore:"rabbitName,omitempty"`
	Experience      string      `json:"experience,omitempty" firestore:"experience,omitempty"`
	CreatedAt       time.Time   `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// ListingFilters narrows a browse query. ListingType and ServiceType are
// pushed down to Firestore as equality predicates; Location is matched
// in-process as a case-insensitive substring over the predicate result set.
type ListingFilters struct {
	ListingType ListingType
	ServiceType ServiceType
	Location    string
}
