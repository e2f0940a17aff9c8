package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rabbitsit-backend-go/internal/core"
	"rabbitsit-backend-go/internal/models"
)

// ListingHandler handles listing lifecycle endpoints.
type ListingHandler struct {
	listingService core.ListingService
	profileService core.ProfileService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(ls core.ListingService, ps core.ProfileService) *ListingHandler {
	return &ListingHandler{listingService: ls, profileService: ps}
}

// CreateListing handles POST /api/v1/listings. The creator's identity comes
// from the verified token and the stored profile, never from the body.
func (h *ListingHandler) CreateListing(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid listing request", Details: err.Error()})
		return
	}

	displayName := contextString(c, "userDisplayName")
	if profile, err := h.profileService.GetByID(c.Request.Context(), uid); err == nil {
		displayName = profile.DisplayName
	}
	if displayName == "" {
		displayName = "User"
	}

	listing, err := h.listingService.Create(c.Request.Context(), uid, displayName, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidDateRange),
			errors.Is(err, core.ErrNegativePrice),
			errors.Is(err, core.ErrMismatchedVariant):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid listing", Details: err.Error()})
		default:
			log.Printf("CreateListing: failed for UID %s: %v", uid, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create listing", Details: err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// ListListings handles GET /api/v1/listings with optional listingType,
// serviceType and location query filters. Browsing is public; the active
// role never restricts reads.
func (h *ListingHandler) ListListings(c *gin.Context) {
	filters := models.ListingFilters{
		ListingType: models.ListingType(c.Query("listingType")),
		ServiceType: models.ServiceType(c.Query("serviceType")),
		Location:    c.Query("location"),
	}

	switch filters.ListingType {
	case "", models.ListingTypeOwner, models.ListingTypeSitter:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid listingType filter"})
		return
	}
	switch filters.ServiceType {
	case "", models.ServiceTypeHost, models.ServiceTypeVisit, models.ServiceTypeBoth:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid serviceType filter"})
		return
	}

	listings, err := h.listingService.List(c.Request.Context(), filters)
	if err != nil {
		log.Printf("ListListings: failed: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list listings", Details: err.Error()})
		return
	}
	if listings == nil {
		listings = []*models.Listing{}
	}

	c.JSON(http.StatusOK, listings)
}

// GetListing handles GET /api/v1/listings/:listingId. Absence is a 404,
// distinct from authorization or transport failures.
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID := c.Param("listingId")

	listing, err := h.listingService.GetByID(c.Request.Context(), listingID)
	if err != nil {
		if errors.Is(err, core.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Listing not found"})
			return
		}
		log.Printf("GetListing: failed for ID %s: %v", listingID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get listing", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// DeleteListing handles DELETE /api/v1/listings/:listingId, enforcing the
// ownership invariant.
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	listingID := c.Param("listingId")

	if err := h.listingService.Delete(c.Request.Context(), listingID, uid); err != nil {
		switch {
		case errors.Is(err, core.ErrListingNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Listing not found"})
		case errors.Is(err, core.ErrNotListingOwner):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not authorized to delete this listing"})
		default:
			log.Printf("DeleteListing: failed for ID %s, UID %s: %v", listingID, uid, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete listing", Details: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Listing deleted"})
}
