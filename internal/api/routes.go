package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rabbitsit-backend-go/internal/config"
	"rabbitsit-backend-go/internal/core"
	"rabbitsit-backend-go/internal/db"
	"rabbitsit-backend-go/internal/middleware"
	"rabbitsit-backend-go/internal/storage"
)

// SetupRoutes configures all application routes. Global middleware (logging,
// recovery, CORS) is applied to the router before this is called, in main.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	profileService core.ProfileService,
	listingService core.ListingService,
	uploader storage.Uploader,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("CRITICAL_SETUP_ERROR: Firebase Auth client is not initialized; routes cannot be guarded.")
		panic("Firebase Auth client is nil during route setup")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient)

	authHandler := NewAuthHandler(firebaseAuthClient, profileService)
	profileHandler := NewProfileHandler(profileService)
	listingHandler := NewListingHandler(listingService, profileService)
	uploadHandler := NewUploadHandler(uploader)

	apiV1 := router.Group("/api/v1")
	{
		// Sign-up is public; everything else under /auth and /users needs a
		// verified token.
		apiV1.POST("/auth/signup", authHandler.SignUp)

		usersGroup := apiV1.Group("/users", authMW.VerifyToken())
		{
			usersGroup.POST("/initialize", authHandler.InitializeUserProfile)
			usersGroup.GET("/me", profileHandler.GetCurrentUserProfile)
			usersGroup.PUT("/me/role", profileHandler.UpdateActiveRole)
		}

		// Browsing and fetching listings is public; creating and deleting
		// require authentication.
		listingsGroup := apiV1.Group("/listings")
		{
			listingsGroup.GET("", listingHandler.ListListings)
			listingsGroup.GET("/:listingId", listingHandler.GetListing)
			listingsGroup.POST("", authMW.VerifyToken(), listingHandler.CreateListing)
			listingsGroup.DELETE("/:listingId", authMW.VerifyToken(), listingHandler.DeleteListing)
		}

		uploadsGroup := apiV1.Group("/uploads", authMW.VerifyToken())
		{
			uploadsGroup.POST("/rabbit-photo", uploadHandler.UploadRabbitPhoto)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Rabbitsit backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
