package routes

import (
	"time"

	"catalog-admin/handlers"
	"catalog-admin/middleware"
	"catalog-admin/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies carries the collaborators the handlers are built from.
// Minter, Uploader and Fetcher may be nil when the matching provider is not
// configured; their endpoints then answer with an error instead of panicking.
type Dependencies struct {
	DB             *gorm.DB
	Minter         handlers.CredentialMinter
	Uploader       handlers.ImageUploader
	Fetcher        handlers.RemoteImageFetcher
	Notify         func(utils.ContactNotification)
	AllowedOrigins []string
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	utils.UseJSONFieldNames()

	authHandler := &handlers.AuthHandler{DB: deps.DB}
	authTokenHandler := &handlers.AuthTokenHandler{Minter: deps.Minter}
	categoryHandler := &handlers.CategoryHandler{DB: deps.DB}
	subCategoryHandler := &handlers.SubCategoryHandler{DB: deps.DB}
	productHandler := &handlers.ProductHandler{DB: deps.DB}
	regionHandler := &handlers.RegionHandler{DB: deps.DB}
	messageHandler := &handlers.MessageHandler{DB: deps.DB, Notify: deps.Notify}
	dashboardHandler := &handlers.DashboardHandler{DB: deps.DB}
	mediaHandler := &handlers.MediaHandler{DB: deps.DB, Uploader: deps.Uploader, Fetcher: deps.Fetcher}

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	contactLimiter := middleware.NewRateLimiter(5, time.Minute)
	mintLimiter := middleware.NewRateLimiter(60, time.Minute)

	r.Use(middleware.AdminCORS(deps.AllowedOrigins, "/auth"))

	// Upload credential minting, open to any origin
	uploadAuth := r.Group("/auth")
	uploadAuth.Use(middleware.UploadAuthCORS(), mintLimiter.Middleware())
	{
		uploadAuth.GET("", authTokenHandler.GetAuthToken)
		uploadAuth.OPTIONS("", authTokenHandler.GetAuthToken)
	}

	api := r.Group("/api")
	{
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)
		api.POST("/auth/refresh", loginLimiter.Middleware(), authHandler.Refresh)
		api.POST("/contact", contactLimiter.Middleware(), messageHandler.SubmitMessage)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/me", authHandler.Me)
		admin.GET("/dashboard", dashboardHandler.GetDashboard)

		// Categories
		admin.GET("/categories", categoryHandler.GetCategories)
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.GET("/categories/:id", categoryHandler.GetCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		// Subcategories
		admin.GET("/subcategories", subCategoryHandler.GetSubCategories)
		admin.POST("/subcategories", subCategoryHandler.CreateSubCategory)
		admin.GET("/subcategories/:id", subCategoryHandler.GetSubCategory)
		admin.PUT("/subcategories/:id", subCategoryHandler.UpdateSubCategory)
		admin.DELETE("/subcategories/:id", subCategoryHandler.DeleteSubCategory)
		admin.GET("/filters/subcategories", subCategoryHandler.GetSubCategoryOptions)

		// Products
		admin.GET("/products", productHandler.GetProducts)
		admin.POST("/products", productHandler.CreateProduct)
		admin.GET("/products/:id", productHandler.GetProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.PUT("/products/:id/colors/:colorId/default", productHandler.SetDefaultColor)

		// Regions
		admin.GET("/regions", regionHandler.GetRegions)
		admin.POST("/regions", regionHandler.CreateRegion)
		admin.GET("/regions/:id", regionHandler.GetRegion)
		admin.PUT("/regions/:id", regionHandler.UpdateRegion)
		admin.DELETE("/regions/:id", regionHandler.DeleteRegion)

		// Contact messages
		admin.GET("/messages", messageHandler.GetMessages)
		admin.PUT("/messages/:id/read", messageHandler.MarkRead)
		admin.DELETE("/messages/:id", messageHandler.DeleteMessage)

		// Media library
		admin.GET("/media", mediaHandler.GetMedia)
		admin.POST("/media", mediaHandler.UploadMedia)
		admin.POST("/media/import", mediaHandler.ImportMedia)
		admin.DELETE("/media/:id", mediaHandler.DeleteMedia)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
