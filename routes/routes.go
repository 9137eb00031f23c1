package routes

import (
	"time"

	"fruitdist-backend/firebase"
	"fruitdist-backend/handlers"
	"fruitdist-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storage firebase.StorageClient, verifier handlers.CredentialVerifier) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db, Verifier: verifier}
	staffHandler := &handlers.StaffHandler{DB: db}
	fruitHandler := &handlers.FruitHandler{DB: db, Storage: storage}
	locationHandler := &handlers.LocationHandler{DB: db}
	geoHandler := &handlers.GeoHandler{DB: db}
	inventoryHandler := &handlers.InventoryHandler{DB: db}
	deliveryHandler := &handlers.DeliveryHandler{DB: db}
	borrowHandler := &handlers.BorrowHandler{DB: db}

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/staff/login", loginLimiter.Middleware(), authHandler.Login)
		api.POST("/staff/google-login", loginLimiter.Middleware(), authHandler.GoogleLogin)
		api.GET("/auth/check", authHandler.Check)
		api.POST("/auth/logout", authHandler.Logout)
	}

	// Session routes (any signed-in staff)
	session := api.Group("")
	session.Use(middleware.SessionMiddleware())
	{
		session.GET("/staff/me", authHandler.GetProfile)
		session.PUT("/staff/me", authHandler.UpdateProfile)
		session.PUT("/staff/me/password", authHandler.ChangePassword)

		session.GET("/fruits", fruitHandler.GetFruits)
		session.GET("/fruits/:id", fruitHandler.GetFruit)

		session.GET("/locations", locationHandler.GetLocations)
		session.GET("/locations/:id", locationHandler.GetLocation)

		session.GET("/countries", geoHandler.GetCountries)
		session.GET("/cities", geoHandler.GetCities)

		session.GET("/inventory", inventoryHandler.GetInventory)
		session.GET("/inventory/list", inventoryHandler.GetInventoryList)
		session.POST("/inventory", inventoryHandler.CreateInventory)
		session.PUT("/inventory/update/:id", inventoryHandler.UpdateInventory)
		session.DELETE("/inventory/:id", inventoryHandler.DeleteInventory)

		session.GET("/deliveries/list", deliveryHandler.GetDeliveriesList)
		session.POST("/deliveries/insert", deliveryHandler.InsertDelivery)
		session.PUT("/deliveries/update/:id", deliveryHandler.UpdateDelivery)
		session.PUT("/deliveries/update/:id/status", deliveryHandler.UpdateDeliveryStatus)
		session.DELETE("/deliveries/delete/:id", deliveryHandler.DeleteDelivery)
		session.GET("/deliveries/report", deliveryHandler.GetReport)

		session.GET("/borrows", borrowHandler.GetBorrows)
		session.POST("/borrows/insert", borrowHandler.CreateBorrow)
		session.PUT("/borrows/:id", borrowHandler.UpdateBorrow)
		session.DELETE("/borrows/:id", borrowHandler.DeleteBorrow)
	}

	// Manager routes
	manager := api.Group("")
	manager.Use(middleware.SessionMiddleware())
	manager.Use(middleware.ManagerMiddleware())
	{
		manager.GET("/staff", staffHandler.ListStaff)
		manager.GET("/staff/:id", staffHandler.GetStaff)
		manager.POST("/staff", staffHandler.CreateStaff)
		manager.PUT("/staff/:id", staffHandler.UpdateStaff)
		manager.DELETE("/staff/:id", staffHandler.DeleteStaff)

		manager.POST("/fruits", fruitHandler.CreateFruit)
		manager.PUT("/fruits/:id", fruitHandler.UpdateFruit)
		manager.DELETE("/fruits/:id", fruitHandler.DeleteFruit)

		manager.POST("/locations", locationHandler.CreateLocation)
		manager.PUT("/locations/:id", locationHandler.UpdateLocation)
		manager.DELETE("/locations/:id", locationHandler.DeleteLocation)

		manager.POST("/countries", geoHandler.CreateCountry)
		manager.POST("/cities", geoHandler.CreateCity)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
