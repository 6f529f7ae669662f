package main

import (
	"context"                       // context package is needed for Redis operations
	"log"                           // log package is needed for logging
	"time"                          // Time durations
	"unimarket/internal/api"        // Custom package for API handlers
	"unimarket/internal/config"     // Custom package for configuration
	"unimarket/internal/middleware" // Custom package for middleware
	"unimarket/internal/repository" // Custom package for persistence
	"unimarket/internal/service"    // Custom package for business logic
	"unimarket/internal/utils"      // Custom package for utilities

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	cache := utils.NewCache(redisClient, 60*time.Second) // Read cache with 60s TTL

	// Wire repositories and services
	store := repository.NewGormStore(db)
	users := repository.NewGormUsers(store)
	categoriesRepo := repository.NewGormCategories(store)
	productsRepo := repository.NewGormProducts(store)
	cartsRepo := repository.NewGormCarts(store)
	ordersRepo := repository.NewGormOrders(store)
	reviewsRepo := repository.NewGormReviews(store)

	cartSvc := service.NewCartService(cartsRepo, productsRepo, store)
	checkoutSvc := service.NewCheckoutService(cartsRepo, productsRepo, ordersRepo, store)
	reviewSvc := service.NewReviewService(reviewsRepo, users, productsRepo)
	productSvc := service.NewProductService(productsRepo, users, categoriesRepo)
	categorySvc := service.NewCategoryService(categoriesRepo)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/api/signup", api.SignupHandler(db))               // Registration endpoint
	r.POST("/api/login", api.LoginHandler(db, cfg.JWTSecret))  // Login endpoint

	// Public catalog reads
	r.GET("/api/products", api.ListProductsHandler(productSvc, cache))              // Full catalog
	r.GET("/api/products/:id", api.GetProductHandler(productSvc))                   // One product
	r.GET("/api/categories", api.ListCategoriesHandler(categorySvc))                // All categories
	r.GET("/api/categories/:id", api.GetCategoryHandler(categorySvc))               // One category
	r.GET("/api/categories/:id/products", api.ListProductsByCategoryHandler(productSvc)) // Products of a category
	r.GET("/api/sellers/:id/products", api.ListSellerProductsHandler(productSvc))        // Products of a seller
	r.GET("/api/reviews/product/:id", api.ListProductReviewsHandler(reviewSvc, cache))   // Reviews of a product
	r.GET("/api/reviews/user/:id", api.ListUserReviewsHandler(reviewSvc))                // Reviews by a user

	// Authenticated routes (protected by JWT)
	auth := r.Group("/api")
	auth.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	auth.GET("/users/:id", api.GetUserHandler(db))       // Read a user, self or admin
	auth.PUT("/users/:id", api.UpdateUserHandler(db))    // Update a user, self or admin
	auth.DELETE("/users/:id", api.DeleteUserHandler(db)) // Delete a user, self or admin

	auth.POST("/cart/add", api.AddToCartHandler(cartSvc))                  // Merge a product into the cart
	auth.GET("/cart", api.GetCartHandler(cartSvc))                         // Read the caller's cart
	auth.PUT("/cart/:itemId", api.UpdateCartItemHandler(cartSvc))          // Replace a line's quantity
	auth.DELETE("/cart/:productId", api.RemoveCartItemHandler(cartSvc))    // Remove a product's line

	auth.POST("/orders/checkout", api.CheckoutHandler(checkoutSvc))        // Cart to order transition
	auth.GET("/orders", api.ListMyOrdersHandler(checkoutSvc))              // Caller's orders, newest first
	auth.GET("/orders/:id", api.GetOrderHandler(checkoutSvc, db))          // One order, owner or admin

	auth.POST("/reviews", api.CreateReviewHandler(reviewSvc, cache))       // Post a review
	auth.PUT("/reviews/:id", api.UpdateReviewHandler(reviewSvc, cache))    // Edit own review
	auth.DELETE("/reviews/:id", api.DeleteReviewHandler(reviewSvc, cache)) // Delete own review

	// Seller routes (protected, sellers only)
	seller := r.Group("/api")
	seller.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.SellerOnlyMiddleware(db))
	seller.POST("/products", api.CreateProductHandler(productSvc, cache))        // Create a product
	seller.PUT("/products/:id", api.UpdateProductHandler(productSvc, cache))     // Update own product
	seller.DELETE("/products/:id", api.DeleteProductHandler(productSvc, cache))  // Delete own product

	// Admin routes (protected, admin only)
	admin := r.Group("/api/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	admin.GET("/users", api.ListUsersHandler(db, cache))                  // List users endpoint
	admin.POST("/categories", api.CreateCategoryHandler(categorySvc))     // Create category
	admin.PUT("/categories/:id", api.UpdateCategoryHandler(categorySvc))  // Rename category
	admin.DELETE("/categories/:id", api.DeleteCategoryHandler(categorySvc)) // Delete category

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
