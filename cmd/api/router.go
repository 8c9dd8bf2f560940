package main

import (
	"net/http"

	"shelfio-backend/internal/shared/middleware"
	"shelfio-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

func SetupRouter(app *application) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(app.config.App.AllowedOrigins),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(app))

		setupBookRoutes(v1, app)
		setupReviewRoutes(v1, app)
		setupCollectionRoutes(v1, app)
	}

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, app *application) {
	books := v1.Group("/books")
	{
		books.POST("", app.bookHandler.CreateBook)
		books.POST("/isbn/:isbn", app.bookHandler.AddBookByISBN)
		books.GET("", app.bookHandler.GetAllBooks)
		books.GET("/count", app.bookHandler.GetBooksCount)
		books.GET("/latest", app.bookHandler.GetLatestBook)
		books.GET("/recent", app.bookHandler.GetRecentBooks)
		books.GET("/stats/pages-read", app.bookHandler.GetTotalPagesRead)
		books.GET("/status/:status", app.bookHandler.GetBooksByStatus)
		books.GET("/category/:category", app.bookHandler.GetBooksByCategory)
		books.PUT("/:id/status", app.bookHandler.UpdateReadingStatus)
		books.PUT("/:id/pages-read", app.bookHandler.UpdatePagesRead)
		books.POST("/:id/reviews", app.bookHandler.AddReview)
		books.DELETE("/:id", app.bookHandler.DeleteBook)
	}
}

// ========================================
// REVIEW ROUTES
// ========================================
func setupReviewRoutes(v1 *gin.RouterGroup, app *application) {
	reviews := v1.Group("/reviews")
	{
		reviews.GET("/:id", app.reviewHandler.GetReview)
		reviews.PUT("/:id", app.reviewHandler.UpdateReview)
		reviews.DELETE("/:id", app.reviewHandler.DeleteReview)
		reviews.GET("/book/:bookId", app.reviewHandler.GetReviewsByBook)
	}
}

// ========================================
// COLLECTION ROUTES
// ========================================
func setupCollectionRoutes(v1 *gin.RouterGroup, app *application) {
	collections := v1.Group("/collections")
	{
		collections.POST("", app.collectionHandler.CreateCollection)
		collections.GET("", app.collectionHandler.GetAllCollections)
		collections.GET("/:id", app.collectionHandler.GetCollection)
		collections.POST("/:id/books/:bookId", app.collectionHandler.AddBook)
		collections.DELETE("/:id/books/:bookId", app.collectionHandler.RemoveBook)
		collections.DELETE("/:id", app.collectionHandler.DeleteCollection)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(app *application) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		dbStatus := "up"
		cacheStatus := "up"

		ctx := c.Request.Context()
		if err := app.db.HealthCheck(ctx); err != nil {
			status = "degraded"
			dbStatus = "down"
		}
		if err := app.redis.Ping(ctx); err != nil {
			status = "degraded"
			cacheStatus = "down"
		}

		code := http.StatusOK
		if status != "healthy" {
			code = http.StatusServiceUnavailable
		}

		response.Success(c, code, gin.H{
			"status":   status,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
