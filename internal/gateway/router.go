package gateway

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"sharebox/internal/middleware"
)

// NewRouter exposes the public surface: CORS, rate limiting, validation,
// then proxying to the persistence tier.
func NewRouter(g *Gateway, redisClient *redis.Client, perMinute int) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.UserHeader}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.RateLimit(redisClient, perMinute))

	users := router.Group("/users")
	{
		users.GET("", g.forward)
		users.GET("/:id", g.forwardID)
		users.POST("", g.createUser)
		users.PATCH("/:id", g.updateUser)
		users.DELETE("/:id", g.forwardID)
	}

	items := router.Group("/items")
	items.Use(middleware.Identity())
	{
		items.GET("", g.forward)
		items.GET("/:id", g.forwardID)
		items.GET("/search", g.forward)
		items.POST("", g.createItem)
		items.PATCH("/:id", g.updateItem)
		items.POST("/:id/comment", g.addComment)
	}

	bookings := router.Group("/bookings")
	bookings.Use(middleware.Identity())
	{
		bookings.GET("", g.listUserBookings)
		bookings.GET("/owner", g.listOwnerBookings)
		bookings.GET("/:id", g.forwardID)
		bookings.POST("", g.createBooking)
		bookings.PATCH("/:id", g.decideBooking)
	}

	requests := router.Group("/requests")
	{
		requests.GET("", middleware.Identity(), g.forward)
		requests.GET("/all", g.forward)
		requests.GET("/:id", g.forwardID)
		requests.POST("", middleware.Identity(), g.createRequest)
	}

	return router
}
