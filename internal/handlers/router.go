package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sharebox/internal/metrics"
	"sharebox/internal/middleware"
	"sharebox/internal/services"
)

// Services bundles the service layer handed to the router.
type Services struct {
	Users    *services.UserService
	Items    *services.ItemService
	Bookings *services.BookingService
	Requests *services.RequestService
}

// NewRouter wires every route of the persistence tier.
func NewRouter(svc Services) *gin.Engine {
	metrics.Register()

	router := gin.Default()
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := router.Group("/users")
	{
		users.GET("", ListUsers(svc.Users))
		users.GET("/:id", GetUser(svc.Users))
		users.POST("", CreateUser(svc.Users))
		users.PATCH("/:id", UpdateUser(svc.Users))
		users.DELETE("/:id", DeleteUser(svc.Users))
	}

	items := router.Group("/items")
	items.Use(middleware.Identity())
	{
		items.GET("", ListUserItems(svc.Items))
		items.GET("/:id", GetItem(svc.Items))
		items.GET("/search", SearchItems(svc.Items))
		items.POST("", CreateItem(svc.Items))
		items.PATCH("/:id", UpdateItem(svc.Items))
		items.POST("/:id/comment", AddComment(svc.Items))
	}

	bookings := router.Group("/bookings")
	bookings.Use(middleware.Identity())
	{
		bookings.GET("", ListUserBookings(svc.Bookings))
		bookings.GET("/owner", ListOwnerBookings(svc.Bookings))
		bookings.GET("/:id", GetBooking(svc.Bookings))
		bookings.POST("", CreateBooking(svc.Bookings))
		bookings.PATCH("/:id", DecideBooking(svc.Bookings))
	}

	requests := router.Group("/requests")
	{
		requests.GET("", middleware.Identity(), ListUserRequests(svc.Requests))
		requests.GET("/all", ListAllRequests(svc.Requests))
		requests.GET("/:id", GetRequest(svc.Requests))
		requests.POST("", middleware.Identity(), CreateRequest(svc.Requests))
	}

	return router
}
