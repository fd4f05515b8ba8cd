package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"sharebox/internal/models"
	"sharebox/internal/services"
)

// CreateBooking books a time window on an item for the calling user
func CreateBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		var input struct {
			ItemID uint             `json:"itemId" binding:"required"`
			Start  *models.DateTime `json:"start" binding:"required"`
			End    *models.DateTime `json:"end" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		booking, err := svc.Create(c.Request.Context(), userID, input.ItemID, input.Start.Time, input.End.Time)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(201, newBookingResponse(*booking))
	}
}

// DecideBooking lets the item owner approve or reject a waiting booking
func DecideBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		bookingID, ok := paramID(c, "id")
		if !ok {
			return
		}
		approved, err := strconv.ParseBool(c.Query("approved"))
		if err != nil {
			c.JSON(400, gin.H{"error": "approved query parameter required"})
			return
		}

		booking, err := svc.Decide(c.Request.Context(), userID, bookingID, approved)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(200, newBookingResponse(*booking))
	}
}

// GetBooking returns a booking to its booker or the item owner
func GetBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		bookingID, ok := paramID(c, "id")
		if !ok {
			return
		}

		booking, err := svc.Get(c.Request.Context(), userID, bookingID)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(200, newBookingResponse(*booking))
	}
}

// ListUserBookings returns the caller's bookings filtered by state
func ListUserBookings(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		state, ok := models.ParseBookingState(c.Query("state"))
		if !ok {
			c.JSON(400, gin.H{"error": "Unknown state: " + c.Query("state")})
			return
		}
		from := queryInt(c, "from", 0)
		size := queryInt(c, "size", 10)

		bookings, err := svc.ListForUser(c.Request.Context(), userID, state, from, size)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(200, newBookingResponses(bookings))
	}
}

// ListOwnerBookings returns bookings against the caller's items filtered by state
func ListOwnerBookings(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		state, ok := models.ParseBookingState(c.Query("state"))
		if !ok {
			c.JSON(400, gin.H{"error": "Unknown state: " + c.Query("state")})
			return
		}

		bookings, err := svc.ListForOwner(c.Request.Context(), userID, state)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(200, newBookingResponses(bookings))
	}
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
