package handlers

import (
	"github.com/gin-gonic/gin"

	"sharebox/internal/services"
)

// ListUserItems returns the caller's items with bookings and comments attached
func ListUserItems(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		items, err := svc.ListByOwner(c.Request.Context(), userID)
		if err != nil {
			handleError(c, err)
			return
		}
		responses := make([]itemBookingsResponse, 0, len(items))
		for _, item := range items {
			responses = append(responses, newItemBookingsResponse(item))
		}
		c.JSON(200, responses)
	}
}

// GetItem returns one item with bookings and comments attached
func GetItem(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		itemID, ok := paramID(c, "id")
		if !ok {
			return
		}

		item, err := svc.Get(c.Request.Context(), userID, itemID)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(200, newItemBookingsResponse(*item))
	}
}

// CreateItem adds an item to the caller's catalog
func CreateItem(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		var input struct {
			Name        string `json:"name" binding:"required"`
			Description string `json:"description" binding:"required"`
			Available   *bool  `json:"available" binding:"required"`
			RequestID   *uint  `json:"requestId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		item, err := svc.Create(c.Request.Context(), userID, services.CreateItemInput{
			Name:        input.Name,
			Description: input.Description,
			Available:   *input.Available,
			RequestID:   input.RequestID,
		})
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(201, newItemResponse(*item))
	}
}

// UpdateItem applies an owner-only partial update
func UpdateItem(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		itemID, ok := paramID(c, "id")
		if !ok {
			return
		}
		var input struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			Available   *bool   `json:"available"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		item, err := svc.Update(c.Request.Context(), userID, itemID, services.UpdateItemInput{
			Name:        input.Name,
			Description: input.Description,
			Available:   input.Available,
		})
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(200, newItemResponse(*item))
	}
}

// SearchItems matches available items on name or description
func SearchItems(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.Search(c.Request.Context(), c.Query("text"))
		if err != nil {
			handleError(c, err)
			return
		}
		responses := make([]itemResponse, 0, len(items))
		for _, item := range items {
			responses = append(responses, newItemResponse(item))
		}
		c.JSON(200, responses)
	}
}

// AddComment accepts a comment from a user with a completed rental of the item
func AddComment(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		itemID, ok := paramID(c, "id")
		if !ok {
			return
		}
		var input struct {
			Text string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		comment, err := svc.AddComment(c.Request.Context(), userID, itemID, input.Text)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(201, newCommentResponse(*comment))
	}
}
