package handlers

import (
	"github.com/gin-gonic/gin"

	"sharebox/internal/services"
)

// ListUserRequests returns the caller's item requests with fulfilling items
func ListUserRequests(svc *services.RequestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		requests, err := svc.ListOwn(c.Request.Context(), userID)
		if err != nil {
			handleError(c, err)
			return
		}
		responses := make([]requestResponse, 0, len(requests))
		for _, req := range requests {
			responses = append(responses, newRequestResponse(req.Request, req.Items))
		}
		c.JSON(200, responses)
	}
}

// ListAllRequests returns every request regardless of author
func ListAllRequests(svc *services.RequestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requests, err := svc.ListAll(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		responses := make([]requestResponse, 0, len(requests))
		for _, req := range requests {
			responses = append(responses, newRequestResponse(req, nil))
		}
		c.JSON(200, responses)
	}
}

// GetRequest returns one request with the items answering it
func GetRequest(svc *services.RequestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, ok := paramID(c, "id")
		if !ok {
			return
		}

		request, err := svc.Get(c.Request.Context(), requestID)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(200, newRequestResponse(request.Request, request.Items))
	}
}

// CreateRequest posts the caller's wish for an item that does not exist yet
func CreateRequest(svc *services.RequestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		var input struct {
			Description string `json:"description" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		request, err := svc.Create(c.Request.Context(), userID, input.Description)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(201, newRequestResponse(*request, nil))
	}
}
