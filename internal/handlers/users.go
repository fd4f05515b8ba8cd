package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"sharebox/internal/services"
)

// ListUsers returns every registered user
func ListUsers(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.List(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(200, users)
	}
}

// GetUser returns a single user by id
func GetUser(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		user, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(200, user)
	}
}

// CreateUser registers a new user with a unique email
func CreateUser(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name  string `json:"name" binding:"required"`
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := svc.Create(c.Request.Context(), input.Name, input.Email)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(201, user)
	}
}

// UpdateUser applies a partial update of name and/or email
func UpdateUser(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var input struct {
			Name  *string `json:"name"`
			Email *string `json:"email" binding:"omitempty,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := svc.Update(c.Request.Context(), id, input.Name, input.Email)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(200, user)
	}
}

// DeleteUser removes a user along with their items and requests
func DeleteUser(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			handleError(c, err)
			return
		}
		c.Status(204)
	}
}

// paramID parses a positive integer path parameter, answering 400 itself on
// bad input.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(400, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}
