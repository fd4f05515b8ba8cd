package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"sharebox/internal/apperr"
)

// handleError maps the three error kinds onto their status codes; anything
// else is a storage failure surfaced as 500.
func handleError(c *gin.Context, err error) {
	switch {
	case apperr.IsNotFound(err):
		c.JSON(404, gin.H{"error": err.Error()})
	case apperr.IsValidation(err):
		c.JSON(400, gin.H{"error": err.Error()})
	case apperr.IsConflict(err):
		c.JSON(409, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(500, gin.H{"error": "internal server error"})
	}
}
