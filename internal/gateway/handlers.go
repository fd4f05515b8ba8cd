package gateway

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"sharebox/internal/config"
	"sharebox/internal/middleware"
	"sharebox/internal/models"
)

// Gateway validates incoming requests and proxies the valid ones to the
// persistence tier.
type Gateway struct {
	client            *Client
	strictFutureStart bool
}

func New(client *Client, cfg config.Config) *Gateway {
	return &Gateway{
		client:            client,
		strictFutureStart: cfg.BookingStartPolicy == config.StartFuture,
	}
}

// proxy relays the current request to the persistence tier, substituting the
// given body when the handler re-marshalled a validated DTO.
func (g *Gateway) proxy(c *gin.Context, body []byte) {
	status, resp, err := g.client.Forward(
		c.Request.Context(),
		c.Request.Method,
		c.Request.URL.RequestURI(),
		c.GetHeader(middleware.UserHeader),
		body,
	)
	if err != nil {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("proxy failed")
		c.JSON(502, gin.H{"error": "service unavailable"})
		return
	}
	c.Data(status, "application/json", resp)
}

func (g *Gateway) forward(c *gin.Context) {
	g.proxy(c, nil)
}

func (g *Gateway) forwardID(c *gin.Context) {
	if _, ok := paramID(c, "id"); !ok {
		return
	}
	g.proxy(c, nil)
}

func (g *Gateway) createUser(c *gin.Context) {
	var input createUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	g.proxyJSON(c, input)
}

func (g *Gateway) updateUser(c *gin.Context) {
	if _, ok := paramID(c, "id"); !ok {
		return
	}
	var input updateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	g.proxyJSON(c, input)
}

func (g *Gateway) createItem(c *gin.Context) {
	var input createItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	g.proxyJSON(c, input)
}

func (g *Gateway) updateItem(c *gin.Context) {
	if _, ok := paramID(c, "id"); !ok {
		return
	}
	var input updateItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	g.proxyJSON(c, input)
}

func (g *Gateway) addComment(c *gin.Context) {
	if _, ok := paramID(c, "id"); !ok {
		return
	}
	var input createCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	g.proxyJSON(c, input)
}

func (g *Gateway) createBooking(c *gin.Context) {
	var input createBookingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validateTimeframe(time.Now(), g.strictFutureStart); msg != "" {
		c.JSON(400, gin.H{"error": msg})
		return
	}
	g.proxyJSON(c, input)
}

func (g *Gateway) decideBooking(c *gin.Context) {
	if _, ok := paramID(c, "id"); !ok {
		return
	}
	if _, err := strconv.ParseBool(c.Query("approved")); err != nil {
		c.JSON(400, gin.H{"error": "approved query parameter required"})
		return
	}
	g.proxy(c, nil)
}

func (g *Gateway) listUserBookings(c *gin.Context) {
	if !g.checkState(c) {
		return
	}
	if from, ok := queryInt(c, "from", 0); !ok || from < 0 {
		c.JSON(400, gin.H{"error": "from must not be negative"})
		return
	}
	if size, ok := queryInt(c, "size", 10); !ok || size <= 0 {
		c.JSON(400, gin.H{"error": "size must be positive"})
		return
	}
	g.proxy(c, nil)
}

func (g *Gateway) listOwnerBookings(c *gin.Context) {
	if !g.checkState(c) {
		return
	}
	g.proxy(c, nil)
}

func (g *Gateway) createRequest(c *gin.Context) {
	var input createRequestRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	g.proxyJSON(c, input)
}

func (g *Gateway) checkState(c *gin.Context) bool {
	if _, ok := models.ParseBookingState(c.Query("state")); !ok {
		c.JSON(400, gin.H{"error": "Unknown state: " + c.Query("state")})
		return false
	}
	return true
}

func (g *Gateway) proxyJSON(c *gin.Context, dto any) {
	body, err := json.Marshal(dto)
	if err != nil {
		c.JSON(500, gin.H{"error": "internal server error"})
		return
	}
	g.proxy(c, body)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(400, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
