package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharebox/internal/middleware"
	"sharebox/internal/models"
	"sharebox/internal/repository"
	"sharebox/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	store := repository.NewMemoryStore()
	return NewRouter(Services{
		Users:    services.NewUserService(store),
		Items:    services.NewItemService(store, false),
		Bookings: services.NewBookingService(store),
		Requests: services.NewRequestService(store),
	})
}

func perform(router *gin.Engine, method, path string, userID uint, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(middleware.UserHeader, fmt.Sprint(userID))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestUserLifecycle(t *testing.T) {
	router := newTestRouter()

	w := perform(router, "POST", "/users", 0, gin.H{"name": "Alice", "email": "alice@example.com"})
	require.Equal(t, 201, w.Code)
	var created models.User
	decode(t, w, &created)
	assert.NotZero(t, created.ID)

	w = perform(router, "GET", fmt.Sprintf("/users/%d", created.ID), 0, nil)
	require.Equal(t, 200, w.Code)

	w = perform(router, "PATCH", fmt.Sprintf("/users/%d", created.ID), 0, gin.H{"name": "Alicia"})
	require.Equal(t, 200, w.Code)
	var updated models.User
	decode(t, w, &updated)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	w = perform(router, "POST", "/users", 0, gin.H{"name": "Clone", "email": "alice@example.com"})
	assert.Equal(t, 409, w.Code)

	w = perform(router, "DELETE", fmt.Sprintf("/users/%d", created.ID), 0, nil)
	require.Equal(t, 204, w.Code)

	w = perform(router, "GET", fmt.Sprintf("/users/%d", created.ID), 0, nil)
	assert.Equal(t, 404, w.Code)
}

func TestUserValidation(t *testing.T) {
	router := newTestRouter()

	w := perform(router, "POST", "/users", 0, gin.H{"name": "Alice", "email": "not-an-email"})
	assert.Equal(t, 400, w.Code)

	w = perform(router, "POST", "/users", 0, gin.H{"email": "alice@example.com"})
	assert.Equal(t, 400, w.Code)

	w = perform(router, "GET", "/users/abc", 0, nil)
	assert.Equal(t, 400, w.Code)
}

func TestIdentityHeaderRequired(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/items", "/bookings", "/requests"} {
		w := perform(router, "GET", path, 0, nil)
		assert.Equal(t, 400, w.Code, path)
	}

	// request browsing is open
	w := perform(router, "GET", "/requests/all", 0, nil)
	assert.Equal(t, 200, w.Code)
}

func TestBookingFlow(t *testing.T) {
	router := newTestRouter()

	w := perform(router, "POST", "/users", 0, gin.H{"name": "Alice", "email": "alice@example.com"})
	require.Equal(t, 201, w.Code)
	var owner models.User
	decode(t, w, &owner)

	w = perform(router, "POST", "/users", 0, gin.H{"name": "Bob", "email": "bob@example.com"})
	require.Equal(t, 201, w.Code)
	var booker models.User
	decode(t, w, &booker)

	w = perform(router, "POST", "/items", owner.ID, gin.H{
		"name": "drill", "description": "cordless drill", "available": true,
	})
	require.Equal(t, 201, w.Code)
	var item struct {
		ID uint `json:"id"`
	}
	decode(t, w, &item)

	start := time.Now().Add(time.Hour)
	end := start.Add(24 * time.Hour)
	w = perform(router, "POST", "/bookings", booker.ID, gin.H{
		"itemId": item.ID,
		"start":  start.Format(models.DateTimeLayout),
		"end":    end.Format(models.DateTimeLayout),
	})
	require.Equal(t, 201, w.Code)
	var booking struct {
		ID     uint        `json:"id"`
		Status string      `json:"status"`
		Booker models.User `json:"booker"`
	}
	decode(t, w, &booking)
	assert.Equal(t, "WAITING", booking.Status)
	assert.Equal(t, booker.ID, booking.Booker.ID)

	// only the owner decides
	w = perform(router, "PATCH", fmt.Sprintf("/bookings/%d?approved=true", booking.ID), booker.ID, nil)
	assert.Equal(t, 400, w.Code)

	w = perform(router, "PATCH", fmt.Sprintf("/bookings/%d?approved=true", booking.ID), owner.ID, nil)
	require.Equal(t, 200, w.Code)
	decode(t, w, &booking)
	assert.Equal(t, "APPROVED", booking.Status)

	w = perform(router, "GET", fmt.Sprintf("/bookings/%d", booking.ID), owner.ID, nil)
	assert.Equal(t, 200, w.Code)

	w = perform(router, "GET", "/bookings?state=ALL", booker.ID, nil)
	require.Equal(t, 200, w.Code)
	var list []json.RawMessage
	decode(t, w, &list)
	assert.Len(t, list, 1)

	w = perform(router, "GET", "/bookings?state=SOMEDAY", booker.ID, nil)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown state: SOMEDAY")

	w = perform(router, "GET", "/bookings/owner?state=FUTURE", owner.ID, nil)
	require.Equal(t, 200, w.Code)
	decode(t, w, &list)
	assert.Len(t, list, 1)
}

func TestItemSearchRoute(t *testing.T) {
	router := newTestRouter()

	w := perform(router, "POST", "/users", 0, gin.H{"name": "Alice", "email": "alice@example.com"})
	require.Equal(t, 201, w.Code)
	var owner models.User
	decode(t, w, &owner)

	w = perform(router, "POST", "/items", owner.ID, gin.H{
		"name": "drill", "description": "cordless drill", "available": true,
	})
	require.Equal(t, 201, w.Code)

	w = perform(router, "GET", "/items/search?text=drill", owner.ID, nil)
	require.Equal(t, 200, w.Code)
	var found []json.RawMessage
	decode(t, w, &found)
	assert.Len(t, found, 1)

	w = perform(router, "GET", "/items/search?text=", owner.ID, nil)
	require.Equal(t, 200, w.Code)
	decode(t, w, &found)
	assert.Empty(t, found)
}

func TestRequestRoutes(t *testing.T) {
	router := newTestRouter()

	w := perform(router, "POST", "/users", 0, gin.H{"name": "Alice", "email": "alice@example.com"})
	require.Equal(t, 201, w.Code)
	var user models.User
	decode(t, w, &user)

	w = perform(router, "POST", "/requests", user.ID, gin.H{"description": "need a ladder"})
	require.Equal(t, 201, w.Code)
	var request struct {
		ID uint `json:"id"`
	}
	decode(t, w, &request)

	w = perform(router, "GET", "/requests", user.ID, nil)
	require.Equal(t, 200, w.Code)

	w = perform(router, "GET", fmt.Sprintf("/requests/%d", request.ID), 0, nil)
	require.Equal(t, 200, w.Code)

	w = perform(router, "POST", "/requests", user.ID, gin.H{"description": "   "})
	assert.Equal(t, 400, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter()

	w := perform(router, "GET", "/metrics", 0, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
