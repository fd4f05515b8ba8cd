package gateway

import (
	"time"

	"sharebox/internal/models"
)

// The gateway owns the strict shape of every write body. Field tags mirror
// what the persistence tier accepts so a validated body forwards unchanged.

type createUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type updateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

type createItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *uint  `json:"requestId,omitempty"`
}

type updateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type createBookingRequest struct {
	ItemID uint             `json:"itemId" binding:"required"`
	Start  *models.DateTime `json:"start" binding:"required"`
	End    *models.DateTime `json:"end" binding:"required"`
}

// validateTimeframe rejects windows the persistence tier should never see:
// an end in the past and, depending on policy, a start in the past or a
// start that is not strictly future.
func (r createBookingRequest) validateTimeframe(now time.Time, strictFutureStart bool) string {
	if strictFutureStart {
		if !r.Start.Time.After(now) {
			return "booking start must be in the future"
		}
	} else if r.Start.Time.Before(now) {
		return "booking start must not be in the past"
	}
	if !r.End.Time.After(now) {
		return "booking end must be in the future"
	}
	return ""
}

type createCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type createRequestRequest struct {
	Description string `json:"description" binding:"required"`
}
