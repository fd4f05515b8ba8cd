package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

type Booking struct {
	ID     uint          `json:"id" gorm:"primaryKey"`
	UserID uint          `json:"bookerId" gorm:"column:user_id;not null;index"`
	User   User          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ItemID uint          `json:"itemId" gorm:"column:item_id;not null;index"`
	Item   Item          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Start  time.Time     `json:"start" gorm:"column:start_date;not null"`
	End    time.Time     `json:"end" gorm:"column:end_date;not null"`
	Status BookingStatus `json:"status" gorm:"column:status;not null;default:'WAITING'"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// BookingState is the query-side classification of bookings relative to "now".
// CURRENT, PAST and FUTURE partition by the booking interval; WAITING and
// REJECTED filter by status regardless of time.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState resolves a query parameter to a state, case-insensitively.
// An empty value defaults to ALL.
func ParseBookingState(s string) (BookingState, bool) {
	if s == "" {
		return StateAll, true
	}
	switch BookingState(strings.ToUpper(s)) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return BookingState(strings.ToUpper(s)), true
	}
	return "", false
}
