package services

import (
	"context"
	"errors"
	"time"

	"sharebox/internal/apperr"
	"sharebox/internal/models"
	"sharebox/internal/repository"
)

type BookingService struct {
	store repository.Store
}

func NewBookingService(store repository.Store) *BookingService {
	return &BookingService{store: store}
}

// Create books a time window on an item. The item's availability flag is a
// gate for new bookings but is never flipped by the booking flow itself, so
// overlapping bookings on the same item are possible.
func (s *BookingService) Create(ctx context.Context, userID, itemID uint, start, end time.Time) (*models.Booking, error) {
	if !start.Before(end) {
		return nil, apperr.Validation("invalid booking timeframe")
	}
	booking := &models.Booking{
		UserID: userID,
		ItemID: itemID,
		Start:  start,
		End:    end,
		Status: models.BookingStatusWaiting,
	}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		item, err := tx.Items().Get(ctx, itemID)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("no item with id = %d", itemID)
		}
		if err != nil {
			return err
		}
		if !item.Available {
			return apperr.Validation("item with id = %d is not available", itemID)
		}
		return tx.Bookings().Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Bookings().Get(ctx, booking.ID)
}

// Decide approves or rejects a waiting booking. Only the item owner may
// decide, and only once: WAITING is the sole source state.
func (s *BookingService) Decide(ctx context.Context, userID, bookingID uint, approved bool) (*models.Booking, error) {
	var booking *models.Booking
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		booking, err = tx.Bookings().Get(ctx, bookingID)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("no booking with id = %d", bookingID)
		}
		if err != nil {
			return err
		}
		if booking.Item.UserID != userID {
			return apperr.Validation("only the item owner can change the booking status")
		}
		if booking.Status != models.BookingStatusWaiting {
			return apperr.Validation("the booking has already been decided")
		}
		if approved {
			booking.Status = models.BookingStatusApproved
		} else {
			booking.Status = models.BookingStatusRejected
		}
		return tx.Bookings().Save(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Get returns a booking to its booker or the item owner only.
func (s *BookingService) Get(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.store.Bookings().Get(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("no booking with id = %d", bookingID)
	}
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID && booking.Item.UserID != userID {
		return nil, apperr.Validation("booking is only visible to the booker or the item owner")
	}
	return booking, nil
}

// ListForUser returns the user's own bookings filtered by state, newest start
// first, sliced by from/size (size <= 0 means no limit).
func (s *BookingService) ListForUser(ctx context.Context, userID uint, state models.BookingState, from, size int) ([]models.Booking, error) {
	if err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	bookings, err := s.store.Bookings().ListByBooker(ctx, userID)
	if err != nil {
		return nil, err
	}
	return paginate(filterByState(bookings, state, time.Now()), from, size), nil
}

// ListForOwner returns bookings against the user's items filtered by state,
// newest start first.
func (s *BookingService) ListForOwner(ctx context.Context, userID uint, state models.BookingState) ([]models.Booking, error) {
	if err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	bookings, err := s.store.Bookings().ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return filterByState(bookings, state, time.Now()), nil
}

// filterByState keeps bookings matching the temporal or status classification.
// CURRENT means the interval contains now (inclusive on both ends), PAST ended
// before now, FUTURE starts after now. Input order is preserved.
func filterByState(bookings []models.Booking, state models.BookingState, now time.Time) []models.Booking {
	if state == models.StateAll {
		return bookings
	}
	filtered := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		keep := false
		switch state {
		case models.StateCurrent:
			keep = !b.Start.After(now) && !b.End.Before(now)
		case models.StatePast:
			keep = b.End.Before(now)
		case models.StateFuture:
			keep = b.Start.After(now)
		case models.StateWaiting:
			keep = b.Status == models.BookingStatusWaiting
		case models.StateRejected:
			keep = b.Status == models.BookingStatusRejected
		}
		if keep {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func paginate(bookings []models.Booking, from, size int) []models.Booking {
	if from < 0 {
		from = 0
	}
	if from >= len(bookings) {
		return []models.Booking{}
	}
	end := len(bookings)
	if size > 0 && from+size < end {
		end = from + size
	}
	return bookings[from:end]
}
