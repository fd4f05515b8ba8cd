package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"sharebox/internal/apperr"
	"sharebox/internal/models"
	"sharebox/internal/repository"
)

// ItemBookings is an item together with its comments and the derived
// last/next booking timestamps relative to now.
type ItemBookings struct {
	Item        models.Item
	Comments    []models.Comment
	LastBooking *time.Time
	NextBooking *time.Time
}

type CreateItemInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *uint
}

type UpdateItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

type ItemService struct {
	store repository.Store
	// approvedOnly narrows the last/next aggregation to approved bookings.
	// The legacy policy considers every booking regardless of status.
	approvedOnly bool
}

func NewItemService(store repository.Store, approvedOnly bool) *ItemService {
	return &ItemService{store: store, approvedOnly: approvedOnly}
}

// Create adds an item to the owner's catalog, optionally answering an open
// item request.
func (s *ItemService) Create(ctx context.Context, userID uint, in CreateItemInput) (*models.Item, error) {
	item := &models.Item{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		RequestID:   in.RequestID,
	}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if in.RequestID != nil {
			if _, err := tx.Requests().Get(ctx, *in.RequestID); errors.Is(err, repository.ErrNotFound) {
				return apperr.NotFound("no request with id = %d", *in.RequestID)
			} else if err != nil {
				return err
			}
		}
		return tx.Items().Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies an owner-only partial update. A blank name is ignored rather
// than rejected.
func (s *ItemService) Update(ctx context.Context, userID, itemID uint, in UpdateItemInput) (*models.Item, error) {
	var item *models.Item
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		var err error
		item, err = tx.Items().Get(ctx, itemID)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("no item with id = %d", itemID)
		}
		if err != nil {
			return err
		}
		if item.UserID != userID {
			return apperr.Validation("only the owner can update the item")
		}
		if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
			item.Name = *in.Name
		}
		if in.Description != nil {
			item.Description = *in.Description
		}
		if in.Available != nil {
			item.Available = *in.Available
		}
		return tx.Items().Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Uint("itemId", item.ID).Msg("item updated")
	return item, nil
}

// Get returns an item with its comments and last/next booking timestamps.
func (s *ItemService) Get(ctx context.Context, userID, itemID uint) (*ItemBookings, error) {
	if err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	item, err := s.store.Items().Get(ctx, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("no item with id = %d", itemID)
	}
	if err != nil {
		return nil, err
	}
	comments, err := s.store.Comments().ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.store.Bookings().ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	last, next := classifyBookings(s.filterPolicy(bookings), time.Now())
	return &ItemBookings{Item: *item, Comments: comments, LastBooking: last, NextBooking: next}, nil
}

// ListByOwner returns every item of the owner with comments and last/next
// booking timestamps, derived in one pass over the owner's bookings.
func (s *ItemService) ListByOwner(ctx context.Context, userID uint) ([]ItemBookings, error) {
	if err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	items, err := s.store.Items().ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.store.Bookings().ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.Comments().ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lastByItem := make(map[uint]*time.Time)
	nextByItem := make(map[uint]*time.Time)
	for _, b := range s.filterPolicy(bookings) {
		applyBooking(b, now, lastByItem, nextByItem)
	}
	commentsByItem := make(map[uint][]models.Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	result := make([]ItemBookings, 0, len(items))
	for _, item := range items {
		result = append(result, ItemBookings{
			Item:        item,
			Comments:    commentsByItem[item.ID],
			LastBooking: lastByItem[item.ID],
			NextBooking: nextByItem[item.ID],
		})
	}
	return result, nil
}

// Search matches available items on name or description. A blank query
// returns an empty list without touching the store.
func (s *ItemService) Search(ctx context.Context, text string) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	return s.store.Items().Search(ctx, text)
}

// AddComment accepts a comment only from a user whose approved booking on the
// item has already ended.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID uint, text string) (*models.Comment, error) {
	comment := &models.Comment{
		UserID: userID,
		ItemID: itemID,
		Text:   text,
	}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().Get(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("no user with id = %d", userID)
		}
		if err != nil {
			return err
		}
		if _, err := tx.Items().Get(ctx, itemID); errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("no item with id = %d", itemID)
		} else if err != nil {
			return err
		}
		finished, err := tx.Bookings().HasFinishedBooking(ctx, userID, itemID, time.Now())
		if err != nil {
			return err
		}
		if !finished {
			return apperr.Validation("no completed bookings for this item")
		}
		comment.Created = time.Now()
		comment.User = *user
		return tx.Comments().Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ItemService) filterPolicy(bookings []models.Booking) []models.Booking {
	if !s.approvedOnly {
		return bookings
	}
	filtered := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == models.BookingStatusApproved {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// classifyBookings derives a single item's temporal neighbours of now:
// lastBooking is the start of the currently-active booking that started most
// recently (start < now < end), nextBooking the start of the soonest
// strictly-future one.
func classifyBookings(bookings []models.Booking, now time.Time) (last, next *time.Time) {
	for _, b := range bookings {
		if b.Start.Before(now) && b.End.After(now) &&
			(last == nil || last.Before(b.Start)) {
			start := b.Start
			last = &start
		} else if b.Start.After(now) &&
			(next == nil || next.After(b.Start)) {
			start := b.Start
			next = &start
		}
	}
	return last, next
}

// applyBooking folds one booking into the per-item last/next maps. Among
// current bookings the later start wins, among future ones the earlier start
// wins.
func applyBooking(b models.Booking, now time.Time, lastByItem, nextByItem map[uint]*time.Time) {
	last := lastByItem[b.ItemID]
	next := nextByItem[b.ItemID]

	if b.Start.Before(now) && b.End.After(now) &&
		(last == nil || last.Before(b.Start)) {
		start := b.Start
		lastByItem[b.ItemID] = &start
	} else if b.Start.After(now) &&
		(next == nil || next.After(b.Start)) {
		start := b.Start
		nextByItem[b.ItemID] = &start
	}
}
