// Package repository abstracts persistence behind a Store capability with one
// production (relational) and one in-memory implementation.
package repository

import (
	"context"
	"errors"
	"time"

	"sharebox/internal/models"
)

// ErrNotFound is returned by Get operations when no record matches.
var ErrNotFound = errors.New("record not found")

type Store interface {
	Users() Users
	Items() Items
	Bookings() Bookings
	Comments() Comments
	Requests() Requests

	// Transaction runs fn atomically against the store.
	Transaction(ctx context.Context, fn func(Store) error) error
}

type Users interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

type Items interface {
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, id uint) (*models.Item, error)
	Save(ctx context.Context, item *models.Item) error
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Item, error)
	// Search matches available items on name or description,
	// case-insensitively.
	Search(ctx context.Context, text string) ([]models.Item, error)
	ListByRequest(ctx context.Context, requestID uint) ([]models.Item, error)
	ListByRequests(ctx context.Context, requestIDs []uint) ([]models.Item, error)
}

type Bookings interface {
	Create(ctx context.Context, booking *models.Booking) error
	// Get returns the booking with its booker and item (including the item
	// owner) attached.
	Get(ctx context.Context, id uint) (*models.Booking, error)
	Save(ctx context.Context, booking *models.Booking) error
	// ListByBooker returns bookings made by the user, ordered by start
	// descending.
	ListByBooker(ctx context.Context, userID uint) ([]models.Booking, error)
	// ListByOwner returns bookings against items owned by the user, ordered
	// by start descending.
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Booking, error)
	ListByItem(ctx context.Context, itemID uint) ([]models.Booking, error)
	// HasFinishedBooking reports whether the user has an approved booking on
	// the item that ended strictly before the given instant.
	HasFinishedBooking(ctx context.Context, userID, itemID uint, before time.Time) (bool, error)
}

type Comments interface {
	Create(ctx context.Context, comment *models.Comment) error
	// ListByItem returns comments with their authors attached.
	ListByItem(ctx context.Context, itemID uint) ([]models.Comment, error)
	// ListByOwner returns comments on every item owned by the user.
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Comment, error)
}

type Requests interface {
	Create(ctx context.Context, request *models.ItemRequest) error
	Get(ctx context.Context, id uint) (*models.ItemRequest, error)
	// ListByRequester returns the user's requests, newest first.
	ListByRequester(ctx context.Context, userID uint) ([]models.ItemRequest, error)
	// ListAll returns every request, newest first.
	ListAll(ctx context.Context) ([]models.ItemRequest, error)
}
