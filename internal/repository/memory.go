package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"sharebox/internal/models"
)

// MemoryStore is a mutex-guarded map-backed Store used by tests. It mirrors
// the relational implementation's referential rules, including cascades on
// user deletion.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[uint]models.User
	items    map[uint]models.Item
	bookings map[uint]models.Booking
	comments map[uint]models.Comment
	requests map[uint]models.ItemRequest
	lastID   uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uint]models.User),
		items:    make(map[uint]models.Item),
		bookings: make(map[uint]models.Booking),
		comments: make(map[uint]models.Comment),
		requests: make(map[uint]models.ItemRequest),
	}
}

func (s *MemoryStore) Users() Users       { return &memUsers{s} }
func (s *MemoryStore) Items() Items       { return &memItems{s} }
func (s *MemoryStore) Bookings() Bookings { return &memBookings{s} }
func (s *MemoryStore) Comments() Comments { return &memComments{s} }
func (s *MemoryStore) Requests() Requests { return &memRequests{s} }

// Transaction runs fn directly; the store's per-operation locking is the only
// isolation the in-memory variant provides.
func (s *MemoryStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return fn(s)
}

func (s *MemoryStore) nextID() uint {
	s.lastID++
	return s.lastID
}

// attach fills a booking's associations the way the relational store preloads
// them. Caller must hold at least a read lock.
func (s *MemoryStore) attach(b models.Booking) models.Booking {
	b.User = s.users[b.UserID]
	item := s.items[b.ItemID]
	item.User = s.users[item.UserID]
	b.Item = item
	return b
}

type memUsers struct {
	s *MemoryStore
}

func (r *memUsers) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.nextID()
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUsers) Get(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memUsers) List(ctx context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memUsers) Save(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUsers) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)

	// Cascade: the user's items go away along with bookings and comments on
	// them, then the user's own bookings, comments and requests. Items that
	// answered a deleted request keep existing with the reference cleared.
	ownedItems := make(map[uint]bool)
	for itemID, item := range r.s.items {
		if item.UserID == id {
			ownedItems[itemID] = true
			delete(r.s.items, itemID)
		}
	}
	for bookingID, b := range r.s.bookings {
		if b.UserID == id || ownedItems[b.ItemID] {
			delete(r.s.bookings, bookingID)
		}
	}
	for commentID, c := range r.s.comments {
		if c.UserID == id || ownedItems[c.ItemID] {
			delete(r.s.comments, commentID)
		}
	}
	for requestID, req := range r.s.requests {
		if req.UserID != id {
			continue
		}
		delete(r.s.requests, requestID)
		for itemID, item := range r.s.items {
			if item.RequestID != nil && *item.RequestID == requestID {
				item.RequestID = nil
				r.s.items[itemID] = item
			}
		}
	}
	return nil
}

func (r *memUsers) Exists(ctx context.Context, id uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.users[id]
	return ok, nil
}

func (r *memUsers) EmailTaken(ctx context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memItems struct {
	s *MemoryStore
}

func (r *memItems) Create(ctx context.Context, item *models.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.nextID()
	r.s.items[item.ID] = *item
	return nil
}

func (r *memItems) Get(ctx context.Context, id uint) (*models.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *memItems) Save(ctx context.Context, item *models.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = *item
	return nil
}

func (r *memItems) ListByOwner(ctx context.Context, ownerID uint) ([]models.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var items []models.Item
	for _, item := range r.s.items {
		if item.UserID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *memItems) Search(ctx context.Context, text string) ([]models.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	needle := strings.ToLower(text)
	var items []models.Item
	for _, item := range r.s.items {
		if !item.Available {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *memItems) ListByRequest(ctx context.Context, requestID uint) ([]models.Item, error) {
	return r.ListByRequests(ctx, []uint{requestID})
}

func (r *memItems) ListByRequests(ctx context.Context, requestIDs []uint) ([]models.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	wanted := make(map[uint]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	var items []models.Item
	for _, item := range r.s.items {
		if item.RequestID != nil && wanted[*item.RequestID] {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

type memBookings struct {
	s *MemoryStore
}

func (r *memBookings) Create(ctx context.Context, booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking.ID = r.s.nextID()
	stored := *booking
	stored.User = models.User{}
	stored.Item = models.Item{}
	r.s.bookings[booking.ID] = stored
	return nil
}

func (r *memBookings) Get(ctx context.Context, id uint) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	booking = r.s.attach(booking)
	return &booking, nil
}

func (r *memBookings) Save(ctx context.Context, booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *booking
	stored.User = models.User{}
	stored.Item = models.Item{}
	r.s.bookings[booking.ID] = stored
	return nil
}

func (r *memBookings) ListByBooker(ctx context.Context, userID uint) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var bookings []models.Booking
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, r.s.attach(b))
		}
	}
	sortByStartDesc(bookings)
	return bookings, nil
}

func (r *memBookings) ListByOwner(ctx context.Context, ownerID uint) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var bookings []models.Booking
	for _, b := range r.s.bookings {
		if item, ok := r.s.items[b.ItemID]; ok && item.UserID == ownerID {
			bookings = append(bookings, r.s.attach(b))
		}
	}
	sortByStartDesc(bookings)
	return bookings, nil
}

func (r *memBookings) ListByItem(ctx context.Context, itemID uint) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var bookings []models.Booking
	for _, b := range r.s.bookings {
		if b.ItemID == itemID {
			bookings = append(bookings, b)
		}
	}
	sortByStartDesc(bookings)
	return bookings, nil
}

func (r *memBookings) HasFinishedBooking(ctx context.Context, userID, itemID uint, before time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.bookings {
		if b.UserID == userID && b.ItemID == itemID &&
			b.Status == models.BookingStatusApproved && b.End.Before(before) {
			return true, nil
		}
	}
	return false, nil
}

func sortByStartDesc(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Start.Equal(bookings[j].Start) {
			return bookings[i].ID > bookings[j].ID
		}
		return bookings[i].Start.After(bookings[j].Start)
	})
}

type memComments struct {
	s *MemoryStore
}

func (r *memComments) Create(ctx context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	comment.ID = r.s.nextID()
	stored := *comment
	stored.User = models.User{}
	stored.Item = models.Item{}
	r.s.comments[comment.ID] = stored
	return nil
}

func (r *memComments) ListByItem(ctx context.Context, itemID uint) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var comments []models.Comment
	for _, c := range r.s.comments {
		if c.ItemID == itemID {
			c.User = r.s.users[c.UserID]
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (r *memComments) ListByOwner(ctx context.Context, ownerID uint) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var comments []models.Comment
	for _, c := range r.s.comments {
		if item, ok := r.s.items[c.ItemID]; ok && item.UserID == ownerID {
			c.User = r.s.users[c.UserID]
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

type memRequests struct {
	s *MemoryStore
}

func (r *memRequests) Create(ctx context.Context, request *models.ItemRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	request.ID = r.s.nextID()
	stored := *request
	stored.User = models.User{}
	r.s.requests[request.ID] = stored
	return nil
}

func (r *memRequests) Get(ctx context.Context, id uint) (*models.ItemRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	request, ok := r.s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &request, nil
}

func (r *memRequests) ListByRequester(ctx context.Context, userID uint) ([]models.ItemRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var requests []models.ItemRequest
	for _, req := range r.s.requests {
		if req.UserID == userID {
			requests = append(requests, req)
		}
	}
	sortByCreatedDesc(requests)
	return requests, nil
}

func (r *memRequests) ListAll(ctx context.Context) ([]models.ItemRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	requests := make([]models.ItemRequest, 0, len(r.s.requests))
	for _, req := range r.s.requests {
		requests = append(requests, req)
	}
	sortByCreatedDesc(requests)
	return requests, nil
}

func sortByCreatedDesc(requests []models.ItemRequest) {
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].Created.Equal(requests[j].Created) {
			return requests[i].ID > requests[j].ID
		}
		return requests[i].Created.After(requests[j].Created)
	})
}
