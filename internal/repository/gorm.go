package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sharebox/internal/models"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection in the Store interface.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() Users       { return &gormUsers{db: s.db} }
func (s *gormStore) Items() Items       { return &gormItems{db: s.db} }
func (s *gormStore) Bookings() Bookings { return &gormBookings{db: s.db} }
func (s *gormStore) Comments() Comments { return &gormComments{db: s.db} }
func (s *gormStore) Requests() Requests { return &gormRequests{db: s.db} }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type gormUsers struct {
	db *gorm.DB
}

func (r *gormUsers) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *gormUsers) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUsers) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUsers) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *gormUsers) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (r *gormUsers) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *gormUsers) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

type gormItems struct {
	db *gorm.DB
}

func (r *gormItems) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *gormItems) Get(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *gormItems) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *gormItems) ListByOwner(ctx context.Context, ownerID uint) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormItems) Search(ctx context.Context, text string) ([]models.Item, error) {
	var items []models.Item
	pattern := "%" + strings.ToLower(text) + "%"
	if err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormItems) ListByRequest(ctx context.Context, requestID uint) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormItems) ListByRequests(ctx context.Context, requestIDs []uint) ([]models.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Where("request_id IN ?", requestIDs).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

type gormBookings struct {
	db *gorm.DB
}

func (r *gormBookings) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
}

func (r *gormBookings) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Item").
		Preload("Item.User").
		First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (r *gormBookings) Save(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(booking).Error
}

func (r *gormBookings) ListByBooker(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Item").
		Order("start_date DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *gormBookings) ListByOwner(ctx context.Context, ownerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.user_id = ?", ownerID).
		Preload("User").
		Preload("Item").
		Order("start_date DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *gormBookings) ListByItem(ctx context.Context, itemID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("start_date DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *gormBookings) HasFinishedBooking(ctx context.Context, userID, itemID uint, before time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ? AND item_id = ? AND status = ? AND end_date < ?",
			userID, itemID, models.BookingStatusApproved, before).
		Count(&count).Error
	return count > 0, err
}

type gormComments struct {
	db *gorm.DB
}

func (r *gormComments) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *gormComments) ListByItem(ctx context.Context, itemID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Preload("User").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *gormComments) ListByOwner(ctx context.Context, ownerID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Joins("JOIN items ON items.id = comments.item_id").
		Where("items.user_id = ?", ownerID).
		Preload("User").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

type gormRequests struct {
	db *gorm.DB
}

func (r *gormRequests) Create(ctx context.Context, request *models.ItemRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(request).Error
}

func (r *gormRequests) Get(ctx context.Context, id uint) (*models.ItemRequest, error) {
	var request models.ItemRequest
	if err := r.db.WithContext(ctx).First(&request, id).Error; err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

func (r *gormRequests) ListByRequester(ctx context.Context, userID uint) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *gormRequests) ListAll(ctx context.Context) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	if err := r.db.WithContext(ctx).
		Order("created DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
