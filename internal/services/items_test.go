package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharebox/internal/apperr"
	"sharebox/internal/models"
	"sharebox/internal/repository"
)

type itemFixture struct {
	store    *repository.MemoryStore
	items    *ItemService
	bookings *BookingService
	owner    *models.User
	booker   *models.User
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()
	users := NewUserService(store)

	owner, err := users.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	booker, err := users.Create(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)

	return &itemFixture{
		store:    store,
		items:    NewItemService(store, false),
		bookings: NewBookingService(store),
		owner:    owner,
		booker:   booker,
	}
}

func (f *itemFixture) addItem(t *testing.T, name, description string) *models.Item {
	t.Helper()
	item, err := f.items.Create(context.Background(), f.owner.ID, CreateItemInput{
		Name: name, Description: description, Available: true,
	})
	require.NoError(t, err)
	return item
}

func (f *itemFixture) addBooking(t *testing.T, itemID uint, start, end time.Time, status models.BookingStatus) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		UserID: f.booker.ID,
		ItemID: itemID,
		Start:  start,
		End:    end,
		Status: status,
	}
	require.NoError(t, f.store.Bookings().Create(context.Background(), booking))
	return booking
}

func TestItemCreate(t *testing.T) {
	f := newItemFixture(t)

	item := f.addItem(t, "drill", "cordless drill")
	assert.NotZero(t, item.ID)
	assert.Equal(t, f.owner.ID, item.UserID)
	assert.Nil(t, item.RequestID)
}

func TestItemCreateUnknownOwner(t *testing.T) {
	f := newItemFixture(t)

	_, err := f.items.Create(context.Background(), 42, CreateItemInput{
		Name: "drill", Description: "cordless drill", Available: true,
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestItemCreateForRequest(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()

	request, err := NewRequestService(f.store).Create(ctx, f.booker.ID, "need a drill")
	require.NoError(t, err)

	item, err := f.items.Create(ctx, f.owner.ID, CreateItemInput{
		Name: "drill", Description: "cordless drill", Available: true, RequestID: &request.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, item.RequestID)
	assert.Equal(t, request.ID, *item.RequestID)

	unknown := uint(42)
	_, err = f.items.Create(ctx, f.owner.ID, CreateItemInput{
		Name: "saw", Description: "hand saw", Available: true, RequestID: &unknown,
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestItemUpdate(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	item := f.addItem(t, "drill", "cordless drill")

	description := "hammer drill"
	available := false
	updated, err := f.items.Update(ctx, f.owner.ID, item.ID, UpdateItemInput{
		Description: &description, Available: &available,
	})
	require.NoError(t, err)
	assert.Equal(t, "drill", updated.Name)
	assert.Equal(t, "hammer drill", updated.Description)
	assert.False(t, updated.Available)

	// a blank name is ignored rather than rejected
	blank := "   "
	updated, err = f.items.Update(ctx, f.owner.ID, item.ID, UpdateItemInput{Name: &blank})
	require.NoError(t, err)
	assert.Equal(t, "drill", updated.Name)
}

func TestItemUpdateOnlyOwner(t *testing.T) {
	f := newItemFixture(t)
	item := f.addItem(t, "drill", "cordless drill")

	name := "mine now"
	_, err := f.items.Update(context.Background(), f.booker.ID, item.ID, UpdateItemInput{Name: &name})
	assert.True(t, apperr.IsValidation(err))
}

func TestItemGetBookingClassification(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	item := f.addItem(t, "drill", "cordless drill")
	now := time.Now()

	// ended bookings never count as last, only a currently-running one does
	f.addBooking(t, item.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.BookingStatusApproved)
	running := f.addBooking(t, item.ID, now.Add(-time.Hour), now.Add(time.Hour), models.BookingStatusApproved)
	soon := f.addBooking(t, item.ID, now.Add(2*time.Hour), now.Add(3*time.Hour), models.BookingStatusWaiting)
	f.addBooking(t, item.ID, now.Add(5*time.Hour), now.Add(6*time.Hour), models.BookingStatusApproved)

	got, err := f.items.Get(ctx, f.owner.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastBooking)
	require.NotNil(t, got.NextBooking)
	assert.True(t, got.LastBooking.Equal(running.Start))
	assert.True(t, got.NextBooking.Equal(soon.Start))
}

func TestItemGetLongRunningBooking(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	item := f.addItem(t, "drill", "cordless drill")
	now := time.Now()

	// a booking that started a month ago and is still running counts as last
	booking, err := f.bookings.Create(ctx, f.booker.ID, item.ID, now.AddDate(0, -1, 0), now.AddDate(0, 0, 1))
	require.NoError(t, err)
	_, err = f.bookings.Decide(ctx, f.owner.ID, booking.ID, true)
	require.NoError(t, err)

	got, err := f.items.Get(ctx, f.owner.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastBooking)
	assert.True(t, got.LastBooking.Equal(booking.Start))
	assert.Nil(t, got.NextBooking)

	current, err := f.bookings.ListForOwner(ctx, f.owner.ID, models.StateCurrent)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, booking.ID, current[0].ID)
}

func TestItemGetNoBookings(t *testing.T) {
	f := newItemFixture(t)
	item := f.addItem(t, "drill", "cordless drill")

	got, err := f.items.Get(context.Background(), f.owner.ID, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastBooking)
	assert.Nil(t, got.NextBooking)
	assert.Empty(t, got.Comments)
}

func TestItemGetApprovedOnlyPolicy(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	item := f.addItem(t, "drill", "cordless drill")
	now := time.Now()

	f.addBooking(t, item.ID, now.Add(2*time.Hour), now.Add(3*time.Hour), models.BookingStatusWaiting)
	approved := f.addBooking(t, item.ID, now.Add(5*time.Hour), now.Add(6*time.Hour), models.BookingStatusApproved)

	strict := NewItemService(f.store, true)
	got, err := strict.Get(ctx, f.owner.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NextBooking)
	assert.True(t, got.NextBooking.Equal(approved.Start))
}

func TestItemListByOwner(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	drill := f.addItem(t, "drill", "cordless drill")
	saw := f.addItem(t, "saw", "hand saw")
	now := time.Now()

	running := f.addBooking(t, drill.ID, now.Add(-time.Hour), now.Add(time.Hour), models.BookingStatusApproved)
	soon := f.addBooking(t, saw.ID, now.Add(2*time.Hour), now.Add(3*time.Hour), models.BookingStatusApproved)

	f.addBooking(t, drill.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.BookingStatusApproved)
	comment, err := f.items.AddComment(ctx, f.booker.ID, drill.ID, "does the job")
	require.NoError(t, err)

	list, err := f.items.ListByOwner(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, drill.ID, list[0].Item.ID)
	require.NotNil(t, list[0].LastBooking)
	assert.True(t, list[0].LastBooking.Equal(running.Start))
	assert.Nil(t, list[0].NextBooking)
	require.Len(t, list[0].Comments, 1)
	assert.Equal(t, comment.ID, list[0].Comments[0].ID)
	assert.Equal(t, "Bob", list[0].Comments[0].User.Name)

	assert.Equal(t, saw.ID, list[1].Item.ID)
	assert.Nil(t, list[1].LastBooking)
	require.NotNil(t, list[1].NextBooking)
	assert.True(t, list[1].NextBooking.Equal(soon.Start))
	assert.Empty(t, list[1].Comments)
}

func TestItemSearch(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	drill := f.addItem(t, "Cordless Drill", "compact power tool")
	f.addItem(t, "saw", "hand saw")

	hidden := f.addItem(t, "spare drill", "older drill")
	hidden.Available = false
	require.NoError(t, f.store.Items().Save(ctx, hidden))

	found, err := f.items.Search(ctx, "dRiLl")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, drill.ID, found[0].ID)

	// description matches too
	found, err = f.items.Search(ctx, "power")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, drill.ID, found[0].ID)
}

func TestItemSearchBlank(t *testing.T) {
	f := newItemFixture(t)
	f.addItem(t, "drill", "cordless drill")

	found, err := f.items.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestAddComment(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	item := f.addItem(t, "drill", "cordless drill")
	now := time.Now()

	f.addBooking(t, item.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.BookingStatusApproved)

	comment, err := f.items.AddComment(ctx, f.booker.ID, item.ID, "worked great")
	require.NoError(t, err)
	assert.Equal(t, "Bob", comment.User.Name)
	assert.False(t, comment.Created.IsZero())
}

func TestAddCommentRequiresFinishedApprovedBooking(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	item := f.addItem(t, "drill", "cordless drill")
	now := time.Now()

	// no booking at all
	_, err := f.items.AddComment(ctx, f.booker.ID, item.ID, "nice")
	assert.True(t, apperr.IsValidation(err))

	// rejected booking, even a finished one, does not qualify
	f.addBooking(t, item.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.BookingStatusRejected)
	_, err = f.items.AddComment(ctx, f.booker.ID, item.ID, "nice")
	assert.True(t, apperr.IsValidation(err))

	// approved but still running does not qualify either
	f.addBooking(t, item.ID, now.Add(-time.Hour), now.Add(time.Hour), models.BookingStatusApproved)
	_, err = f.items.AddComment(ctx, f.booker.ID, item.ID, "nice")
	assert.True(t, apperr.IsValidation(err))
}
