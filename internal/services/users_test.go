package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharebox/internal/apperr"
	"sharebox/internal/repository"
)

func TestUserCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryStore())

	user, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestUserGetUnknown(t *testing.T) {
	svc := NewUserService(repository.NewMemoryStore())

	_, err := svc.Get(context.Background(), 42)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryStore())

	_, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Other Alice", "alice@example.com")
	assert.True(t, apperr.IsConflict(err))
}

func TestUserUpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryStore())

	user, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	name := "Alicia"
	updated, err := svc.Update(ctx, user.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	email := "alicia@example.com"
	updated, err = svc.Update(ctx, user.ID, nil, &email)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alicia@example.com", updated.Email)
}

func TestUserUpdateEmailConflict(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryStore())

	_, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	bob, err := svc.Create(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)

	taken := "alice@example.com"
	_, err = svc.Update(ctx, bob.ID, nil, &taken)
	assert.True(t, apperr.IsConflict(err))

	// re-submitting your own email is not a conflict
	own := "bob@example.com"
	updated, err := svc.Update(ctx, bob.ID, nil, &own)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", updated.Email)
}

func TestUserUpdateUnknown(t *testing.T) {
	svc := NewUserService(repository.NewMemoryStore())

	name := "Nobody"
	_, err := svc.Update(context.Background(), 42, &name, nil)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUserDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	users := NewUserService(store)
	items := NewItemService(store, false)

	owner, err := users.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	item, err := items.Create(ctx, owner.ID, CreateItemInput{
		Name: "drill", Description: "cordless drill", Available: true,
	})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, owner.ID))

	_, err = users.Get(ctx, owner.ID)
	assert.True(t, apperr.IsNotFound(err))
	_, err = store.Items().Get(ctx, item.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
