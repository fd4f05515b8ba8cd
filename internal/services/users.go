package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"sharebox/internal/apperr"
	"sharebox/internal/models"
	"sharebox/internal/repository"
)

type UserService struct {
	store repository.Store
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.store.Users().Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("no user with id = %d", id)
	}
	return user, err
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.Users().List(ctx)
}

func (s *UserService) Create(ctx context.Context, name, email string) (*models.User, error) {
	user := &models.User{Name: name, Email: email}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		taken, err := tx.Users().EmailTaken(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("there is already a user with email %s", email)
		}
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update of name and/or email. Changing the email to
// one belonging to another user conflicts; re-submitting the current email
// does not.
func (s *UserService) Update(ctx context.Context, id uint, name, email *string) (*models.User, error) {
	var user *models.User
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		user, err = tx.Users().Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("no user with id = %d", id)
		}
		if err != nil {
			return err
		}
		if name != nil {
			user.Name = *name
		}
		if email != nil && *email != user.Email {
			taken, err := tx.Users().EmailTaken(ctx, *email)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Conflict("there is already a user with email %s", *email)
			}
			user.Email = *email
		}
		return tx.Users().Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Uint("userId", user.ID).Msg("user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		return tx.Users().Delete(ctx, id)
	})
}

// requireUser resolves a caller id shared by the other services.
func requireUser(ctx context.Context, store repository.Store, id uint) error {
	ok, err := store.Users().Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("no user with id = %d", id)
	}
	return nil
}
