package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"sharebox/internal/apperr"
	"sharebox/internal/models"
	"sharebox/internal/repository"
)

// RequestWithItems is an item request annotated with the items created in
// response to it.
type RequestWithItems struct {
	Request models.ItemRequest
	Items   []models.Item
}

type RequestService struct {
	store repository.Store
}

func NewRequestService(store repository.Store) *RequestService {
	return &RequestService{store: store}
}

func (s *RequestService) Create(ctx context.Context, userID uint, description string) (*models.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validation("request description must not be blank")
	}
	request := &models.ItemRequest{
		UserID:      userID,
		Description: description,
	}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		request.Created = time.Now()
		return tx.Requests().Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) Get(ctx context.Context, requestID uint) (*RequestWithItems, error) {
	request, err := s.store.Requests().Get(ctx, requestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("no request with id = %d", requestID)
	}
	if err != nil {
		return nil, err
	}
	items, err := s.store.Items().ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return &RequestWithItems{Request: *request, Items: items}, nil
}

// ListOwn returns the user's requests newest first, each annotated with its
// fulfilling items.
func (s *RequestService) ListOwn(ctx context.Context, userID uint) ([]RequestWithItems, error) {
	requests, err := s.store.Requests().ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ID)
	}
	items, err := s.store.Items().ListByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}
	itemsByRequest := make(map[uint][]models.Item)
	for _, item := range items {
		if item.RequestID != nil {
			itemsByRequest[*item.RequestID] = append(itemsByRequest[*item.RequestID], item)
		}
	}
	result := make([]RequestWithItems, 0, len(requests))
	for _, req := range requests {
		result = append(result, RequestWithItems{Request: req, Items: itemsByRequest[req.ID]})
	}
	return result, nil
}

// ListAll returns every request newest first, without item lists.
func (s *RequestService) ListAll(ctx context.Context) ([]models.ItemRequest, error) {
	return s.store.Requests().ListAll(ctx)
}
