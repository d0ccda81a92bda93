package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-storefront/internal/event"
	"go-storefront/internal/model"
	"go-storefront/pkg/apierror"
)

type MerchRepository interface {
	List(ctx context.Context) ([]model.Merch, error)
	FindByID(ctx context.Context, id string) (model.Merch, error)
	Create(ctx context.Context, m model.Merch) error
	Update(ctx context.Context, id string, patch model.UpdateMerchRequest) (model.Merch, error)
	Delete(ctx context.Context, id string) error
}

type MerchService struct {
	repo MerchRepository
	bus  event.Bus
}

func NewMerchService(repo MerchRepository, bus event.Bus) *MerchService {
	return &MerchService{repo: repo, bus: bus}
}

func (s *MerchService) List(ctx context.Context) ([]model.Merch, error) {
	return s.repo.List(ctx)
}

func (s *MerchService) Get(ctx context.Context, id string) (model.Merch, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MerchService) Create(ctx context.Context, actorID string, req model.CreateMerchRequest) (model.Merch, error) {
	if err := req.Validate(); err != nil {
		return model.Merch{}, apierror.BadRequest("validation failed", err.Error())
	}

	now := time.Now().UTC()
	item := model.Merch{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Size:        req.Size,
		ImageURL:    req.ImageURL,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return model.Merch{}, err
	}

	publish(s.bus, event.TypeMerchCreated, item.ID, actorID)
	return item, nil
}

func (s *MerchService) Update(ctx context.Context, actorID string, id string, req model.UpdateMerchRequest) (model.Merch, error) {
	if !req.HasChanges() {
		return model.Merch{}, apierror.BadRequest("at least one field is required", "")
	}
	if err := req.Validate(); err != nil {
		return model.Merch{}, apierror.BadRequest("validation failed", err.Error())
	}

	item, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return model.Merch{}, err
	}

	publish(s.bus, event.TypeMerchUpdated, item.ID, actorID)
	return item, nil
}

func (s *MerchService) Delete(ctx context.Context, actorID string, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	publish(s.bus, event.TypeMerchDeleted, id, actorID)
	return nil
}
