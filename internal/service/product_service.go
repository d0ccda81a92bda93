package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-storefront/internal/event"
	"go-storefront/internal/model"
	"go-storefront/pkg/apierror"
)

type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	Create(ctx context.Context, p model.Product) error
	Update(ctx context.Context, id string, patch model.UpdateProductRequest) (model.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductService struct {
	repo ProductRepository
	bus  event.Bus
}

func NewProductService(repo ProductRepository, bus event.Bus) *ProductService {
	return &ProductService{repo: repo, bus: bus}
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (model.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, actorID string, req model.CreateProductRequest) (model.Product, error) {
	if err := req.Validate(); err != nil {
		return model.Product{}, apierror.BadRequest("validation failed", err.Error())
	}

	now := time.Now().UTC()
	product := model.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return model.Product{}, err
	}

	publish(s.bus, event.TypeProductCreated, product.ID, actorID)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, actorID string, id string, req model.UpdateProductRequest) (model.Product, error) {
	if !req.HasChanges() {
		return model.Product{}, apierror.BadRequest("at least one field is required", "")
	}
	if err := req.Validate(); err != nil {
		return model.Product{}, apierror.BadRequest("validation failed", err.Error())
	}

	product, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return model.Product{}, err
	}

	publish(s.bus, event.TypeProductUpdated, product.ID, actorID)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, actorID string, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	publish(s.bus, event.TypeProductDeleted, id, actorID)
	return nil
}

func publish(bus event.Bus, eventType event.Type, resourceID string, actorID string) {
	if bus == nil {
		return
	}
	bus.Publish(event.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	})
}
