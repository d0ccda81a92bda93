package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-storefront/internal/event"
	"go-storefront/internal/model"
	"go-storefront/pkg/apierror"
)

type NewsRepository interface {
	List(ctx context.Context) ([]model.News, error)
	FindByID(ctx context.Context, id string) (model.News, error)
	Create(ctx context.Context, n model.News) error
	Update(ctx context.Context, id string, patch model.UpdateNewsRequest) (model.News, error)
	Delete(ctx context.Context, id string) error
}

type NewsService struct {
	repo NewsRepository
	bus  event.Bus
}

func NewNewsService(repo NewsRepository, bus event.Bus) *NewsService {
	return &NewsService{repo: repo, bus: bus}
}

func (s *NewsService) List(ctx context.Context) ([]model.News, error) {
	return s.repo.List(ctx)
}

func (s *NewsService) Get(ctx context.Context, id string) (model.News, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *NewsService) Create(ctx context.Context, actorID string, req model.CreateNewsRequest) (model.News, error) {
	if err := req.Validate(); err != nil {
		return model.News{}, apierror.BadRequest("validation failed", err.Error())
	}

	now := time.Now().UTC()
	article := model.News{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		CreatedBy:   actorID,
		PublishedAt: now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, article); err != nil {
		return model.News{}, err
	}

	publish(s.bus, event.TypeNewsPublished, article.ID, actorID)
	return article, nil
}

func (s *NewsService) Update(ctx context.Context, actorID string, id string, req model.UpdateNewsRequest) (model.News, error) {
	if !req.HasChanges() {
		return model.News{}, apierror.BadRequest("at least one field is required", "")
	}
	if err := req.Validate(); err != nil {
		return model.News{}, apierror.BadRequest("validation failed", err.Error())
	}

	article, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return model.News{}, err
	}

	publish(s.bus, event.TypeNewsUpdated, article.ID, actorID)
	return article, nil
}

func (s *NewsService) Delete(ctx context.Context, actorID string, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	publish(s.bus, event.TypeNewsDeleted, id, actorID)
	return nil
}
