package blog

import (
	"context"
	"time"

	"github.com/blogger-api-nosql/internal/domain"
	"github.com/blogger-api-nosql/internal/pkg/id"
	"github.com/blogger-api-nosql/internal/pkg/paging"
)

// Service exposes blog CRUD plus listing with a name search term.
type Service interface {
	Create(ctx context.Context, req domain.CreateBlogRequest) (*domain.Blog, error)
	Get(ctx context.Context, blogID string) (*domain.Blog, error)
	Update(ctx context.Context, blogID string, req domain.UpdateBlogRequest) error
	Delete(ctx context.Context, blogID string) error
	List(ctx context.Context, filter domain.BlogFilter, q paging.Query) (*paging.Result[domain.Blog], error)
}

type blogStore interface {
	Put(ctx context.Context, b *domain.Blog) error
	Get(ctx context.Context, blogID string) (*domain.Blog, error)
	Update(ctx context.Context, blogID string, req domain.UpdateBlogRequest) error
	Delete(ctx context.Context, blogID string) error
	Count(ctx context.Context, filter domain.BlogFilter) (int, error)
	Find(ctx context.Context, filter domain.BlogFilter, skip, limit int, sortBy, sortDirection string) ([]domain.Blog, error)
}

type service struct {
	repo blogStore
}

func NewService(repo blogStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateBlogRequest) (*domain.Blog, error) {
	b := &domain.Blog{
		BlogID:      id.New(),
		Name:        req.Name,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Get(ctx context.Context, blogID string) (*domain.Blog, error) {
	return s.repo.Get(ctx, blogID)
}

func (s *service) Update(ctx context.Context, blogID string, req domain.UpdateBlogRequest) error {
	return s.repo.Update(ctx, blogID, req)
}

func (s *service) Delete(ctx context.Context, blogID string) error {
	return s.repo.Delete(ctx, blogID)
}

func (s *service) List(ctx context.Context, filter domain.BlogFilter, q paging.Query) (*paging.Result[domain.Blog], error) {
	return paging.Execute(ctx, q,
		func(ctx context.Context) (int, error) {
			return s.repo.Count(ctx, filter)
		},
		func(ctx context.Context, skip, limit int, sortBy, sortDirection string) ([]domain.Blog, error) {
			return s.repo.Find(ctx, filter, skip, limit, sortBy, sortDirection)
		})
}
