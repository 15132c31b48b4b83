package post

import (
	"context"
	"time"

	"github.com/blogger-api-nosql/internal/application/like"
	"github.com/blogger-api-nosql/internal/domain"
	"github.com/blogger-api-nosql/internal/pkg/id"
	"github.com/blogger-api-nosql/internal/pkg/paging"
)

// Service exposes posts with their engagement aggregates. Read paths
// accept any caller; myStatus resolves against the caller's identity.
type Service interface {
	Create(ctx context.Context, req domain.CreatePostRequest) (*domain.Post, error)
	Get(ctx context.Context, postID string, caller domain.Caller) (*domain.PostView, error)
	List(ctx context.Context, filter domain.PostFilter, q paging.Query, caller domain.Caller) (*paging.Result[domain.PostView], error)
}

type postStore interface {
	Put(ctx context.Context, p *domain.Post) error
	Get(ctx context.Context, postID string) (*domain.Post, error)
	Count(ctx context.Context, filter domain.PostFilter) (int, error)
	Find(ctx context.Context, filter domain.PostFilter, skip, limit int, sortBy, sortDirection string) ([]domain.Post, error)
}

type blogStore interface {
	Get(ctx context.Context, blogID string) (*domain.Blog, error)
}

type service struct {
	repo  postStore
	blogs blogStore
	likes like.Service
}

func NewService(repo postStore, blogs blogStore, likes like.Service) Service {
	return &service{repo: repo, blogs: blogs, likes: likes}
}

// Create resolves the parent blog first: a post for an unknown blog is
// domain.ErrNotFound, and the blog's name is denormalized onto the post.
func (s *service) Create(ctx context.Context, req domain.CreatePostRequest) (*domain.Post, error) {
	b, err := s.blogs.Get(ctx, req.BlogID)
	if err != nil {
		return nil, err
	}
	p := &domain.Post{
		PostID:           id.New(),
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
		BlogID:           b.BlogID,
		BlogName:         b.Name,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, postID string, caller domain.Caller) (*domain.PostView, error) {
	p, err := s.repo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, *p, caller)
}

// List narrowed to a blog first checks the blog exists, so an unknown
// blog is domain.ErrNotFound rather than an empty page.
func (s *service) List(ctx context.Context, filter domain.PostFilter, q paging.Query, caller domain.Caller) (*paging.Result[domain.PostView], error) {
	if filter.BlogID != "" {
		if _, err := s.blogs.Get(ctx, filter.BlogID); err != nil {
			return nil, err
		}
	}
	return paging.Execute(ctx, q,
		func(ctx context.Context) (int, error) {
			return s.repo.Count(ctx, filter)
		},
		func(ctx context.Context, skip, limit int, sortBy, sortDirection string) ([]domain.PostView, error) {
			posts, err := s.repo.Find(ctx, filter, skip, limit, sortBy, sortDirection)
			if err != nil {
				return nil, err
			}
			views := make([]domain.PostView, 0, len(posts))
			for _, p := range posts {
				view, err := s.decorate(ctx, p, caller)
				if err != nil {
					return nil, err
				}
				views = append(views, *view)
			}
			return views, nil
		})
}

func (s *service) decorate(ctx context.Context, p domain.Post, caller domain.Caller) (*domain.PostView, error) {
	info, err := s.likes.ExtendedLikesInfo(ctx, p.PostID, caller)
	if err != nil {
		return nil, err
	}
	return &domain.PostView{Post: p, ExtendedLikesInfo: *info}, nil
}
