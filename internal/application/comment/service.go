package comment

import (
	"context"
	"time"

	"github.com/blogger-api-nosql/internal/application/like"
	"github.com/blogger-api-nosql/internal/domain"
	"github.com/blogger-api-nosql/internal/pkg/id"
	"github.com/blogger-api-nosql/internal/pkg/paging"
)

// Service exposes comments with their engagement aggregates.
type Service interface {
	CreateForPost(ctx context.Context, postID, content string, author domain.CommentatorInfo) (*domain.Comment, error)
	Get(ctx context.Context, commentID string, caller domain.Caller) (*domain.CommentView, error)
	ListByPost(ctx context.Context, postID string, q paging.Query, caller domain.Caller) (*paging.Result[domain.CommentView], error)
}

type commentStore interface {
	Put(ctx context.Context, c *domain.Comment) error
	Get(ctx context.Context, commentID string) (*domain.Comment, error)
	Count(ctx context.Context, filter domain.CommentFilter) (int, error)
	Find(ctx context.Context, filter domain.CommentFilter, skip, limit int, sortBy, sortDirection string) ([]domain.Comment, error)
}

type postStore interface {
	Get(ctx context.Context, postID string) (*domain.Post, error)
}

type service struct {
	repo  commentStore
	posts postStore
	likes like.Service
}

func NewService(repo commentStore, posts postStore, likes like.Service) Service {
	return &service{repo: repo, posts: posts, likes: likes}
}

func (s *service) CreateForPost(ctx context.Context, postID, content string, author domain.CommentatorInfo) (*domain.Comment, error) {
	// The post must exist; a comment on a deleted post is ErrNotFound.
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}
	c := &domain.Comment{
		CommentID:       id.New(),
		PostID:          postID,
		Content:         content,
		CommentatorInfo: author,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, commentID string, caller domain.Caller) (*domain.CommentView, error) {
	c, err := s.repo.Get(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, *c, caller)
}

func (s *service) ListByPost(ctx context.Context, postID string, q paging.Query, caller domain.Caller) (*paging.Result[domain.CommentView], error) {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}
	filter := domain.CommentFilter{PostID: postID}
	return paging.Execute(ctx, q,
		func(ctx context.Context) (int, error) {
			return s.repo.Count(ctx, filter)
		},
		func(ctx context.Context, skip, limit int, sortBy, sortDirection string) ([]domain.CommentView, error) {
			comments, err := s.repo.Find(ctx, filter, skip, limit, sortBy, sortDirection)
			if err != nil {
				return nil, err
			}
			views := make([]domain.CommentView, 0, len(comments))
			for _, c := range comments {
				view, err := s.decorate(ctx, c, caller)
				if err != nil {
					return nil, err
				}
				views = append(views, *view)
			}
			return views, nil
		})
}

func (s *service) decorate(ctx context.Context, c domain.Comment, caller domain.Caller) (*domain.CommentView, error) {
	info, err := s.likes.LikesInfo(ctx, c.CommentID, caller)
	if err != nil {
		return nil, err
	}
	return &domain.CommentView{Comment: c, LikesInfo: *info}, nil
}
