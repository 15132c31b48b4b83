package like

import (
	"context"
	"fmt"
	"sort"

	"github.com/blogger-api-nosql/internal/domain"
)

// newestLikesLimit caps the newest-likes preview on posts.
const newestLikesLimit = 3

// Service maintains one engagement record per (subject, user) and
// computes the per-caller aggregates.
type Service interface {
	SetStatus(ctx context.Context, subjectID, userID, userLogin string, status domain.LikeStatus) error
	LikesInfo(ctx context.Context, subjectID string, caller domain.Caller) (*domain.LikesInfo, error)
	ExtendedLikesInfo(ctx context.Context, subjectID string, caller domain.Caller) (*domain.ExtendedLikesInfo, error)
}

type likeStore interface {
	Upsert(ctx context.Context, subjectID, userID, userLogin string, status domain.LikeStatus) error
	GetBySubject(ctx context.Context, subjectID string) ([]domain.Like, error)
}

type service struct {
	repo likeStore
}

func NewService(repo likeStore) Service {
	return &service{repo: repo}
}

// SetStatus upserts the caller's vote. The repo resolves concurrent
// writes for the same (subject, user) with one conditional write, and
// swallows a None vote on a non-existent record as a no-op.
func (s *service) SetStatus(ctx context.Context, subjectID, userID, userLogin string, status domain.LikeStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown like status %q: %w", status, domain.ErrBadRequest)
	}
	return s.repo.Upsert(ctx, subjectID, userID, userLogin, status)
}

func (s *service) LikesInfo(ctx context.Context, subjectID string, caller domain.Caller) (*domain.LikesInfo, error) {
	likes, err := s.repo.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	info := aggregate(likes, caller)
	return &info.LikesInfo, nil
}

func (s *service) ExtendedLikesInfo(ctx context.Context, subjectID string, caller domain.Caller) (*domain.ExtendedLikesInfo, error) {
	likes, err := s.repo.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return aggregate(likes, caller), nil
}

func aggregate(likes []domain.Like, caller domain.Caller) *domain.ExtendedLikesInfo {
	info := &domain.ExtendedLikesInfo{
		LikesInfo:   domain.LikesInfo{MyStatus: domain.LikeStatusNone},
		NewestLikes: []domain.LikeDetails{},
	}
	callerID, authenticated := caller.UserID()

	var liked []domain.Like
	for _, l := range likes {
		switch l.Status {
		case domain.LikeStatusLike:
			info.LikesCount++
			liked = append(liked, l)
		case domain.LikeStatusDislike:
			info.DislikesCount++
		}
		if authenticated && l.UserID == callerID {
			info.MyStatus = l.Status
		}
	}

	// UpdatedAt is when the vote last became a like; most recent first.
	sort.Slice(liked, func(i, j int) bool {
		return liked[i].UpdatedAt.After(liked[j].UpdatedAt)
	})
	for i := 0; i < len(liked) && i < newestLikesLimit; i++ {
		info.NewestLikes = append(info.NewestLikes, domain.LikeDetails{
			UserID:    liked[i].UserID,
			UserLogin: liked[i].UserLogin,
			AddedAt:   liked[i].UpdatedAt,
		})
	}
	return info
}
