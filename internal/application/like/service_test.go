package like

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/blogger-api-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memLikeStore mirrors the DynamoDB repo's keyed-upsert semantics.
type memLikeStore struct {
	records map[string]*domain.Like // key: subjectID + "/" + userID
	now     time.Time
	failing bool
}

func newMemLikeStore() *memLikeStore {
	return &memLikeStore{records: map[string]*domain.Like{}, now: time.Unix(1700000000, 0).UTC()}
}

// tick advances the fake clock so records get distinct timestamps.
func (s *memLikeStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *memLikeStore) Upsert(_ context.Context, subjectID, userID, userLogin string, status domain.LikeStatus) error {
	if s.failing {
		return fmt.Errorf("upsert like: %w", domain.ErrStorage)
	}
	key := subjectID + "/" + userID
	now := s.tick()
	if rec, ok := s.records[key]; ok {
		rec.Status = status
		rec.UserLogin = userLogin
		rec.UpdatedAt = now
		return nil
	}
	if status == domain.LikeStatusNone {
		// Nothing to retract.
		return nil
	}
	s.records[key] = &domain.Like{
		SubjectID: subjectID,
		UserID:    userID,
		UserLogin: userLogin,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (s *memLikeStore) GetBySubject(_ context.Context, subjectID string) ([]domain.Like, error) {
	if s.failing {
		return nil, fmt.Errorf("query likes: %w", domain.ErrStorage)
	}
	var out []domain.Like
	for _, rec := range s.records {
		if rec.SubjectID == subjectID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (s *memLikeStore) count(subjectID string) int {
	n := 0
	for _, rec := range s.records {
		if rec.SubjectID == subjectID {
			n++
		}
	}
	return n
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMemLikeStore())

	err := svc.SetStatus(context.Background(), "p1", "u1", "ann", "Meh")

	require.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestSetStatus_LikeThenDislike_SingleRecord(t *testing.T) {
	store := newMemLikeStore()
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, "p1", "u1", "ann", domain.LikeStatusLike))
	require.NoError(t, svc.SetStatus(ctx, "p1", "u1", "ann", domain.LikeStatusDislike))

	assert.Equal(t, 1, store.count("p1"))
	rec := store.records["p1/u1"]
	require.NotNil(t, rec)
	assert.Equal(t, domain.LikeStatusDislike, rec.Status)
}

func TestSetStatus_NoneWithoutRecordIsNoOp(t *testing.T) {
	store := newMemLikeStore()
	svc := NewService(store)

	require.NoError(t, svc.SetStatus(context.Background(), "p1", "u1", "ann", domain.LikeStatusNone))

	assert.Equal(t, 0, store.count("p1"))
}

func TestSetStatus_StorageFailure(t *testing.T) {
	store := newMemLikeStore()
	store.failing = true
	svc := NewService(store)

	err := svc.SetStatus(context.Background(), "p1", "u1", "ann", domain.LikeStatusLike)

	require.ErrorIs(t, err, domain.ErrStorage)
}

func TestExtendedLikesInfo_ThreeLikes_Anonymous(t *testing.T) {
	store := newMemLikeStore()
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, "p1", "u1", "ann", domain.LikeStatusLike))
	require.NoError(t, svc.SetStatus(ctx, "p1", "u2", "bob", domain.LikeStatusLike))
	require.NoError(t, svc.SetStatus(ctx, "p1", "u3", "cat", domain.LikeStatusLike))

	info, err := svc.ExtendedLikesInfo(ctx, "p1", domain.Anonymous)

	require.NoError(t, err)
	assert.Equal(t, 3, info.LikesCount)
	assert.Equal(t, 0, info.DislikesCount)
	assert.Equal(t, domain.LikeStatusNone, info.MyStatus)
	require.Len(t, info.NewestLikes, 3)
	// Most recent first.
	assert.Equal(t, "u3", info.NewestLikes[0].UserID)
	assert.Equal(t, "u2", info.NewestLikes[1].UserID)
	assert.Equal(t, "u1", info.NewestLikes[2].UserID)
}

func TestExtendedLikesInfo_NewestLikesCappedAtThree(t *testing.T) {
	store := newMemLikeStore()
	svc := NewService(store)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		user := fmt.Sprintf("u%d", i)
		require.NoError(t, svc.SetStatus(ctx, "p1", user, user, domain.LikeStatusLike))
	}

	info, err := svc.ExtendedLikesInfo(ctx, "p1", domain.Anonymous)

	require.NoError(t, err)
	assert.Equal(t, 5, info.LikesCount)
	require.Len(t, info.NewestLikes, 3)
	assert.Equal(t, "u5", info.NewestLikes[0].UserID)
	assert.Equal(t, "u3", info.NewestLikes[2].UserID)
}

func TestLikesInfo_MyStatus(t *testing.T) {
	store := newMemLikeStore()
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, "p1", "u1", "ann", domain.LikeStatusDislike))
	require.NoError(t, svc.SetStatus(ctx, "p1", "u2", "bob", domain.LikeStatusLike))

	info, err := svc.LikesInfo(ctx, "p1", domain.AuthenticatedCaller("u1"))
	require.NoError(t, err)
	assert.Equal(t, domain.LikeStatusDislike, info.MyStatus)
	assert.Equal(t, 1, info.LikesCount)
	assert.Equal(t, 1, info.DislikesCount)

	// Caller with no record.
	info, err = svc.LikesInfo(ctx, "p1", domain.AuthenticatedCaller("u9"))
	require.NoError(t, err)
	assert.Equal(t, domain.LikeStatusNone, info.MyStatus)
}

func TestLikesInfo_AnonymousAlwaysNone(t *testing.T) {
	store := newMemLikeStore()
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, "p1", "u1", "ann", domain.LikeStatusLike))

	info, err := svc.LikesInfo(ctx, "p1", domain.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, domain.LikeStatusNone, info.MyStatus)
}

func TestLikesInfo_StorageFailureIsNotAnEmptyAggregate(t *testing.T) {
	store := newMemLikeStore()
	store.failing = true
	svc := NewService(store)

	_, err := svc.LikesInfo(context.Background(), "p1", domain.Anonymous)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}
