package blog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blogger-api-nosql/internal/domain"
	"github.com/blogger-api-nosql/internal/pkg/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockBlogStore struct{ mock.Mock }

func (m *mockBlogStore) Put(ctx context.Context, b *domain.Blog) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBlogStore) Get(ctx context.Context, blogID string) (*domain.Blog, error) {
	args := m.Called(ctx, blogID)
	if b, _ := args.Get(0).(*domain.Blog); b != nil {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBlogStore) Update(ctx context.Context, blogID string, req domain.UpdateBlogRequest) error {
	return m.Called(ctx, blogID, req).Error(0)
}
func (m *mockBlogStore) Delete(ctx context.Context, blogID string) error {
	return m.Called(ctx, blogID).Error(0)
}
func (m *mockBlogStore) Count(ctx context.Context, filter domain.BlogFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
func (m *mockBlogStore) Find(ctx context.Context, filter domain.BlogFilter, skip, limit int, sortBy, sortDirection string) ([]domain.Blog, error) {
	args := m.Called(ctx, filter, skip, limit, sortBy, sortDirection)
	if b, _ := args.Get(0).([]domain.Blog); b != nil {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func someBlogs(n int) []domain.Blog {
	blogs := make([]domain.Blog, n)
	base := time.Unix(1700000000, 0).UTC()
	for i := range blogs {
		blogs[i] = domain.Blog{BlogID: "b" + string(rune('1'+i)), Name: "tech", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}
	return blogs
}

// --- tests ---

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	bs := &mockBlogStore{}
	bs.On("Put", mock.Anything, mock.AnythingOfType("*domain.Blog")).Return(nil)

	svc := NewService(bs)
	b, err := svc.Create(context.Background(), domain.CreateBlogRequest{
		Name: "tech", Description: "all things tech", WebsiteURL: "https://tech.example.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, b.BlogID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, "tech", b.Name)
	bs.AssertExpectations(t)
}

func TestGet_NotFound(t *testing.T) {
	bs := &mockBlogStore{}
	bs.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := NewService(bs)
	_, err := svc.Get(context.Background(), "ghost")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_UnknownBlogPropagatesNotFound(t *testing.T) {
	bs := &mockBlogStore{}
	req := domain.UpdateBlogRequest{Name: "renamed"}
	bs.On("Update", mock.Anything, "ghost", req).Return(domain.ErrNotFound)

	svc := NewService(bs)
	err := svc.Update(context.Background(), "ghost", req)

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_UnknownBlogPropagatesNotFound(t *testing.T) {
	bs := &mockBlogStore{}
	bs.On("Delete", mock.Anything, "ghost").Return(domain.ErrNotFound)

	svc := NewService(bs)
	err := svc.Delete(context.Background(), "ghost")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_PagesWithSearchTerm(t *testing.T) {
	bs := &mockBlogStore{}
	filter := domain.BlogFilter{SearchNameTerm: "te"}
	bs.On("Count", mock.Anything, filter).Return(25, nil)
	bs.On("Find", mock.Anything, filter, 20, 10, "createdAt", paging.DirectionDesc).
		Return(someBlogs(5), nil)

	svc := NewService(bs)
	res, err := svc.List(context.Background(), filter, paging.Query{PageNumber: 3, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, 3, res.PagesCount)
	assert.Equal(t, 25, res.TotalCount)
	assert.Len(t, res.Items, 5)
	bs.AssertExpectations(t)
}

func TestList_StorageFailureIsNotAnEmptyPage(t *testing.T) {
	bs := &mockBlogStore{}
	storeErr := errors.New("scan blogs: dynamo down")
	bs.On("Count", mock.Anything, domain.BlogFilter{}).Return(0, storeErr)

	svc := NewService(bs)
	res, err := svc.List(context.Background(), domain.BlogFilter{}, paging.Query{})

	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, res)
}
