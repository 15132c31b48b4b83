package dynamo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blogger-api-nosql/internal/domain"
	"github.com/blogger-api-nosql/internal/pkg/paging"
)

func TestMatchesBlog_NameSearchIsCaseInsensitive(t *testing.T) {
	b := domain.Blog{Name: "TechTalk"}

	assert.True(t, matchesBlog(b, domain.BlogFilter{}))
	assert.True(t, matchesBlog(b, domain.BlogFilter{SearchNameTerm: "tech"}))
	assert.True(t, matchesBlog(b, domain.BlogFilter{SearchNameTerm: "TALK"}))
	assert.False(t, matchesBlog(b, domain.BlogFilter{SearchNameTerm: "cooking"}))
}

func TestSortBlogs_ByNameAndCreatedAt(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	blogs := []domain.Blog{
		{BlogID: "b1", Name: "zeta", CreatedAt: base},
		{BlogID: "b2", Name: "alpha", CreatedAt: base.Add(time.Hour)},
		{BlogID: "b3", Name: "mid", CreatedAt: base.Add(time.Minute)},
	}

	sortBlogs(blogs, "name", paging.DirectionAsc)
	assert.Equal(t, "alpha", blogs[0].Name)
	assert.Equal(t, "zeta", blogs[2].Name)

	sortBlogs(blogs, "createdAt", paging.DirectionDesc)
	assert.Equal(t, "b2", blogs[0].BlogID)
	assert.Equal(t, "b1", blogs[2].BlogID)
}
