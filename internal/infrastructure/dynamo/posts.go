package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/blogger-api-nosql/internal/domain"
	"github.com/blogger-api-nosql/internal/pkg/paging"
)

// PostRepo provides typed DynamoDB operations for the posts table.
type PostRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPostRepo(client *dynamodb.Client, tableName string) *PostRepo {
	return &PostRepo{client: client, tableName: tableName}
}

func (r *PostRepo) Put(ctx context.Context, p *domain.Post) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put post: %w (%w)", err, domain.ErrStorage)
	}
	return nil
}

func (r *PostRepo) Get(ctx context.Context, postID string) (*domain.Post, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("post_id", postID),
	})
	if err != nil {
		return nil, fmt.Errorf("get post: %w (%w)", err, domain.ErrStorage)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("post not found: %w", domain.ErrNotFound)
	}
	var p domain.Post
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal post: %w", err)
	}
	return &p, nil
}

func (r *PostRepo) Count(ctx context.Context, filter domain.PostFilter) (int, error) {
	posts, err := r.scan(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

// Find returns one sorted page window. Sorting happens in memory over the
// filtered scan: the table is keyed for point reads and arbitrary sortBy
// has no matching index.
func (r *PostRepo) Find(ctx context.Context, filter domain.PostFilter, skip, limit int, sortBy, sortDirection string) ([]domain.Post, error) {
	posts, err := r.scan(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortPosts(posts, sortBy, sortDirection)
	return pageWindow(posts, skip, limit), nil
}

func (r *PostRepo) scan(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if filter.BlogID != "" {
		input.FilterExpression = aws.String("blog_id = :b")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":b": &types.AttributeValueMemberS{Value: filter.BlogID},
		}
	}

	var posts []domain.Post
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan posts: %w (%w)", err, domain.ErrStorage)
		}
		var page []domain.Post
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal posts: %w", err)
		}
		posts = append(posts, page...)
		if out.LastEvaluatedKey == nil {
			return posts, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func sortPosts(posts []domain.Post, sortBy, sortDirection string) {
	less := func(a, b domain.Post) bool {
		switch sortBy {
		case "title":
			return a.Title < b.Title
		case "blogName":
			return a.BlogName < b.BlogName
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if sortDirection == paging.DirectionAsc {
			return less(posts[i], posts[j])
		}
		return less(posts[j], posts[i])
	})
}

// pageWindow slices items to the [skip, skip+limit) window.
func pageWindow[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
