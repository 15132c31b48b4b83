package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/blogger-api-nosql/internal/domain"
	"github.com/blogger-api-nosql/internal/pkg/paging"
)

// BlogRepo provides typed DynamoDB operations for the blogs table.
type BlogRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBlogRepo(client *dynamodb.Client, tableName string) *BlogRepo {
	return &BlogRepo{client: client, tableName: tableName}
}

func (r *BlogRepo) Put(ctx context.Context, b *domain.Blog) error {
	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return fmt.Errorf("marshal blog: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put blog: %w (%w)", err, domain.ErrStorage)
	}
	return nil
}

func (r *BlogRepo) Get(ctx context.Context, blogID string) (*domain.Blog, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("blog_id", blogID),
	})
	if err != nil {
		return nil, fmt.Errorf("get blog: %w (%w)", err, domain.ErrStorage)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("blog not found: %w", domain.ErrNotFound)
	}
	var b domain.Blog
	if err := attributevalue.UnmarshalMap(out.Item, &b); err != nil {
		return nil, fmt.Errorf("unmarshal blog: %w", err)
	}
	return &b, nil
}

// Update rewrites the mutable fields. The conditional write turns an
// unknown blog into domain.ErrNotFound instead of inserting a stub item.
func (r *BlogRepo) Update(ctx context.Context, blogID string, req domain.UpdateBlogRequest) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"website_url": req.WebsiteURL,
		"updated_at":  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("blog_id", blogID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(blog_id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("blog not found: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update blog: %w (%w)", err, domain.ErrStorage)
	}
	return nil
}

func (r *BlogRepo) Delete(ctx context.Context, blogID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("blog_id", blogID),
		ConditionExpression: aws.String("attribute_exists(blog_id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("blog not found: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("delete blog: %w (%w)", err, domain.ErrStorage)
	}
	return nil
}

func (r *BlogRepo) Count(ctx context.Context, filter domain.BlogFilter) (int, error) {
	blogs, err := r.scan(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(blogs), nil
}

// Find returns one sorted page window, like PostRepo.Find. The name
// search is case-insensitive so it runs in memory over the scan rather
// than as a Dynamo filter expression.
func (r *BlogRepo) Find(ctx context.Context, filter domain.BlogFilter, skip, limit int, sortBy, sortDirection string) ([]domain.Blog, error) {
	blogs, err := r.scan(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortBlogs(blogs, sortBy, sortDirection)
	return pageWindow(blogs, skip, limit), nil
}

func (r *BlogRepo) scan(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}

	var blogs []domain.Blog
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan blogs: %w (%w)", err, domain.ErrStorage)
		}
		var page []domain.Blog
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal blogs: %w", err)
		}
		for _, b := range page {
			if matchesBlog(b, filter) {
				blogs = append(blogs, b)
			}
		}
		if out.LastEvaluatedKey == nil {
			return blogs, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func matchesBlog(b domain.Blog, filter domain.BlogFilter) bool {
	if filter.SearchNameTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Name), strings.ToLower(filter.SearchNameTerm))
}

func sortBlogs(blogs []domain.Blog, sortBy, sortDirection string) {
	less := func(a, b domain.Blog) bool {
		switch sortBy {
		case "name":
			return a.Name < b.Name
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(blogs, func(i, j int) bool {
		if sortDirection == paging.DirectionAsc {
			return less(blogs[i], blogs[j])
		}
		return less(blogs[j], blogs[i])
	})
}
