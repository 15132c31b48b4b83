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

// CommentRepo provides typed DynamoDB operations for the comments table.
type CommentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCommentRepo(client *dynamodb.Client, tableName string) *CommentRepo {
	return &CommentRepo{client: client, tableName: tableName}
}

func (r *CommentRepo) Put(ctx context.Context, c *domain.Comment) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal comment: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put comment: %w (%w)", err, domain.ErrStorage)
	}
	return nil
}

func (r *CommentRepo) Get(ctx context.Context, commentID string) (*domain.Comment, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("comment_id", commentID),
	})
	if err != nil {
		return nil, fmt.Errorf("get comment: %w (%w)", err, domain.ErrStorage)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("comment not found: %w", domain.ErrNotFound)
	}
	var c domain.Comment
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, fmt.Errorf("unmarshal comment: %w", err)
	}
	return &c, nil
}

func (r *CommentRepo) Count(ctx context.Context, filter domain.CommentFilter) (int, error) {
	comments, err := r.scan(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(comments), nil
}

// Find returns one sorted page window (see PostRepo.Find for the
// in-memory sort rationale).
func (r *CommentRepo) Find(ctx context.Context, filter domain.CommentFilter, skip, limit int, sortBy, sortDirection string) ([]domain.Comment, error) {
	comments, err := r.scan(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortComments(comments, sortBy, sortDirection)
	return pageWindow(comments, skip, limit), nil
}

func (r *CommentRepo) scan(ctx context.Context, filter domain.CommentFilter) ([]domain.Comment, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if filter.PostID != "" {
		input.FilterExpression = aws.String("post_id = :p")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":p": &types.AttributeValueMemberS{Value: filter.PostID},
		}
	}

	var comments []domain.Comment
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan comments: %w (%w)", err, domain.ErrStorage)
		}
		var page []domain.Comment
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal comments: %w", err)
		}
		comments = append(comments, page...)
		if out.LastEvaluatedKey == nil {
			return comments, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func sortComments(comments []domain.Comment, sortBy, sortDirection string) {
	less := func(a, b domain.Comment) bool {
		switch sortBy {
		case "content":
			return a.Content < b.Content
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		if sortDirection == paging.DirectionAsc {
			return less(comments[i], comments[j])
		}
		return less(comments[j], comments[i])
	})
}
