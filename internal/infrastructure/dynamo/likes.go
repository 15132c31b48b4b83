package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/blogger-api-nosql/internal/domain"
)

// LikeRepo provides typed DynamoDB operations for the likes table.
// PK: subject_id, SK: user_id, so the table key enforces at most one
// record per (subject, user).
type LikeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewLikeRepo(client *dynamodb.Client, tableName string) *LikeRepo {
	return &LikeRepo{client: client, tableName: tableName}
}

// Upsert writes the vote in a single conditional UpdateItem, so two
// racing writers for the same (subject, user) serialize at the table.
// created_at is only set on first write; a None status carries an
// attribute_exists condition so a missing record is never materialized
// (the conditional failure is reported as a successful no-op).
func (r *LikeRepo) Upsert(ctx context.Context, subjectID, userID, userLogin string, status domain.LikeStatus) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	input := &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              compositeKey("subject_id", subjectID, "user_id", userID),
		UpdateExpression: aws.String("SET #st = :status, user_login = :login, updated_at = :now, created_at = if_not_exists(created_at, :now)"),
		ExpressionAttributeNames: map[string]string{
			"#st": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
			":login":  &types.AttributeValueMemberS{Value: userLogin},
			":now":    &types.AttributeValueMemberS{Value: now},
		},
	}
	if status == domain.LikeStatusNone {
		input.ConditionExpression = aws.String("attribute_exists(subject_id)")
	}

	_, err := r.client.UpdateItem(ctx, input)
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			// None on a non-existent record: nothing to retract.
			return nil
		}
		return fmt.Errorf("upsert like: %w (%w)", err, domain.ErrStorage)
	}
	return nil
}

func (r *LikeRepo) Get(ctx context.Context, subjectID, userID string) (*domain.Like, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("subject_id", subjectID, "user_id", userID),
	})
	if err != nil {
		return nil, fmt.Errorf("get like: %w (%w)", err, domain.ErrStorage)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("like not found: %w", domain.ErrNotFound)
	}
	var l domain.Like
	if err := attributevalue.UnmarshalMap(out.Item, &l); err != nil {
		return nil, fmt.Errorf("unmarshal like: %w", err)
	}
	return &l, nil
}

// GetBySubject returns every engagement record for the subject.
func (r *LikeRepo) GetBySubject(ctx context.Context, subjectID string) ([]domain.Like, error) {
	var likes []domain.Like
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    aws.String("subject_id = :s"),
			ExpressionAttributeValues: map[string]types.AttributeValue{":s": &types.AttributeValueMemberS{Value: subjectID}},
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query likes: %w (%w)", err, domain.ErrStorage)
		}
		var page []domain.Like
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal likes: %w", err)
		}
		likes = append(likes, page...)
		if out.LastEvaluatedKey == nil {
			return likes, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
