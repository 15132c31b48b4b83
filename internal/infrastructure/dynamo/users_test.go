package dynamo

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogger-api-nosql/internal/domain"
)

// recovery_code keys a GSI; an empty string there makes DynamoDB reject
// the whole Put, so a fresh user must marshal without the attribute.
func TestUserMarshal_OmitsRecoveryAttributesUntilSet(t *testing.T) {
	u := &domain.User{
		UserID:           "u1",
		Login:            "alice",
		Email:            "alice@example.com",
		PasswordHash:     "h",
		PasswordSalt:     "s",
		ConfirmationCode: "code-1",
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}

	item, err := attributevalue.MarshalMap(u)
	require.NoError(t, err)

	_, ok := item["recovery_code"]
	assert.False(t, ok, "recovery_code must be absent on a fresh user")
	_, ok = item["recovery_expires_at"]
	assert.False(t, ok, "recovery_expires_at must be absent on a fresh user")
}

func TestUserMarshal_CarriesRecoveryAttributesWhenPending(t *testing.T) {
	u := &domain.User{
		UserID:          "u1",
		Login:           "alice",
		Email:           "alice@example.com",
		RecoveryCode:    "rec-1",
		RecoveryExpires: time.Now().Add(time.Hour).Unix(),
	}

	item, err := attributevalue.MarshalMap(u)
	require.NoError(t, err)

	code, ok := item["recovery_code"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "rec-1", code.Value)
	_, ok = item["recovery_expires_at"].(*types.AttributeValueMemberN)
	assert.True(t, ok)
}

func TestWithUpdatedAt_DoesNotMutateArgument(t *testing.T) {
	updates := map[string]interface{}{"login": "alice"}

	fields := withUpdatedAt(updates)

	assert.Len(t, updates, 1)
	_, ok := updates["updated_at"]
	assert.False(t, ok, "caller's map must stay untouched")
	_, ok = fields["updated_at"]
	assert.True(t, ok)
	assert.Equal(t, "alice", fields["login"])
}
