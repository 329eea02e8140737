package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
	"github.com/nursejordan/i-notarize-online.com/internal/models"
)

func configKey(key models.ConfigKey) map[string]types.AttributeValue {
	pk, sk := ConfigKeys(key)
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

// GetConfig reads the document stored under key.
func (r *Repo) GetConfig(ctx context.Context, key models.ConfigKey) (models.BusinessConfig, error) {
	result, err := r.DB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.Table,
		Key:       configKey(key),
	})
	if err != nil {
		return models.BusinessConfig{}, fmt.Errorf("get config %s: %w", key, err)
	}
	if result.Item == nil {
		return models.BusinessConfig{}, apperrors.NotFound(string(key))
	}
	var it configItem
	if err := attributevalue.UnmarshalMap(result.Item, &it); err != nil {
		return models.BusinessConfig{}, fmt.Errorf("unmarshal config %s: %w", key, err)
	}
	updated, err := ParseTime(it.UpdatedAt)
	if err != nil {
		return models.BusinessConfig{}, fmt.Errorf("config %s: %w", key, err)
	}
	return models.BusinessConfig{Key: key, Data: it.Data, UpdatedAt: updated}, nil
}

// PutConfig upserts the document for key with a single UpdateItem.
func (r *Repo) PutConfig(ctx context.Context, key models.ConfigKey, data map[string]any, updatedAt time.Time) error {
	update := expression.
		Set(expression.Name("data"), expression.Value(data)).
		Set(expression.Name("updated_at"), expression.Value(FormatTime(updatedAt))).
		Set(expression.Name("config_key"), expression.Value(string(key))).
		Set(expression.Name("type"), expression.Value(typeConfig))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("build config update: %w", err)
	}

	_, err = r.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &r.Table,
		Key:                       configKey(key),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("update config %s: %w", key, err)
	}
	return nil
}
