package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nursejordan/i-notarize-online.com/internal/models"
	"github.com/nursejordan/i-notarize-online.com/internal/store"
)

// maxTransactItems is DynamoDB's per-transaction item limit.
const maxTransactItems = 100

// HasServices reports whether the service partition holds any item.
func (r *Repo) HasServices(ctx context.Context) (bool, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("PK").Equal(expression.Value(pkService))).
		Build()
	if err != nil {
		return false, fmt.Errorf("build count expression: %w", err)
	}
	out, err := r.DB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 &r.Table,
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Select:                    types.SelectCount,
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("count services: %w", err)
	}
	return out.Count > 0, nil
}

// ApplySeed writes the whole bundle in one transaction, each put conditioned on
// the item being absent.
func (r *Repo) ApplySeed(ctx context.Context, b models.SeedBundle) error {
	var (
		items  []types.TransactWriteItem
		labels []string
	)
	add := func(label string, v any) error {
		av, err := attributevalue.MarshalMap(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", label, err)
		}
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName:           &r.Table,
			Item:                av,
			ConditionExpression: awsStr(notExists),
		}})
		labels = append(labels, label)
		return nil
	}

	for i, s := range b.Services {
		if err := add("service "+s.ID, toServiceItem(i, s)); err != nil {
			return err
		}
	}
	for _, c := range b.Configs {
		pk, sk := ConfigKeys(c.Key)
		it := configItem{PK: pk, SK: sk, Type: typeConfig, Key: string(c.Key), Data: c.Data, UpdatedAt: FormatTime(c.UpdatedAt)}
		if err := add("config "+string(c.Key), it); err != nil {
			return err
		}
	}
	for _, t := range b.Testimonials {
		if err := add("testimonial "+t.ID, toTestimonialItem(t)); err != nil {
			return err
		}
	}
	for i, a := range b.AdditionalServices {
		if err := add("additional service "+a.ID, toAddonItem(i, a)); err != nil {
			return err
		}
	}
	if len(items) == 0 {
		return nil
	}
	if len(items) > maxTransactItems {
		return fmt.Errorf("seed bundle has %d items, more than one transaction allows (%d)", len(items), maxTransactItems)
	}

	_, err := r.DB.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err == nil {
		return nil
	}
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		var conflicts []string
		for i, reason := range tce.CancellationReasons {
			if i < len(labels) && aws.ToString(reason.Code) == conditionalCheckFailed {
				conflicts = append(conflicts, labels[i])
			}
		}
		if len(conflicts) > 0 {
			return &store.SeedConflictError{Items: conflicts}
		}
	}
	return fmt.Errorf("write seed: %w", err)
}
