// Package ddb implements store.Store on a single DynamoDB table.
package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nursejordan/i-notarize-online.com/internal/store"
)

// API is the subset of *dynamodb.Client used by Repo.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Repo wraps a DynamoDB client and table name.
type Repo struct {
	DB    API
	Table string
}

var _ store.Store = (*Repo)(nil)

// New returns a Repo over table.
func New(db API, table string) *Repo {
	return &Repo{DB: db, Table: table}
}

// awsStr is a helper to get a pointer to a string literal.
func awsStr(s string) *string { return &s }

const notExists = "attribute_not_exists(PK)"

// timeLayout is fixed-width so formatted UTC instants sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTime renders t in the stored timestamp format.
func FormatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

// ParseTime parses a stored timestamp.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t.UTC(), nil
}

type queryOpts struct {
	pk         string
	descending bool
	filter     *expression.ConditionBuilder
	limit      int
}

// queryPartition pages through one partition, calling each for every item until
// limit items were visited (limit <= 0 means all).
func (r *Repo) queryPartition(ctx context.Context, q queryOpts, each func(map[string]types.AttributeValue) error) error {
	b := expression.NewBuilder().WithKeyCondition(expression.Key("PK").Equal(expression.Value(q.pk)))
	if q.filter != nil {
		b = b.WithFilter(*q.filter)
	}
	expr, err := b.Build()
	if err != nil {
		return fmt.Errorf("build query expression: %w", err)
	}
	input := &dynamodb.QueryInput{
		TableName:                 &r.Table,
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(!q.descending),
	}
	// Without a filter the page size can be bounded by the limit directly.
	if q.filter == nil && q.limit > 0 {
		input.Limit = aws.Int32(int32(q.limit))
	}

	seen := 0
	p := dynamodb.NewQueryPaginator(r.DB, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("query %s: %w", q.pk, err)
		}
		for _, item := range page.Items {
			if err := each(item); err != nil {
				return err
			}
			seen++
			if q.limit > 0 && seen >= q.limit {
				return nil
			}
		}
	}
	return nil
}
