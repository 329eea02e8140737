package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nursejordan/i-notarize-online.com/internal/apperrors"
	"github.com/nursejordan/i-notarize-online.com/internal/models"
)

const conditionalCheckFailed = "ConditionalCheckFailed"

// CreateSubmission writes the submission and its reference marker in one transaction.
func (r *Repo) CreateSubmission(ctx context.Context, s models.ContactSubmission) error {
	item, err := attributevalue.MarshalMap(toSubmissionItem(s))
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	pk, sk := ReferenceKeys(s.Reference)
	ref, err := attributevalue.MarshalMap(referenceItem{
		PK: pk, SK: sk,
		Type:         typeReference,
		SubmissionID: s.ID,
		CreatedAt:    FormatTime(s.CreatedAt),
	})
	if err != nil {
		return fmt.Errorf("marshal reference: %w", err)
	}

	_, err = r.DB.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{TableName: &r.Table, Item: item, ConditionExpression: awsStr(notExists)}},
			{Put: &types.Put{TableName: &r.Table, Item: ref, ConditionExpression: awsStr(notExists)}},
		},
	})
	if err == nil {
		return nil
	}
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) && len(tce.CancellationReasons) > 1 &&
		aws.ToString(tce.CancellationReasons[1].Code) == conditionalCheckFailed {
		return apperrors.ErrReferenceTaken
	}
	return fmt.Errorf("put submission %s: %w", s.ID, err)
}

// ListSubmissions returns up to limit submissions, newest first.
func (r *Repo) ListSubmissions(ctx context.Context, limit int) ([]models.ContactSubmission, error) {
	out := make([]models.ContactSubmission, 0)
	err := r.queryPartition(ctx, queryOpts{pk: pkSubmission, descending: true, limit: limit}, func(av map[string]types.AttributeValue) error {
		var it submissionItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return fmt.Errorf("unmarshal submission: %w", err)
		}
		s, err := it.toModel()
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
