package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nursejordan/i-notarize-online.com/internal/models"
)

// catalogCap bounds unfiltered catalog reads.
const catalogCap = 100

func activeFilter() *expression.ConditionBuilder {
	f := expression.Name("active").Equal(expression.Value(true))
	return &f
}

// ListActiveServices returns active services in seed order.
func (r *Repo) ListActiveServices(ctx context.Context) ([]models.Service, error) {
	out := make([]models.Service, 0)
	err := r.queryPartition(ctx, queryOpts{pk: pkService, filter: activeFilter(), limit: catalogCap}, func(av map[string]types.AttributeValue) error {
		var it serviceItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return fmt.Errorf("unmarshal service: %w", err)
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

// ListActiveAdditionalServices returns active add-on prices in seed order.
func (r *Repo) ListActiveAdditionalServices(ctx context.Context) ([]models.AdditionalService, error) {
	out := make([]models.AdditionalService, 0)
	err := r.queryPartition(ctx, queryOpts{pk: pkAddon, filter: activeFilter(), limit: catalogCap}, func(av map[string]types.AttributeValue) error {
		var it addonItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return fmt.Errorf("unmarshal additional service: %w", err)
		}
		out = append(out, it.toModel())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListPublishedTestimonials returns active and verified testimonials, newest first.
func (r *Repo) ListPublishedTestimonials(ctx context.Context, limit int) ([]models.Testimonial, error) {
	f := expression.Name("active").Equal(expression.Value(true)).
		And(expression.Name("verified").Equal(expression.Value(true)))
	out := make([]models.Testimonial, 0, limit)
	err := r.queryPartition(ctx, queryOpts{pk: pkTestimonial, descending: true, filter: &f, limit: limit}, func(av map[string]types.AttributeValue) error {
		var it testimonialItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return fmt.Errorf("unmarshal testimonial: %w", err)
		}
		tm, err := it.toModel()
		if err != nil {
			return err
		}
		out = append(out, tm)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
