// Package awsutil provides utilities for loading AWS configuration.
package awsutil

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Load loads the AWS configuration, routing every service to endpoint when it is set
// (e.g. http://localhost:8000 for DynamoDB Local, http://localstack:4566).
func Load(ctx context.Context, region, endpoint string) (aws.Config, error) {
	if endpoint == "" {
		return awsCfg.LoadDefaultConfig(ctx, awsCfg.WithRegion(region))
	}
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, r string, _ ...any) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               endpoint,
			HostnameImmutable: true,
			PartitionID:       "aws",
			SigningRegion:     region,
		}, nil
	})
	opts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(region),
		awsCfg.WithEndpointResolverWithOptions(resolver),
	}
	// Local emulators accept any credentials; don't require a profile.
	if os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}
	return awsCfg.LoadDefaultConfig(ctx, opts...)
}
