// Package s3io reads JSON documents from S3.
package s3io

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MaxObjectSize bounds how much of an object is read.
const MaxObjectSize = 1 << 20

// Getter defines the interface for fetching S3 objects.
type Getter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Object is a fetched document and its metadata.
type Object struct {
	Body        []byte
	ETag        string
	ContentType string
}

// Read fetches bucket/key, failing when the object exceeds MaxObjectSize.
func Read(ctx context.Context, g Getter, bucket, key string) (*Object, error) {
	out, err := g.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(io.LimitReader(out.Body, MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	if len(body) > MaxObjectSize {
		return nil, fmt.Errorf("s3://%s/%s exceeds %d bytes", bucket, key, MaxObjectSize)
	}

	obj := &Object{Body: body}
	if out.ETag != nil {
		obj.ETag = strings.Trim(*out.ETag, "\"")
	}
	if out.ContentType != nil {
		obj.ContentType = strings.ToLower(*out.ContentType)
	}
	return obj, nil
}

// ReadURI is Read for an s3://bucket/key URI.
func ReadURI(ctx context.Context, g Getter, uri string) (*Object, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	return Read(ctx, g, bucket, key)
}
