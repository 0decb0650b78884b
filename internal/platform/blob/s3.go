package blob

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store uploads payloads to an S3 bucket via the upload manager.
type S3Store struct {
	uploader *manager.Uploader
	bucket   string
}

// NewS3Store builds an S3-backed store. Region overrides the default chain
// when non-empty; explicit env credentials take precedence when present.
func NewS3Store(ctx context.Context, bucket, region string) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("platform/blob: load aws config: %w", err)
	}
	if region != "" {
		awsCfg.Region = region
	}
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		awsCfg.Credentials = awscreds.NewStaticCredentialsProvider(key, os.Getenv("AWS_SECRET_ACCESS_KEY"), "")
	}
	client := s3.NewFromConfig(awsCfg)
	return &S3Store{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}, nil
}

// Put streams the payload to S3 and returns the object key.
func (s *S3Store) Put(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("platform/blob: upload %s: %w", key, err)
	}
	return key, nil
}

var _ Store = (*S3Store)(nil)
