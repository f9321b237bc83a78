package objectstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/trade-radar/pkg/loader"
	"github.com/de-tools/trade-radar/pkg/models/domain"
	"github.com/rs/zerolog"
)

const DefaultRegion = "us-east-1"

// ObjectGetter is the part of the S3 client the source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Source struct {
	client ObjectGetter
}

func NewSource(client ObjectGetter) *Source {
	return &Source{client: client}
}

// NewSourceFromProfile builds an S3 client from the shared AWS config.
func NewSourceFromProfile(ctx context.Context, profile, region string) (*Source, error) {
	if region == "" {
		region = DefaultRegion
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithDefaultRegion(region)}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewSource(s3.NewFromConfig(cfg)), nil
}

// Load downloads s3://bucket/key and parses it by the key's extension.
func (s *Source) Load(ctx context.Context, bucket, key string) ([]domain.TransactionRecord, error) {
	format, err := loader.FormatFromName(key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	zerolog.Ctx(ctx).Info().
		Str("bucket", bucket).
		Str("key", key).
		Msg("downloading dataset from S3")

	records, err := loader.Read(ctx, out.Body, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s3://%s/%s: %w", bucket, key, err)
	}
	return records, nil
}

// URI formats a bucket/key pair as the dataset source label.
func URI(bucket, key string) string {
	return fmt.Sprintf("s3://%s/%s", bucket, key)
}

