package filestore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 stores files as public-readable objects under a per-order key prefix.
type S3 struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3 creates an S3-backed store using the default AWS credential chain.
func NewS3(ctx context.Context, bucket, region string) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// EnsureFolder is a lookup-free no-op: S3 key prefixes need no creation, so
// the prefix itself is the folder handle.
func (s *S3) EnsureFolder(_ context.Context, name string) (string, error) {
	return name, nil
}

// Save uploads the file under the folder prefix with public-read access.
func (s *S3) Save(ctx context.Context, folder, name, mimeType string, data []byte) (File, error) {
	key := folder + "/" + name
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return File{}, fmt.Errorf("put %s: %w", key, err)
	}
	link := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s/%s",
		s.bucket, s.region, url.PathEscape(folder), url.PathEscape(name))
	return File{Link: link, Thumbnail: link}, nil
}
