package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// parseObjectURI splits "scheme://bucket/key" into bucket and key.
func parseObjectURI(location, scheme string) (string, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("parse %s uri %q: %w", scheme, location, err)
	}
	if u.Scheme != scheme {
		return "", "", fmt.Errorf("parse %s uri %q: unexpected scheme %q", scheme, location, u.Scheme)
	}

	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("parse %s uri %q: want %s://bucket/key", scheme, location, scheme)
	}
	return bucket, key, nil
}

// GetObjectAPI is the subset of *s3.Client used by S3Source.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source streams vehicle position objects from s3://bucket/key.
type S3Source struct {
	Client GetObjectAPI
}

// NewS3Source builds a client from the default AWS credential chain.
func NewS3Source(ctx context.Context, region string) (*S3Source, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("new s3 source: load aws config: %w", err)
	}
	return &S3Source{Client: s3.NewFromConfig(cfg)}, nil
}

func (s *S3Source) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if s.Client == nil {
		return nil, errors.New("open s3 source: client is nil")
	}

	bucket, key, err := parseObjectURI(location, "s3")
	if err != nil {
		return nil, fmt.Errorf("open s3 source: %w", err)
	}

	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("open s3 source bucket=%q key=%q: %w", bucket, key, err)
	}
	return out.Body, nil
}

// MinioSource streams vehicle position objects from minio://bucket/key
// on any S3-compatible endpoint.
type MinioSource struct {
	Client *minio.Client
}

func NewMinioSource(endpoint, accessKey, secretKey string, useSSL bool) (*MinioSource, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("new minio source %q: %w", endpoint, err)
	}
	return &MinioSource{Client: client}, nil
}

func (s *MinioSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if s.Client == nil {
		return nil, errors.New("open minio source: client is nil")
	}

	bucket, key, err := parseObjectURI(location, "minio")
	if err != nil {
		return nil, fmt.Errorf("open minio source: %w", err)
	}

	obj, err := s.Client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("open minio source bucket=%q key=%q: %w", bucket, key, err)
	}

	// GetObject is lazy; Stat surfaces a missing object before decoding starts.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("open minio source bucket=%q key=%q: %w", bucket, key, err)
	}
	return obj, nil
}
