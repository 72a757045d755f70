package io

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hangxie/parquet-go/v2/source"
	"github.com/hangxie/parquet-go/v2/source/s3v2"
)

const s3RegionHeader = "X-Amz-Bucket-Region"

var s3Endpoint = "https://%s.s3.amazonaws.com"

type s3Backend struct {
	location Location
	client   *s3.Client
	version  *string
}

func newS3Backend(ctx context.Context, location Location, option ReadOption) (backend, error) {
	if location.Bucket() == "" || location.Key() == "" || strings.HasSuffix(location.Key(), "/") {
		return nil, fmt.Errorf("S3 URI format: s3://bucket/path/to/object")
	}

	region, err := s3BucketRegion(ctx, location, option.HTTPIgnoreTLSError)
	if err != nil {
		return nil, err
	}

	loadOptions := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if option.Anonymous {
		loadOptions = append(loadOptions, config.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}
	if option.HTTPIgnoreTLSError {
		loadOptions = append(loadOptions, config.WithHTTPClient(newHTTPClient(true)))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	b := s3Backend{
		location: location,
		client:   s3.NewFromConfig(cfg),
	}
	if option.ObjectVersion != "" {
		b.version = aws.String(option.ObjectVersion)
	}
	return b, nil
}

// s3BucketRegion reads the bucket region from the response header of the
// bucket endpoint, S3 sends it even when the request is denied.
func s3BucketRegion(ctx context.Context, location Location, ignoreTLSError bool) (string, error) {
	bucket := location.Bucket()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fmt.Sprintf(s3Endpoint, bucket), nil)
	if err != nil {
		return "", err
	}
	// the wildcard certificate does not cover bucket names with dot
	resp, err := newHTTPClient(ignoreTLSError && strings.Contains(bucket, ".")).Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to get region of S3 bucket [%s]: %w", bucket, err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, location.URI)
	}
	region := resp.Header.Get(s3RegionHeader)
	if region == "" {
		return "", fmt.Errorf("unable to get region of S3 bucket [%s], HTTP status %d", bucket, resp.StatusCode)
	}
	return region, nil
}

func (b s3Backend) Stat(ctx context.Context) (int64, error) {
	out, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket:    aws.String(b.location.Bucket()),
		Key:       aws.String(b.location.Key()),
		VersionId: b.version,
	})
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, b.location.URI)
	}
	if err != nil {
		return 0, fmt.Errorf("unable to get attributes of [%s]: %w", b.location.URI, err)
	}
	return aws.ToInt64(out.ContentLength), nil
}

func (b s3Backend) Open(ctx context.Context) (source.ParquetFileReader, error) {
	return s3v2.NewS3FileReaderWithClient(ctx, b.client, b.location.Bucket(), b.location.Key(), b.version)
}
