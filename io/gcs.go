package io

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cloud.google.com/go/storage"
	"github.com/hangxie/parquet-go/v2/source"
	"github.com/hangxie/parquet-go/v2/source/gcs"
	"google.golang.org/api/option"
)

type gcsBackend struct {
	location   Location
	client     *storage.Client
	generation int64
}

func newGCSBackend(ctx context.Context, location Location, readOption ReadOption) (backend, error) {
	if location.Bucket() == "" || location.Key() == "" {
		return nil, fmt.Errorf("GCS URI format: gs://bucket/path/to/object")
	}

	// -1 is the latest generation
	generation := int64(-1)
	if readOption.ObjectVersion != "" {
		var err error
		generation, err = strconv.ParseInt(readOption.ObjectVersion, 10, 64)
		if err != nil || generation < 0 {
			return nil, fmt.Errorf("invalid GCS generation [%s]", readOption.ObjectVersion)
		}
	}

	var clientOptions []option.ClientOption
	if readOption.Anonymous {
		clientOptions = append(clientOptions, option.WithoutAuthentication())
	}
	client, err := storage.NewClient(ctx, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return gcsBackend{location: location, client: client, generation: generation}, nil
}

func (b gcsBackend) Stat(ctx context.Context) (int64, error) {
	object := b.client.Bucket(b.location.Bucket()).Object(b.location.Key())
	if b.generation >= 0 {
		object = object.Generation(b.generation)
	}
	attrs, err := object.Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, b.location.URI)
	}
	if err != nil {
		return 0, fmt.Errorf("unable to get attributes of [%s]: %w", b.location.URI, err)
	}
	return attrs.Size, nil
}

func (b gcsBackend) Open(ctx context.Context) (source.ParquetFileReader, error) {
	return gcs.NewGcsFileReaderWithClient(ctx, b.client, "", b.location.Bucket(), b.location.Key(), b.generation)
}
