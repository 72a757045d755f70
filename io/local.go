package io

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hangxie/parquet-go/v2/source"
	"github.com/hangxie/parquet-go/v2/source/local"
)

type localBackend struct {
	location Location
}

func newLocalBackend(_ context.Context, location Location, _ ReadOption) (backend, error) {
	return localBackend{location: location}, nil
}

func (b localBackend) Stat(context.Context) (int64, error) {
	info, err := os.Stat(b.location.LocalPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return 0, fmt.Errorf("%w: %s", ErrNotFound, b.location.URI)
	case err != nil:
		return 0, fmt.Errorf("unable to access [%s]: %w", b.location.URI, err)
	case !info.Mode().IsRegular():
		return 0, fmt.Errorf("%w: %s", ErrNotAFile, b.location.URI)
	}
	return info.Size(), nil
}

func (b localBackend) Open(context.Context) (source.ParquetFileReader, error) {
	return local.NewLocalFileReader(b.location.LocalPath())
}
