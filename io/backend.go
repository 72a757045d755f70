package io

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/hangxie/parquet-go/v2/reader"
	"github.com/hangxie/parquet-go/v2/source"
)

// User facing texts, they are printed as they are.
var (
	ErrNotFound = errors.New("File not found") //nolint:staticcheck
	ErrNotAFile = errors.New("Not a file")     //nolint:staticcheck
)

// "PAR1" + footer length + "PAR1"
const minParquetSize = 12

// ReadOption includes options for read operation
type ReadOption struct {
	Anonymous              bool              `help:"(S3, GCS, and Azure only) object is publicly accessible." default:"false"`
	HTTPExtraHeaders       map[string]string `mapsep:"," help:"(HTTP URI only) extra HTTP headers." default:""`
	HTTPIgnoreTLSError     bool              `help:"(HTTP and S3 URI only) ignore TLS error." default:"false"`
	HTTPMultipleConnection bool              `help:"(HTTP URI only) use multiple HTTP connection." default:"false"`
	ObjectVersion          string            `help:"(S3, GCS, and Azure only) object version." default:""`
}

// backend measures and opens one object. Stat reports ErrNotFound and
// ErrNotAFile so callers can tell a bad location from a bad file.
type backend interface {
	Stat(ctx context.Context) (int64, error)
	Open(ctx context.Context) (source.ParquetFileReader, error)
}

type backendFactory func(ctx context.Context, location Location, option ReadOption) (backend, error)

var backends = map[string]backendFactory{
	schemeLocal:              newLocalBackend,
	schemeAWSS3:              newS3Backend,
	schemeGoogleCloudStorage: newGCSBackend,
	schemeAzureStorageBlob:   newAzureBlobBackend,
	schemeHTTP:               newHTTPBackend,
	schemeHTTPS:              newHTTPBackend,
}

// ParquetFile is an opened Parquet object together with the size of its raw
// bytes.
type ParquetFile struct {
	URI    string
	Size   int64
	Reader *reader.ParquetReader
}

// Close releases the underlying source.
func (f *ParquetFile) Close() error {
	if f == nil || f.Reader == nil || f.Reader.PFile == nil {
		return nil
	}
	return f.Reader.PFile.Close()
}

// Stat returns size of the object at location.
func Stat(ctx context.Context, location Location, option ReadOption) (int64, error) {
	b, err := newBackend(ctx, location, option)
	if err != nil {
		return 0, err
	}
	return b.Stat(ctx)
}

// OpenParquetFile checks the object at location, then opens it and parses
// its footer.
func OpenParquetFile(ctx context.Context, location Location, option ReadOption) (*ParquetFile, error) {
	b, err := newBackend(ctx, location, option)
	if err != nil {
		return nil, err
	}

	size, err := b.Stat(ctx)
	if err != nil {
		return nil, err
	}
	if size < minParquetSize {
		return nil, fmt.Errorf("[%s] has %d bytes, too small to be a Parquet file", location.URI, size)
	}

	fileReader, err := b.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to open [%s]: %w", location.URI, err)
	}
	pr, err := reader.NewParquetReader(fileReader, nil, int64(runtime.NumCPU()))
	if err != nil {
		_ = fileReader.Close()
		return nil, err
	}

	return &ParquetFile{
		URI:    location.URI,
		Size:   size,
		Reader: pr,
	}, nil
}

func newBackend(ctx context.Context, location Location, option ReadOption) (backend, error) {
	factory, found := backends[location.Scheme()]
	if !found {
		return nil, fmt.Errorf("unknown location scheme [%s]", location.Scheme())
	}
	return factory(ctx, location, option)
}

func newHTTPClient(ignoreTLSError bool) *http.Client {
	if !ignoreTLSError {
		return http.DefaultClient
	}
	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
}
