package io

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hangxie/parquet-go/v2/source"
	pqhttp "github.com/hangxie/parquet-go/v2/source/http"
)

type httpBackend struct {
	location Location
	option   ReadOption
}

func newHTTPBackend(_ context.Context, location Location, option ReadOption) (backend, error) {
	return httpBackend{location: location, option: option}, nil
}

// Stat sends a HEAD request, the server needs to report Content-Length.
func (b httpBackend) Stat(ctx context.Context) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, b.location.URI, nil)
	if err != nil {
		return 0, err
	}
	for k, v := range b.option.HTTPExtraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := newHTTPClient(b.option.HTTPIgnoreTLSError).Do(req)
	if err != nil {
		return 0, fmt.Errorf("unable to access [%s]: %w", b.location.URI, err)
	}
	_ = resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, fmt.Errorf("%w: %s", ErrNotFound, b.location.URI)
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("unable to access [%s]: HTTP status %d", b.location.URI, resp.StatusCode)
	case resp.ContentLength < 0:
		return 0, fmt.Errorf("[%s] does not report its size", b.location.URI)
	}
	return resp.ContentLength, nil
}

func (b httpBackend) Open(context.Context) (source.ParquetFileReader, error) {
	return pqhttp.NewHttpReader(b.location.URI, b.option.HTTPMultipleConnection, b.option.HTTPIgnoreTLSError, b.option.HTTPExtraHeaders)
}
