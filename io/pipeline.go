package io

import (
	"context"
	"fmt"

	"github.com/hangxie/parquet-go/v2/reader"
	"golang.org/x/sync/errgroup"
)

// RowSink consumes rows produced by PipelineReader, it is always called from
// a single goroutine.
type RowSink func(row any) error

// PipelineSink reads rows from rowChan and hands them to sink.
func PipelineSink(ctx context.Context, rowChan chan any, sink RowSink, source string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case row, more := <-rowChan:
			if !more {
				return nil
			}
			if err := sink(row); err != nil {
				return fmt.Errorf("failed to collect row from [%s]: %w", source, err)
			}
		}
	}
}

// PipelineReader reads rows from fileReader in batches, optionally transforms each row,
// and sends them to rowChan. Pass nil for transform to skip transformation.
func PipelineReader(ctx context.Context, fileReader *reader.ParquetReader, rowChan chan any, source string, pageSize int, transform func(any) (any, error)) error {
	for {
		rows, err := fileReader.ReadByNumber(pageSize)
		if err != nil {
			return fmt.Errorf("failed to read from [%s]: %w", source, err)
		}
		if len(rows) == 0 {
			return nil
		}
		for _, row := range rows {
			if transform != nil {
				row, err = transform(row)
				if err != nil {
					return fmt.Errorf("failed to convert row: %w", err)
				}
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rowChan <- row:
			}
		}
	}
}

// CollectRows runs PipelineReader and PipelineSink in parallel. If either side fails
// the shared context is cancelled so the other side exits promptly.
func CollectRows(ctx context.Context, fileReader *reader.ParquetReader, source string, pageSize int, transform func(any) (any, error), sink RowSink) error {
	if pageSize < 1 {
		return fmt.Errorf("invalid read page size %d, needs to be at least 1", pageSize)
	}

	g, gctx := errgroup.WithContext(ctx)
	rowChan := make(chan any, pageSize)

	g.Go(func() error {
		return PipelineSink(gctx, rowChan, sink, source)
	})

	g.Go(func() error {
		defer close(rowChan)
		return PipelineReader(gctx, fileReader, rowChan, source, pageSize, transform)
	})

	return g.Wait()
}
