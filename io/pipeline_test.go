package io

import (
	"context"
	"fmt"
	"testing"

	"github.com/hangxie/parquet-go/v2/marshal"
	"github.com/hangxie/parquet-go/v2/reader"
	"github.com/stretchr/testify/require"
)

func newTestReader(t *testing.T) *reader.ParquetReader {
	t.Helper()
	pf, err := openURI(t, writeShoes(t), ReadOption{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pf.Close() })
	return pf.Reader
}

func TestPipelineSink(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rowChan := make(chan any, 2)
		rowChan <- 1
		rowChan <- 2
		close(rowChan)

		var collected []any
		err := PipelineSink(context.Background(), rowChan, func(row any) error {
			collected = append(collected, row)
			return nil
		}, "test-source")
		require.NoError(t, err)
		require.Equal(t, []any{1, 2}, collected)
	})

	t.Run("context-cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := PipelineSink(ctx, make(chan any), func(any) error { return nil }, "test-source")
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("sink-error", func(t *testing.T) {
		rowChan := make(chan any, 1)
		rowChan <- 1
		close(rowChan)

		err := PipelineSink(context.Background(), rowChan, func(any) error {
			return fmt.Errorf("sink failed")
		}, "test-source")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to collect row from [test-source]: sink failed")
	})
}

func TestPipelineReader(t *testing.T) {
	t.Run("success-no-transform", func(t *testing.T) {
		rowChan := make(chan any, 100)
		err := PipelineReader(context.Background(), newTestReader(t), rowChan, "good.parquet", 2, nil)
		require.NoError(t, err)
		close(rowChan)

		var rows []any
		for row := range rowChan {
			rows = append(rows, row)
		}
		require.Len(t, rows, 3)
	})

	t.Run("transform-error", func(t *testing.T) {
		rowChan := make(chan any, 100)
		err := PipelineReader(context.Background(), newTestReader(t), rowChan, "good.parquet", 10, func(any) (any, error) {
			return nil, fmt.Errorf("transform failed")
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to convert row")
	})

	t.Run("context-cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// unbuffered channel so the send blocks
		err := PipelineReader(ctx, newTestReader(t), make(chan any), "good.parquet", 10, nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCollectRows(t *testing.T) {
	t.Run("invalid-page-size", func(t *testing.T) {
		err := CollectRows(context.Background(), nil, "good.parquet", 0, nil, nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid read page size 0")
	})

	t.Run("json-friendly-rows", func(t *testing.T) {
		pr := newTestReader(t)
		var brands []any
		err := CollectRows(context.Background(), pr, "good.parquet", 1, func(row any) (any, error) {
			return marshal.ConvertToJSONFriendly(row, pr.SchemaHandler)
		}, func(row any) error {
			brands = append(brands, row.(map[string]any)["shoe_brand"])
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []any{"nike", "fila", "steph_curry"}, brands)
	})

	t.Run("sink-failure", func(t *testing.T) {
		err := CollectRows(context.Background(), newTestReader(t), "good.parquet", 1, nil, func(any) error {
			return fmt.Errorf("injected sink failure")
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "injected sink failure")
	})

	t.Run("reader-failure", func(t *testing.T) {
		err := CollectRows(context.Background(), newTestReader(t), "good.parquet", 1, func(any) (any, error) {
			return nil, fmt.Errorf("injected reader failure")
		}, func(any) error { return nil })
		require.Error(t, err)
		require.Contains(t, err.Error(), "injected reader failure")
	})
}
