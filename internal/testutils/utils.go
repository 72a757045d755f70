package testutils

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hangxie/parquet-go/v2/parquet"
	"github.com/hangxie/parquet-go/v2/source/local"
	"github.com/hangxie/parquet-go/v2/writer"
	"github.com/stretchr/testify/require"
)

var stdCaptureMutex sync.Mutex

// CaptureStdoutStderr - thread-safe version using mutex
func CaptureStdoutStderr(f func()) (string, string) {
	stdCaptureMutex.Lock()
	defer stdCaptureMutex.Unlock()

	savedStdout := os.Stdout
	savedStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	// drain both pipes while f runs, a report larger than the pipe buffer
	// would block otherwise
	var wg sync.WaitGroup
	var stdout, stderr []byte
	wg.Add(2)
	go func() {
		defer wg.Done()
		stdout, _ = io.ReadAll(rOut)
	}()
	go func() {
		defer wg.Done()
		stderr, _ = io.ReadAll(rErr)
	}()

	f()
	_ = wOut.Close()
	_ = wErr.Close()
	wg.Wait()
	_ = rOut.Close()
	_ = rErr.Close()

	os.Stdout = savedStdout
	os.Stderr = savedStderr

	return string(stdout), string(stderr)
}

// WriteParquet writes rows to a new Parquet file under a temporary directory
// of t, the schema comes from parquet tags of T.
func WriteParquet[T any](t testing.TB, name string, rows []T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	fw, err := local.NewLocalFileWriter(path)
	require.NoError(t, err)

	pw, err := writer.NewParquetWriter(fw, new(T), 4)
	require.NoError(t, err)

	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, row := range rows {
		require.NoError(t, pw.Write(row))
	}
	require.NoError(t, pw.WriteStop())
	require.NoError(t, fw.Close())

	return path
}

// WriteFile writes raw bytes to a temporary file, handy for files that are
// not Parquet at all.
func WriteFile(t testing.TB, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// ToPtr returns a pointer to a copy of val.
func ToPtr[T any](val T) *T {
	return &val
}
