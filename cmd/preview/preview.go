package preview

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/hangxie/parquet-preview/dataset"
	pio "github.com/hangxie/parquet-preview/io"
)

var (
	// ErrFileNotFound is returned when the object does not exist
	ErrFileNotFound = pio.ErrNotFound
	// ErrNotAFile is returned when a local path is a directory or special file
	ErrNotAFile = pio.ErrNotAFile
)

// ReadError wraps any failure to open, decode, or render a Parquet file.
type ReadError struct {
	URI string
	Err error
}

func (e *ReadError) Error() string {
	return "Error reading parquet file: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Cmd is a kong command for preview
type Cmd struct {
	Rows         int    `short:"n" help:"Number of sample rows to show." default:"10"`
	MaxColumns   int    `help:"Max number of columns in sample data." default:"8"`
	CellWidth    int    `help:"Max width of a sample cell, longer values are truncated." default:"50"`
	ReadPageSize int    `help:"Page size to read from Parquet." default:"1000"`
	Debug        bool   `help:"Output debug information to stderr." default:"false"`
	URI          string `arg:"" predictor:"file" help:"URI of Parquet file."`
	pio.ReadOption
}

// Run does actual preview job
func (c Cmd) Run() error {
	if err := c.validate(); err != nil {
		return err
	}
	location, err := pio.ParseLocation(c.URI)
	if err != nil {
		return err
	}

	logger := newLogger(c.Debug)
	ctx := context.Background()
	file, err := pio.OpenParquetFile(ctx, location, c.ReadOption)
	if errors.Is(err, ErrFileNotFound) || errors.Is(err, ErrNotAFile) {
		return err
	}
	if err != nil {
		return &ReadError{URI: c.URI, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()
	logger.WithFields(logrus.Fields{"uri": c.URI, "size": file.Size}).Debug("file opened")

	report, err := c.buildReport(ctx, location, file, logger)
	if err != nil {
		return &ReadError{URI: c.URI, Err: err}
	}

	fmt.Print(report)
	return nil
}

func (c Cmd) validate() error {
	if c.Rows < 0 {
		return fmt.Errorf("invalid rows %d, needs to be greater than or equal to 0", c.Rows)
	}
	if c.MaxColumns < 1 {
		return fmt.Errorf("invalid max columns %d, needs to be at least 1", c.MaxColumns)
	}
	if c.CellWidth < 4 {
		return fmt.Errorf("invalid cell width %d, needs to be at least 4", c.CellWidth)
	}
	if c.ReadPageSize < 1 {
		return fmt.Errorf("invalid read page size %d, needs to be at least 1", c.ReadPageSize)
	}
	return nil
}

func (c Cmd) buildReport(ctx context.Context, location pio.Location, file *pio.ParquetFile, logger logrus.FieldLogger) (string, error) {
	data, err := dataset.Load(ctx, file, dataset.LoadOption{
		PageSize: c.ReadPageSize,
		Logger:   logger,
	})
	if err != nil {
		return "", err
	}

	r := report{
		Name:       location.BaseName(),
		Size:       file.Size,
		Data:       data,
		Rows:       c.Rows,
		MaxColumns: c.MaxColumns,
		CellWidth:  c.CellWidth,
	}
	return r.String(), nil
}

func newLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	}
	logger.Level = logrus.WarnLevel
	if debug {
		logger.Level = logrus.DebugLevel
	}
	return logger
}
