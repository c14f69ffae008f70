package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// FileName is the CSV file written in the telemetry directory.
const FileName = "rounds.csv"

// Writer appends round records to rounds.csv. It is safe for concurrent
// use by several sessions.
type Writer struct {
	mu            sync.Mutex
	path          string
	file          *os.File
	headerWritten bool
}

// NewWriter opens the rounds file in dir, creating the directory.
// Returns nil if dir is empty (telemetry disabled). An existing file is
// appended to without repeating the header.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	info, statErr := os.Stat(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", FileName, err)
	}

	return &Writer{
		path:          path,
		file:          f,
		headerWritten: statErr == nil && info.Size() > 0,
	}, nil
}

// Write appends one record.
func (w *Writer) Write(rec RoundRecord) error {
	if w == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	records := []RoundRecord{rec}

	if !w.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		w.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Path returns the CSV file path.
func (w *Writer) Path() string {
	if w == nil {
		return ""
	}
	return w.path
}

// Close closes the file.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	return w.file.Close()
}

// ReadFile loads every record from a rounds file.
func ReadFile(path string) ([]RoundRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []RoundRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return records, nil
}
