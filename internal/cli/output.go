package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agbru/setpart/internal/config"
	"github.com/agbru/setpart/internal/partition"
)

// PartitionWriter streams partitions one per line, either in brace notation
// ({{1,3},{2}}) or as JSON arrays ([[1,3],[2]]). Output is buffered; call
// Flush when done.
type PartitionWriter struct {
	w      *bufio.Writer
	format string
	buf    []byte
	lines  uint64
}

// NewPartitionWriter wraps w. format is config.FormatBraces or
// config.FormatJSON; anything else falls back to braces.
func NewPartitionWriter(w io.Writer, format string) *PartitionWriter {
	return &PartitionWriter{w: bufio.NewWriterSize(w, 64*1024), format: format}
}

// Write renders p as one line.
func (pw *PartitionWriter) Write(p partition.Partition) error {
	if pw.format == config.FormatJSON {
		pw.buf = p.AppendJSON(pw.buf[:0])
	} else {
		pw.buf = p.AppendBraces(pw.buf[:0])
	}
	pw.buf = append(pw.buf, '\n')
	if _, err := pw.w.Write(pw.buf); err != nil {
		return fmt.Errorf("failed to write partition: %w", err)
	}
	pw.lines++
	return nil
}

// Lines returns the number of partitions written.
func (pw *PartitionWriter) Lines() uint64 { return pw.lines }

// Flush writes any buffered output.
func (pw *PartitionWriter) Flush() error {
	if err := pw.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// OpenOutput creates the file at path, and its parent directories, for
// streamed partitions.
//
// Returns:
//   - *os.File: The created file. The caller closes it.
//   - error: An error if the directory or file cannot be created.
func OpenOutput(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}
