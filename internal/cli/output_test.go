package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/agbru/setpart/internal/config"
	"github.com/agbru/setpart/internal/partition"
)

func TestPartitionWriter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		format   string
		expected string
	}{
		{config.FormatBraces, "{{1},{2}}\n{{1,2}}\n"},
		{config.FormatJSON, "[[1],[2]]\n[[1,2]]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			pw := NewPartitionWriter(&buf, tt.format)
			for p := range partition.All(2) {
				if err := pw.Write(p); err != nil {
					t.Fatalf("Write: %v", err)
				}
			}
			if buf.Len() != 0 {
				t.Error("output should stay buffered until Flush")
			}
			if err := pw.Flush(); err != nil {
				t.Fatalf("Flush: %v", err)
			}
			if buf.String() != tt.expected {
				t.Errorf("got %q, want %q", buf.String(), tt.expected)
			}
			if pw.Lines() != 2 {
				t.Errorf("Lines() = %d, want 2", pw.Lines())
			}
		})
	}
}

func TestOpenOutput(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.txt")
	file, err := OpenOutput(path)
	if err != nil {
		t.Fatalf("OpenOutput: %v", err)
	}
	pw := NewPartitionWriter(file, config.FormatBraces)
	if err := pw.Write(partition.Partition{{1, 3}, {2}}); err != nil {
		t.Fatal(err)
	}
	if err := pw.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{{1,3},{2}}\n" {
		t.Errorf("file content = %q", data)
	}
}
