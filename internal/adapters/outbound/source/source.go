package source

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// maxReportSize caps how much of a report is read, after decompression.
const maxReportSize = 256 << 20

var gzipMagic = []byte{0x1f, 0x8b}

// FileSource implements domain.ReportSource for files and stdin.
// Gzip-compressed input is detected by its magic bytes and decompressed.
type FileSource struct {
	stdin io.Reader
}

// New creates a FileSource that reads "-" from os.Stdin.
func New() *FileSource {
	return &FileSource{stdin: os.Stdin}
}

// NewWithStdin creates a FileSource that reads "-" from r.
func NewWithStdin(r io.Reader) *FileSource {
	return &FileSource{stdin: r}
}

func (s *FileSource) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if path == Stdin {
		data, err := readAll(s.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := readAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func readAll(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(gzipMagic))

	var src io.Reader = br
	if bytes.Equal(head, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	data, err := io.ReadAll(io.LimitReader(src, maxReportSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxReportSize {
		return nil, fmt.Errorf("report exceeds %d bytes", maxReportSize)
	}
	return data, nil
}
