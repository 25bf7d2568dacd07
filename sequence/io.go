// SPDX-License-Identifier: MIT

package sequence

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrMultipleRecords indicates FASTA input with more than one '>' header.
	ErrMultipleRecords = errors.New("sequence: input holds more than one record")

	// ErrBadLength indicates a negative length for Generate.
	ErrBadLength = errors.New("sequence: length must be non-negative")

	// ErrEmptyAlphabet indicates Generate was configured with no symbols.
	ErrEmptyAlphabet = errors.New("sequence: alphabet is empty")
)

// maxLine allows very long single-line sequences (64 MiB).
const maxLine = 64 * 1024 * 1024

// ReadOption tunes Read.
type ReadOption func(*readConfig)

type readConfig struct {
	upper bool
}

// WithUppercase folds ASCII letters to upper case while reading.
func WithUppercase() ReadOption {
	return func(c *readConfig) { c.upper = true }
}

// Read parses one sequence from r.
//
// Input is either raw symbols (possibly wrapped over several lines) or a
// single FASTA record whose header line ">name ..." supplies the name. Line
// breaks, spaces, tabs and carriage returns are dropped. Empty input yields
// an empty sequence.
//
// Errors:
//   - ErrMultipleRecords on a second FASTA header.
//   - any read error from r.
func Read(r io.Reader, opts ...ReadOption) (Sequence, error) {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		name    string
		headers int
		data    = make([]byte, 0, 1<<12)
	)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) > 0 && line[0] == '>' {
			headers++
			if headers > 1 {
				return Sequence{}, ErrMultipleRecords
			}
			name = recordName(line[1:])

			continue
		}
		for _, c := range line {
			switch c {
			case ' ', '\t', '\r', '\v', '\f':
				continue
			}
			if cfg.upper && c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			data = append(data, c)
		}
	}
	if err := sc.Err(); err != nil {
		return Sequence{}, fmt.Errorf("sequence: read: %w", err)
	}

	return Sequence{name: name, data: data}, nil
}

// recordName returns the first whitespace-delimited word of a FASTA header.
func recordName(header []byte) string {
	fields := bytes.Fields(header)
	if len(fields) == 0 {
		return ""
	}

	return string(fields[0])
}

// ReadFile opens path and parses it with Read. "-" reads standard input;
// gzip input is detected by its magic number or a ".gz" suffix.
func ReadFile(path string, opts ...ReadOption) (Sequence, error) {
	rc, err := openReader(path)
	if err != nil {
		return Sequence{}, fmt.Errorf("sequence: %w", err)
	}
	defer rc.Close()

	return Read(rc, opts...)
}

// gzipReadCloser closes the decompressor and the file under it.
type gzipReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Close() error {
	return errors.Join(g.Reader.Close(), g.file.Close())
}

// openReader opens path, standard input for "-", unwrapping gzip.
func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := io.ReadFull(f, sig[:])
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()

		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()

			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}

		return &gzipReadCloser{Reader: gr, file: f}, nil
	}

	return f, nil
}

// Write emits s as a FASTA record when it has a name, else as one raw line.
func Write(w io.Writer, s Sequence) error {
	bw := bufio.NewWriter(w)
	if s.name != "" {
		if _, err := fmt.Fprintf(bw, ">%s\n", s.name); err != nil {
			return err
		}
	}
	if _, err := bw.Write(s.data); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	return bw.Flush()
}

// WriteFile writes s to path with Write, replacing any existing file.
func WriteFile(path string, s Sequence) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sequence: %w", err)
	}
	if err = Write(f, s); err != nil {
		_ = f.Close()

		return fmt.Errorf("sequence: write %s: %w", path, err)
	}

	return f.Close()
}
