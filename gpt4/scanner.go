package gpt4

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/agentstation/bpe/gpt4/scanner"
)

// Scanner provides streaming tokenization following the bufio.Scanner
// pattern. It reads text incrementally and produces tokens one at a time.
type Scanner = scanner.Scanner

// ScannerOption configures scanner behavior.
type ScannerOption = scanner.Option

// Scanner option functions - these are re-exported from the scanner package.
var (
	// WithBufferSize sets the internal buffer size for reading.
	// Default is 4096 bytes.
	WithBufferSize = scanner.WithBufferSize

	// WithMaxBuffer sets the maximum buffer size before forcing tokenization.
	// This prevents unbounded memory growth for pathological inputs.
	// Default is 1MB.
	WithMaxBuffer = scanner.WithMaxBuffer
)

// NewScanner creates a scanner for streaming tokenization over r.
func (t *Tokenizer) NewScanner(r io.Reader, opts ...ScannerOption) Scanner {
	return scanner.NewWithOptions(t, r, opts...)
}

// Process tokenizes everything read from r and writes the token ids to w as
// 4-byte little-endian values. Returns the number of tokens written.
func (t *Tokenizer) Process(r io.Reader, w io.Writer) (int64, error) {
	scan := t.NewScanner(r)

	var count int64
	buf := make([]byte, 4)
	for scan.Scan() {
		binary.LittleEndian.PutUint32(buf, scan.Token())
		if _, err := w.Write(buf); err != nil {
			return count, fmt.Errorf("write token: %w", err)
		}
		count++
	}

	if err := scan.Err(); err != nil {
		return count, err
	}
	return count, nil
}

// TokenStream provides channel-based streaming for concurrent processing.
// The tokens channel is closed when scanning completes; any error is sent on
// the error channel.
func (t *Tokenizer) TokenStream(r io.Reader) (<-chan uint32, <-chan error) {
	tokens := make(chan uint32, 100)
	errc := make(chan error, 1)

	go func() {
		defer close(tokens)
		defer close(errc)

		scan := t.NewScanner(r)
		for scan.Scan() {
			tokens <- scan.Token()
		}
		if err := scan.Err(); err != nil {
			errc <- err
		}
	}()

	return tokens, errc
}
