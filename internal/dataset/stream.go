package dataset

// stream.go wraps the response body before it reaches encoding/csv:
//
//   - bomSkippingReader: drops a leading UTF-8 BOM (0xEF 0xBB 0xBF)
//   - limitReader: counts bytes and fails once the configured cap is passed
//
// Invalid UTF-8 inside fields is replaced per field in parse.go.

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// errTooLarge is returned by limitReader once more than max bytes were read.
var errTooLarge = errors.New("body exceeds size limit")

// newBOMSkippingReader returns a reader that omits a leading UTF-8 BOM.
func newBOMSkippingReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// limitReader tracks bytes read and errors when max is exceeded.
// A max of zero or less disables the cap.
type limitReader struct {
	r         io.Reader
	max       int64
	BytesRead int64
	exceeded  bool
}

func newLimitReader(r io.Reader, max int64) *limitReader {
	return &limitReader{r: r, max: max}
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.BytesRead += int64(n)
	if l.max > 0 && l.BytesRead > l.max {
		l.exceeded = true
		return n, l.err()
	}
	return n, err
}

func (l *limitReader) err() error {
	return fmt.Errorf("%w (%d bytes)", errTooLarge, l.max)
}
