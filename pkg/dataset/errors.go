package dataset

import (
	"errors"
	"fmt"
)

// ErrMalformedLine is the sentinel for source rows that cannot be
// parsed.
var ErrMalformedLine = errors.New("malformed line")

// ErrUnsupportedScheme is returned by the fetcher for URIs it cannot
// resolve.
var ErrUnsupportedScheme = errors.New("unsupported scheme")

// LineError reports the exact source line that failed to parse.
type LineError struct {
	Source string
	Line   int
	Detail string
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("%s line %d: %s", e.Source, e.Line, e.Detail)
}

// Unwrap ties every LineError to ErrMalformedLine for errors.Is checks.
func (e *LineError) Unwrap() error {
	return ErrMalformedLine
}

// IsMalformedLine returns true if the error indicates an unparseable row.
func IsMalformedLine(err error) bool {
	return errors.Is(err, ErrMalformedLine)
}
