package stl

import "fmt"

// FormatError reports input recognized as an STL variant this decoder
// does not handle. Currently that is only the textual "solid" variant.
type FormatError struct {
	Variant string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported STL variant %q: only binary STL is decoded", e.Variant)
}

// TruncatedError reports a binary stream that ended before the declared
// triangle count was satisfied. Read is the number of triangles fully
// decoded before the stream ended; Declared is 0 when the stream ended
// before the count field itself.
type TruncatedError struct {
	Declared uint32
	Read     int
}

func (e *TruncatedError) Error() string {
	if e.Declared == 0 && e.Read == 0 {
		return "truncated STL stream: ended before the triangle count"
	}
	return fmt.Sprintf("truncated STL stream: read %d of %d declared triangles", e.Read, e.Declared)
}
