package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/mastercraft/stlmass/pkg/geometry"
)

const (
	headerSize = 80
	// Bytes per binary facet record: normal (12) + three vertices (36)
	// + attribute byte count (2).
	recordSize = 50
)

// asciiMarker is the prefix of the textual STL variant.
var asciiMarker = []byte("solid")

// Parse reads an STL file and returns the decoded Model.
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads one mesh from the stream. The 80-byte leading header is
// used for format sniffing only: a stream whose header begins with the
// literal "solid" is the textual variant and is rejected with a
// *FormatError; every other stream is decoded as binary. Truncated
// binary input fails with a *TruncatedError carrying how many triangles
// were decoded before the stream ended.
func Decode(r io.Reader) (*Model, error) {
	// The prefix test works on raw bytes, so arbitrary non-text content
	// in the header can never make the sniff itself fail.
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if bytes.HasPrefix(header, asciiMarker) {
			return nil, &FormatError{Variant: "ascii"}
		}
		return nil, &TruncatedError{}
	}

	if bytes.HasPrefix(header, asciiMarker) {
		return nil, &FormatError{Variant: "ascii"}
	}

	return decodeBinary(r, header)
}

// decodeBinary decodes the body that follows an already-consumed binary
// header.
func decodeBinary(r io.Reader, header []byte) (*Model, error) {
	model := NewModel(headerName(header))

	// The triangle count is the format's one platform-endian field; all
	// geometry that follows is fixed little-endian. Historical quirk of
	// the reference encoder, preserved for binary compatibility.
	var countBuf [4]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return nil, &TruncatedError{}
	}
	count := binary.NativeEndian.Uint32(countBuf[:])

	record := make([]byte, recordSize)
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, record); err != nil {
			return nil, &TruncatedError{Declared: count, Read: int(i)}
		}

		// record[0:12] is the stored facet normal and record[48:50] the
		// attribute byte count; both are discarded. Vertex values are
		// passed through unmodified, NaN and Inf included.
		p1 := readPoint(record[12:24])
		p2 := readPoint(record[24:36])
		p3 := readPoint(record[36:48])

		model.AddTriangle(geometry.NewTriangle(p1, p2, p3))
	}

	return model, nil
}

// readPoint decodes three consecutive little-endian float32 values.
func readPoint(b []byte) geometry.Vector3 {
	return geometry.NewVector3(
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:12]))),
	)
}

// headerName extracts a model name from the binary header, if any.
func headerName(header []byte) string {
	return string(bytes.TrimRight(header, "\x00 "))
}
