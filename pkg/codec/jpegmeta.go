package codec

import (
	"bytes"
	"fmt"

	"github.com/garyhouston/jpegsegs"
)

// AppSegment is a JPEG marker segment carried from input to output.
// Payload excludes the marker and the two length bytes.
type AppSegment struct {
	Marker  byte
	Payload []byte
}

// maxSegmentPayload is the largest payload a marker segment's 16-bit length
// field can describe.
const maxSegmentPayload = 0xFFFF - 2

// keepMarker reports whether a segment is copied to the output. APP0 (JFIF)
// and APP14 (Adobe) describe the encoding of the original stream and are
// written fresh by the encoder, so they are dropped.
func keepMarker(m jpegsegs.Marker) bool {
	if m == jpegsegs.COM {
		return true
	}
	return m > jpegsegs.APP0 && m <= jpegsegs.APP15 && m != jpegsegs.APP14
}

// parseJPEGAppSegments scans the header of a JPEG stream up to the first
// SOS marker and returns the APPn and COM segments worth preserving. On a
// malformed header the segments found so far are returned with the error.
func parseJPEGAppSegments(data []byte) (segs []AppSegment, err error) {
	// jpegsegs slices by the declared length and panics when it is below 2
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("jpeg: scanning segments: bad segment length: %v", r)
		}
	}()
	scanner, err := jpegsegs.NewScanner(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("jpeg: %w", err)
	}
	for {
		marker, buf, err := scanner.Scan()
		if err != nil {
			return segs, fmt.Errorf("jpeg: scanning segments: %w", err)
		}
		if marker == jpegsegs.SOS || marker == jpegsegs.EOI {
			return segs, nil
		}
		if keepMarker(marker) {
			// buf is only valid until the next Scan
			payload := make([]byte, len(buf))
			copy(payload, buf)
			segs = append(segs, AppSegment{Marker: byte(marker), Payload: payload})
		}
	}
}

// insertAppSegmentsIntoJPEG returns a copy of jpegBytes with segs placed
// directly after SOI, ahead of whatever the encoder wrote.
func insertAppSegmentsIntoJPEG(jpegBytes []byte, segs []AppSegment) ([]byte, error) {
	if len(jpegBytes) < jpegsegs.HeaderSize || !jpegsegs.IsJPEGHeader(jpegBytes) {
		return nil, fmt.Errorf("jpeg: encoder output missing SOI marker")
	}
	if len(segs) == 0 {
		return jpegBytes, nil
	}
	var buf bytes.Buffer
	dumper, err := jpegsegs.NewDumper(&buf)
	if err != nil {
		return nil, err
	}
	for _, s := range segs {
		payload := s.Payload
		if payload == nil {
			// Dump writes no length field for a nil payload
			payload = []byte{}
		}
		if err := dumper.Dump(jpegsegs.Marker(s.Marker), payload); err != nil {
			return nil, fmt.Errorf("jpeg: segment %#02x: %w", s.Marker, err)
		}
	}
	buf.Write(jpegBytes[jpegsegs.HeaderSize:])
	return buf.Bytes(), nil
}
