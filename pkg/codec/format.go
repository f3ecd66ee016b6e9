package codec

// Format identifies a supported container.
type Format int

const (
	Unknown Format = iota
	JPEG
	PNG
	BMP
)

func (f Format) String() string {
	switch f {
	case JPEG:
		return "jpeg"
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	}
	return "unknown"
}

// Sniff detects the format from the first byte of the stream, the way the
// tool always has: 0xFF starts a JPEG SOI marker, 0x89 the PNG signature and
// 'B' the BMP "BM" magic.
func Sniff(data []byte) (Format, error) {
	if len(data) == 0 {
		return Unknown, ErrEmptyInput
	}
	switch data[0] {
	case 0xFF:
		return JPEG, nil
	case 0x89:
		return PNG, nil
	case 'B':
		return BMP, nil
	}
	return Unknown, ErrUnknownFormat
}
