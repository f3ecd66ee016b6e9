// Package codec binds the streaming resampler to concrete image formats.
//
// Decoding and encoding are delegated to jpegn, the standard encoders and
// golang.org/x/image; this package only adapts decoded images to the row
// protocol of pkg/resample and carries JPEG metadata segments across.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Fepozopo/imgscale/pkg/resample"
)

var (
	// ErrEmptyInput is returned when the input stream has no bytes at all.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnknownFormat is returned when the signature byte matches no supported format.
	ErrUnknownFormat = errors.New("unrecognized file signature")
	// ErrEmptyImage is returned when a decoded image has zero width or height.
	ErrEmptyImage = errors.New("image has zero width or height")
)

// DefaultQuality is the JPEG quality used when Options.Quality is zero.
const DefaultQuality = 95

// Options controls a conversion.
type Options struct {
	// Kernel is the horizontal resampling strategy.
	Kernel resample.Kernel
	// Filler pads 3-channel pixels to 4 bytes inside the pipeline.
	Filler bool
	// Quality is the JPEG encoder quality, 1-100.
	Quality int
}

// DefaultOptions returns the options the command line tool starts from.
func DefaultOptions() Options {
	return Options{Kernel: resample.Box, Filler: true, Quality: DefaultQuality}
}

// Result describes a finished conversion.
type Result struct {
	Format Format
	Layout resample.Layout
	// Source is the size stored in the file; In is the size the resampler
	// read, smaller than Source when the decoder scaled down.
	Source resample.Size
	In     resample.Size
	Out    resample.Size
}

// Resize reads a complete image from r, resizes it to fit want (a zero width
// or height is derived from the aspect ratio) and writes it to w in the same
// format. Nothing is written to w unless the whole conversion succeeds.
func Resize(r io.Reader, w io.Writer, want resample.Size, opts Options) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}
	format, err := Sniff(data)
	if err != nil {
		return Result{}, err
	}
	if opts.Quality == 0 {
		opts.Quality = DefaultQuality
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		return Result{}, fmt.Errorf("jpeg quality %d out of range 1-100", opts.Quality)
	}

	var (
		buf bytes.Buffer
		res Result
	)
	switch format {
	case JPEG:
		res, err = resizeJPEG(data, &buf, want, opts)
	case PNG:
		res, err = resizePNG(data, &buf, want, opts)
	case BMP:
		res, err = resizeBMP(data, &buf, want, opts)
	default:
		err = ErrUnknownFormat
	}
	if err != nil {
		return res, err
	}
	res.Format = format
	debugf("%s %v -> %v (%v, %v kernel)", format, res.Source, res.Out, res.Layout, opts.Kernel)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return res, fmt.Errorf("write output: %w", err)
	}
	return res, nil
}

// checkSize rejects images the resampler cannot take.
func checkSize(f Format, s resample.Size) error {
	if s.Width == 0 || s.Height == 0 {
		return fmt.Errorf("%s: invalid image size %v: %w", f, s, ErrEmptyImage)
	}
	return nil
}

var debugOut io.Writer

// SetDebugOutput routes verbose conversion details to w; nil disables them.
func SetDebugOutput(w io.Writer) {
	debugOut = w
}

func debugf(format string, args ...interface{}) {
	if debugOut != nil {
		fmt.Fprintf(debugOut, "imgscale: "+format+"\n", args...)
	}
}
