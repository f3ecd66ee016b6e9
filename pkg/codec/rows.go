package codec

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"

	"github.com/Fepozopo/imgscale/pkg/resample"
)

// layoutFor picks the pipeline layout for a decoded image. grayAlpha is set
// by the PNG binding when the header declares a gray+alpha color type, since
// the decoder widens those to NRGBA.
func layoutFor(img image.Image, grayAlpha, filler bool) resample.Layout {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return resample.Gray
	}
	if grayAlpha {
		return resample.GrayAlpha
	}
	if isOpaque(img) {
		if filler {
			return resample.RGBX
		}
		return resample.RGB
	}
	return resample.RGBA
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

// imageRows feeds the rows of a decoded image to the resampler in the
// requested layout, converting one row at a time.
type imageRows struct {
	img    image.Image
	layout resample.Layout
	bounds image.Rectangle
	y      int

	// one-row scratch images for formats without a fast path
	gray  *image.Gray
	nrgba *image.NRGBA
}

func newImageRows(img image.Image, layout resample.Layout) *imageRows {
	b := img.Bounds()
	row := image.Rect(0, 0, b.Dx(), 1)
	return &imageRows{
		img:    img,
		layout: layout,
		bounds: b,
		gray:   image.NewGray(row),
		nrgba:  image.NewNRGBA(row),
	}
}

func (r *imageRows) ReadRow(dst []byte) error {
	if r.y >= r.bounds.Dy() {
		return io.ErrUnexpectedEOF
	}
	y := r.bounds.Min.Y + r.y
	r.y++
	if r.layout == resample.Gray {
		r.grayRow(dst, y)
		return nil
	}
	px := r.nrgbaRow(y)
	w := r.bounds.Dx()
	switch r.layout {
	case resample.GrayAlpha:
		for x := 0; x < w; x++ {
			dst[2*x] = px[4*x]
			dst[2*x+1] = px[4*x+3]
		}
	case resample.RGB:
		for x := 0; x < w; x++ {
			copy(dst[3*x:3*x+3], px[4*x:4*x+3])
		}
	case resample.RGBX:
		for x := 0; x < w; x++ {
			copy(dst[4*x:4*x+3], px[4*x:4*x+3])
			dst[4*x+3] = 0
		}
	default:
		copy(dst, px)
	}
	return nil
}

func (r *imageRows) grayRow(dst []byte, y int) {
	w := r.bounds.Dx()
	if g, ok := r.img.(*image.Gray); ok {
		i := g.PixOffset(r.bounds.Min.X, y)
		copy(dst, g.Pix[i:i+w])
		return
	}
	draw.Draw(r.gray, r.gray.Rect, r.img, image.Pt(r.bounds.Min.X, y), draw.Src)
	copy(dst, r.gray.Pix[:w])
}

// nrgbaRow returns row y as straight-alpha RGBA bytes. The slice is only
// valid until the next call.
func (r *imageRows) nrgbaRow(y int) []byte {
	w := r.bounds.Dx()
	switch m := r.img.(type) {
	case *image.NRGBA:
		i := m.PixOffset(r.bounds.Min.X, y)
		return m.Pix[i : i+4*w]
	case *image.YCbCr:
		pix := r.nrgba.Pix
		for x := 0; x < w; x++ {
			sx := r.bounds.Min.X + x
			yi, ci := m.YOffset(sx, y), m.COffset(sx, y)
			pix[4*x], pix[4*x+1], pix[4*x+2] = color.YCbCrToRGB(m.Y[yi], m.Cb[ci], m.Cr[ci])
			pix[4*x+3] = 0xFF
		}
		return pix[:4*w]
	}
	draw.Draw(r.nrgba, r.nrgba.Rect, r.img, image.Pt(r.bounds.Min.X, y), draw.Src)
	return r.nrgba.Pix[:4*w]
}

// readAllRows materializes every row, for drivers that need random access.
func readAllRows(src resample.RowSource, height, rowLen int) ([][]byte, error) {
	backing := make([]byte, height*rowLen)
	rows := make([][]byte, height)
	for y := range rows {
		rows[y] = backing[y*rowLen : (y+1)*rowLen : (y+1)*rowLen]
		if err := src.ReadRow(rows[y]); err != nil {
			return nil, fmt.Errorf("read row %d: %w", y, err)
		}
	}
	return rows, nil
}

// imageSink collects resampled rows into an image the encoders accept.
type imageSink struct {
	layout resample.Layout
	size   image.Point
	y      int

	gray  *image.Gray
	rgba  *image.RGBA
	nrgba *image.NRGBA
}

func newImageSink(size resample.Size, layout resample.Layout) *imageSink {
	s := &imageSink{layout: layout, size: image.Pt(int(size.Width), int(size.Height))}
	r := image.Rect(0, 0, s.size.X, s.size.Y)
	switch layout {
	case resample.Gray:
		s.gray = image.NewGray(r)
	case resample.RGB, resample.RGBX:
		s.rgba = image.NewRGBA(r)
	default:
		s.nrgba = image.NewNRGBA(r)
	}
	return s
}

func (s *imageSink) WriteRow(row []byte) error {
	if s.y >= s.size.Y {
		return fmt.Errorf("sink: row %d past image height %d", s.y, s.size.Y)
	}
	w := s.size.X
	switch {
	case s.gray != nil:
		copy(s.gray.Pix[s.y*s.gray.Stride:], row[:w])
	case s.rgba != nil:
		c := s.layout.Channels
		dst := s.rgba.Pix[s.y*s.rgba.Stride:]
		for x := 0; x < w; x++ {
			copy(dst[4*x:4*x+3], row[c*x:c*x+3])
			dst[4*x+3] = 0xFF
		}
	case s.layout == resample.GrayAlpha:
		dst := s.nrgba.Pix[s.y*s.nrgba.Stride:]
		for x := 0; x < w; x++ {
			v := row[2*x]
			dst[4*x], dst[4*x+1], dst[4*x+2], dst[4*x+3] = v, v, v, row[2*x+1]
		}
	default:
		copy(s.nrgba.Pix[s.y*s.nrgba.Stride:], row[:4*w])
	}
	s.y++
	return nil
}

// Image returns the collected image. It reports an error if fewer rows than
// the image height were written.
func (s *imageSink) Image() (image.Image, error) {
	if s.y != s.size.Y {
		return nil, fmt.Errorf("sink: got %d rows, want %d", s.y, s.size.Y)
	}
	switch {
	case s.gray != nil:
		return s.gray, nil
	case s.rgba != nil:
		return s.rgba, nil
	}
	return s.nrgba, nil
}

func sizeOf(img image.Image) resample.Size {
	b := img.Bounds()
	return resample.Size{Width: uint32(b.Dx()), Height: uint32(b.Dy())}
}
