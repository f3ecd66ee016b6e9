package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/png"
	"io"

	"github.com/Fepozopo/imgscale/pkg/resample"
)

const pngSignature = "\x89PNG\r\n\x1a\n"

// PNG color types from the IHDR chunk that change the pipeline layout.
const (
	pngGrayAlpha = 4
	pngRGBA      = 6
)

// pngHeader holds the IHDR fields the decoder does not expose.
type pngHeader struct {
	Width, Height uint32
	Depth         byte
	ColorType     byte
	Interlaced    bool
}

func parsePNGHeader(data []byte) (pngHeader, error) {
	// signature(8) length(4) "IHDR"(4) then 13 bytes of fields
	if len(data) < 8 || string(data[:8]) != pngSignature {
		return pngHeader{}, fmt.Errorf("png: bad signature")
	}
	if len(data) < 33 {
		return pngHeader{}, fmt.Errorf("png: truncated header")
	}
	if string(data[12:16]) != "IHDR" {
		return pngHeader{}, fmt.Errorf("png: first chunk is %q, want IHDR", data[12:16])
	}
	return pngHeader{
		Width:      binary.BigEndian.Uint32(data[16:20]),
		Height:     binary.BigEndian.Uint32(data[20:24]),
		Depth:      data[24],
		ColorType:  data[25],
		Interlaced: data[28] == 1,
	}, nil
}

func resizePNG(data []byte, w io.Writer, want resample.Size, opts Options) (Result, error) {
	hdr, err := parsePNGHeader(data)
	if err != nil {
		return Result{}, err
	}
	debugf("png: %dx%d, depth %d, color type %d", hdr.Width, hdr.Height, hdr.Depth, hdr.ColorType)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("png: %w", err)
	}
	in := sizeOf(img)
	if err := checkSize(PNG, in); err != nil {
		return Result{}, err
	}
	out := resample.Fit(in, want)
	layout := layoutFor(img, hdr.ColorType == pngGrayAlpha, opts.Filler && hdr.ColorType != pngRGBA)
	res := Result{Layout: layout, Source: in, In: in, Out: out}

	src := newImageRows(img, layout)
	sink := newImageSink(out, layout)
	if hdr.Interlaced {
		debugf("png: interlaced input, buffering %v frame", in)
		rows, err := readAllRows(src, int(in.Height), layout.RowLen(int(in.Width)))
		if err != nil {
			return res, fmt.Errorf("png: %w", err)
		}
		err = resample.Frame(rows, sink, in, out, layout, opts.Kernel)
		if err != nil {
			return res, fmt.Errorf("png: %w", err)
		}
	} else if err := resample.Stream(src, sink, in, out, layout, opts.Kernel); err != nil {
		return res, fmt.Errorf("png: %w", err)
	}

	dst, err := sink.Image()
	if err != nil {
		return res, err
	}
	if err := png.Encode(w, dst); err != nil {
		return res, fmt.Errorf("png: encode: %w", err)
	}
	return res, nil
}
