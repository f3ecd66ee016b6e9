package codec

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/image/bmp"

	"github.com/Fepozopo/imgscale/pkg/resample"
)

func resizeBMP(data []byte, w io.Writer, want resample.Size, opts Options) (Result, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("bmp: %w", err)
	}
	in := sizeOf(img)
	if err := checkSize(BMP, in); err != nil {
		return Result{}, err
	}
	out := resample.Fit(in, want)
	layout := layoutFor(img, false, opts.Filler)
	res := Result{Layout: layout, Source: in, In: in, Out: out}

	sink := newImageSink(out, layout)
	if err := resample.Stream(newImageRows(img, layout), sink, in, out, layout, opts.Kernel); err != nil {
		return res, fmt.Errorf("bmp: %w", err)
	}
	dst, err := sink.Image()
	if err != nil {
		return res, err
	}
	if err := bmp.Encode(w, dst); err != nil {
		return res, fmt.Errorf("bmp: encode: %w", err)
	}
	return res, nil
}
