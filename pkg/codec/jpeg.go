package codec

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"io"

	"github.com/gen2brain/jpegn"

	"github.com/Fepozopo/imgscale/pkg/resample"
)

func resizeJPEG(data []byte, w io.Writer, want resample.Size, opts Options) (Result, error) {
	cfg, err := jpegn.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("jpeg: %w", err)
	}
	src := resample.Size{Width: uint32(cfg.Width), Height: uint32(cfg.Height)}
	if err := checkSize(JPEG, src); err != nil {
		return Result{}, err
	}
	out := resample.Fit(src, want)

	// Let the decoder drop resolution in the DCT domain; the resampler then
	// works from the reduced image.
	denom := resample.Decimation(src.Width, out.Width)
	img, err := jpegn.Decode(bytes.NewReader(data), &jpegn.Options{ScaleDenom: denom})
	if err != nil {
		return Result{}, fmt.Errorf("jpeg: %w", err)
	}
	in := sizeOf(img)
	if err := checkSize(JPEG, in); err != nil {
		return Result{}, err
	}
	if denom > 1 {
		debugf("jpeg: decoded at 1/%d scale: %v -> %v", denom, src, in)
	}

	segs, err := parseJPEGAppSegments(data)
	if err != nil {
		debugf("jpeg: keeping %d segments: %v", len(segs), err)
	}

	layout := layoutFor(img, false, opts.Filler)
	res := Result{Layout: layout, Source: src, In: in, Out: out}

	sink := newImageSink(out, layout)
	if err := resample.Stream(newImageRows(img, layout), sink, in, out, layout, opts.Kernel); err != nil {
		return res, fmt.Errorf("jpeg: %w", err)
	}
	dst, err := sink.Image()
	if err != nil {
		return res, err
	}

	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, dst, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return res, fmt.Errorf("jpeg: encode: %w", err)
	}
	final, err := insertAppSegmentsIntoJPEG(enc.Bytes(), segs)
	if err != nil {
		return res, err
	}
	if _, err := w.Write(final); err != nil {
		return res, err
	}
	return res, nil
}
