package resample

// Decimation recommends a decode-time scale denominator (1, 2, 4 or 8) for
// DCT based decoders. A factor f is only suggested when the source is at least
// 4*f times wider than the output, so the resampler still has a reasonable
// ratio left to work with after the decoder has shrunk the image.
//
// The advice is optional; decoders that cannot decimate may ignore it.
func Decimation(srcWidth, outWidth uint32) int {
	if outWidth == 0 {
		outWidth = 1
	}
	ratio := srcWidth / outWidth
	switch {
	case ratio >= 8*4:
		return 8
	case ratio >= 4*4:
		return 4
	case ratio >= 2*4:
		return 2
	}
	return 1
}
