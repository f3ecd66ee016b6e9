package resample

// FitRatio computes the final output size for a sw x sh source when dw x dh is
// requested. A zero dw or dh means that axis is unconstrained and is derived
// from the other one so the aspect ratio is kept. When both are set the more
// restrictive axis wins. Both results are at least 1.
func FitRatio(sw, sh, dw, dh uint32) (uint32, uint32) {
	x := float64(dw) / float64(sw)
	y := float64(dh) / float64(sh)

	if x != 0 && (y == 0 || x < y) {
		dh = uint32(float64(sh)*x + 0.5)
	} else {
		dw = uint32(float64(sw)*y + 0.5)
	}

	if dh == 0 {
		dh = 1
	}
	if dw == 0 {
		dw = 1
	}
	return dw, dh
}

// Fit is FitRatio applied to Size values.
func Fit(src, want Size) Size {
	w, h := FitRatio(src.Width, src.Height, want.Width, want.Height)
	return Size{Width: w, Height: h}
}
