package emucore

// DisplayAspectRatio returns the aspect ratio of a width x height frame
// whose pixels have the given pixel aspect ratio. A non-positive par is
// treated as square pixels.
func DisplayAspectRatio(width, height int, par float64) float64 {
	if height <= 0 {
		return 0
	}
	if par <= 0 {
		par = 1
	}
	return float64(width) / float64(height) * par
}
