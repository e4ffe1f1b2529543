package kernel

import "math"

// Frequency response functions for each filter family and shape.
// d is the distance from the center of a shifted spectrum, c the cutoff,
// w the band width and n the butterworth order. Butterworth powers of a
// signed band ratio are taken on its magnitude.

// --- low pass ---

func LowPassIdeal(d, c float64) float64 {
	if d <= c {
		return 1
	}
	return 0
}

func LowPassGauss(d, c float64) float64 {
	return math.Exp(-(d * d) / (2 * c * c))
}

func LowPassButterworth(d, c, n float64) float64 {
	return 1 / (1 + math.Pow(d/c, 2*n))
}

// --- high pass ---

func HighPassIdeal(d, c float64) float64 {
	if d >= c {
		return 1
	}
	return 0
}

func HighPassGauss(d, c float64) float64 {
	return 1 - math.Exp(-(d*d)/(2*c*c))
}

// HighPassButterworth is 0 at d=0
func HighPassButterworth(d, c, n float64) float64 {
	if d == 0 {
		return 0
	}
	return 1 / (1 + math.Pow(c/d, 2*n))
}

// --- band pass ---

func BandPassIdeal(d, c, w float64) float64 {
	if inBand(d, c, w) {
		return 1
	}
	return 0
}

// BandPassGauss is 0 at d=0
func BandPassGauss(d, c, w float64) float64 {
	if d == 0 {
		return 0
	}
	return math.Exp(-math.Pow(bandRatio(d, c, w), 2))
}

// BandPassButterworth is 0 at d=0
func BandPassButterworth(d, c, w, n float64) float64 {
	if d == 0 {
		return 0
	}
	return 1 / (1 + math.Pow(math.Abs(bandRatio(d, c, w)), 2*n))
}

// --- band reject ---

func BandRejectIdeal(d, c, w float64) float64 {
	if inBand(d, c, w) {
		return 0
	}
	return 1
}

// BandRejectGauss is 1 at d=0
func BandRejectGauss(d, c, w float64) float64 {
	if d == 0 {
		return 1
	}
	return 1 - math.Exp(-math.Pow(bandRatio(d, c, w), 2))
}

// BandRejectButterworth is 1 where d²=c²
func BandRejectButterworth(d, c, w, n float64) float64 {
	den := d*d - c*c
	if den == 0 {
		return 1
	}
	return 1 / (1 + math.Pow(math.Abs(d*w/den), 2*n))
}

func inBand(d, c, w float64) bool {
	return c-w/2 <= d && d <= c+w/2
}

// bandRatio is (d²-c²)/(d·w)
func bandRatio(d, c, w float64) float64 {
	return (d*d - c*c) / (d * w)
}
