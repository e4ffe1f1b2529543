// Package kernel holds the frequency-domain filter kernels: four filter
// families (low pass, high pass, band pass, band reject) in three response
// shapes (ideal, gauss, butterworth).
//
// A Kernel declares the parameters its response needs. Bind validates a
// caller supplied parameter set against that declaration and returns the
// scalar response as a function of distance.
package kernel

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrInvalidParams = errors.New("invalid filter parameters")
)

// Family of a frequency filter
type Family int

const (
	LowPass Family = iota
	HighPass
	BandPass
	BandReject
)

var familyNames = []string{"low_pass", "high_pass", "band_pass", "band_reject"}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// ParseFamily resolves low_pass, high_pass, band_pass or band_reject
func ParseFamily(s string) (Family, error) {
	for i, n := range familyNames {
		if n == s {
			return Family(i), nil
		}
	}
	return 0, fmt.Errorf("%w: family %q", ErrUnknownFilter, s)
}

// Shape of the response curve within a family
type Shape int

const (
	Ideal Shape = iota
	Gauss
	Butterworth
)

var shapeNames = []string{"ideal", "gauss", "butterworth"}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// ParseShape resolves ideal, gauss or butterworth
func ParseShape(s string) (Shape, error) {
	for i, n := range shapeNames {
		if n == s {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w: shape %q", ErrUnknownFilter, s)
}

// Param names a kernel parameter as supplied by callers
type Param string

const (
	Cutoff Param = "cutoff"
	Width  Param = "width"
	Order  Param = "order"
)

// Response is a kernel bound to its parameters
type Response func(d float64) float64

// Kernel is one family/shape combination
type Kernel struct {
	Family Family
	Shape  Shape
	Params []Param // required, in evaluation order

	eval func(d float64, p []float64) float64
}

func (k Kernel) String() string {
	return k.Family.String() + "/" + k.Shape.String()
}

// Lookup resolves a kernel from its family and shape keys
func Lookup(family, shape string) (Kernel, error) {
	f, err := ParseFamily(family)
	if err != nil {
		return Kernel{}, err
	}
	s, err := ParseShape(shape)
	if err != nil {
		return Kernel{}, err
	}
	return Get(f, s)
}

// Get returns the kernel for f and s
func Get(f Family, s Shape) (Kernel, error) {
	switch f {
	case LowPass:
		switch s {
		case Ideal:
			return cutoffOnly(f, s, LowPassIdeal), nil
		case Gauss:
			return cutoffOnly(f, s, LowPassGauss), nil
		case Butterworth:
			return withOrder(f, s, LowPassButterworth), nil
		}
	case HighPass:
		switch s {
		case Ideal:
			return cutoffOnly(f, s, HighPassIdeal), nil
		case Gauss:
			return cutoffOnly(f, s, HighPassGauss), nil
		case Butterworth:
			return withOrder(f, s, HighPassButterworth), nil
		}
	case BandPass:
		switch s {
		case Ideal:
			return withWidth(f, s, BandPassIdeal), nil
		case Gauss:
			return withWidth(f, s, BandPassGauss), nil
		case Butterworth:
			return band(f, s, BandPassButterworth), nil
		}
	case BandReject:
		switch s {
		case Ideal:
			return withWidth(f, s, BandRejectIdeal), nil
		case Gauss:
			return withWidth(f, s, BandRejectGauss), nil
		case Butterworth:
			return band(f, s, BandRejectButterworth), nil
		}
	}
	return Kernel{}, fmt.Errorf("%w: %s/%s", ErrUnknownFilter, f, s)
}

// All lists every supported kernel
func All() []Kernel {
	var ks []Kernel
	for f := range familyNames {
		for s := range shapeNames {
			if k, err := Get(Family(f), Shape(s)); err == nil {
				ks = append(ks, k)
			}
		}
	}
	return ks
}

// Bind checks that opts holds exactly the kernel's parameters and returns the
// resulting response function.
func (k Kernel) Bind(opts map[string]float64) (Response, error) {
	var extra []string
	for name := range opts {
		if !k.requires(Param(name)) {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return nil, fmt.Errorf("%w: %s does not take %s", ErrInvalidParams, k, strings.Join(extra, ", "))
	}

	vals := make([]float64, len(k.Params))
	for i, p := range k.Params {
		v, ok := opts[string(p)]
		if !ok {
			return nil, fmt.Errorf("%w: %s is missing required parameter %q", ErrInvalidParams, k, p)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s parameter %q is not finite", ErrInvalidParams, k, p)
		}
		if v <= 0 && k.positive(p) {
			return nil, fmt.Errorf("%w: %s parameter %q must be positive, got %v", ErrInvalidParams, k, p, v)
		}
		vals[i] = v
	}
	eval := k.eval
	return func(d float64) float64 {
		return eval(d, vals)
	}, nil
}

// positive reports whether p divides in k's response: the cutoff of the
// gauss and butterworth curves and the width of every band.
func (k Kernel) positive(p Param) bool {
	switch p {
	case Cutoff:
		return k.Shape != Ideal
	case Width:
		return true
	}
	return false
}

func (k Kernel) requires(p Param) bool {
	for _, q := range k.Params {
		if q == p {
			return true
		}
	}
	return false
}

func cutoffOnly(f Family, s Shape, fn func(d, c float64) float64) Kernel {
	return Kernel{f, s, []Param{Cutoff}, func(d float64, p []float64) float64 {
		return fn(d, p[0])
	}}
}

func withOrder(f Family, s Shape, fn func(d, c, n float64) float64) Kernel {
	return Kernel{f, s, []Param{Cutoff, Order}, func(d float64, p []float64) float64 {
		return fn(d, p[0], p[1])
	}}
}

func withWidth(f Family, s Shape, fn func(d, c, w float64) float64) Kernel {
	return Kernel{f, s, []Param{Cutoff, Width}, func(d float64, p []float64) float64 {
		return fn(d, p[0], p[1])
	}}
}

func band(f Family, s Shape, fn func(d, c, w, n float64) float64) Kernel {
	return Kernel{f, s, []Param{Cutoff, Width, Order}, func(d float64, p []float64) float64 {
		return fn(d, p[0], p[1], p[2])
	}}
}
