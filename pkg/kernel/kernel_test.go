package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdealBoundaries(t *testing.T) {
	const cutoff = 10.0
	assert.Equal(t, 1.0, LowPassIdeal(cutoff, cutoff))
	assert.Equal(t, 0.0, LowPassIdeal(math.Nextafter(cutoff, 11), cutoff))
	for _, d := range []float64{0, 1, 5, 9.999, 10, 10.001, 20, 1e6} {
		lp, hp := LowPassIdeal(d, cutoff), HighPassIdeal(d, cutoff)
		if d <= cutoff {
			assert.Equal(t, 1.0, lp, "d=%v", d)
		} else {
			assert.Equal(t, 0.0, lp, "d=%v", d)
		}
		if d == cutoff {
			// both sides are inclusive at the boundary
			assert.Equal(t, 1.0, hp)
			continue
		}
		assert.Equal(t, 1-lp, hp, "d=%v", d)
	}
}

func TestBandIdeal(t *testing.T) {
	tests := []struct {
		d    float64
		want float64
	}{
		{0, 0},
		{7, 0},
		{8, 1},
		{10, 1},
		{12, 1},
		{12.5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandPassIdeal(tt.d, 10, 4), "pass d=%v", tt.d)
		assert.Equal(t, 1-tt.want, BandRejectIdeal(tt.d, 10, 4), "reject d=%v", tt.d)
	}
}

func TestSingularities(t *testing.T) {
	for _, c := range []float64{0.5, 1, 10, 64} {
		for _, n := range []float64{1, 2, 3} {
			assert.Equal(t, 0.0, HighPassButterworth(0, c, n))
			assert.Equal(t, 0.0, BandPassButterworth(0, c, 4, n))
			assert.Equal(t, 1.0, BandRejectButterworth(c, c, 4, n))
		}
		assert.Equal(t, 0.0, BandPassGauss(0, c, 4))
		assert.Equal(t, 1.0, BandRejectGauss(0, c, 4))
	}
}

func TestKnownValues(t *testing.T) {
	assert.InDelta(t, math.Exp(-0.5), LowPassGauss(10, 10), 1e-12)
	assert.InDelta(t, 1-math.Exp(-0.5), HighPassGauss(10, 10), 1e-12)
	assert.InDelta(t, 0.5, LowPassButterworth(10, 10, 2), 1e-12)
	assert.InDelta(t, 0.5, HighPassButterworth(10, 10, 2), 1e-12)
	// on the band center the ratio is zero
	assert.InDelta(t, 1.0, BandPassGauss(10, 10, 4), 1e-12)
	assert.InDelta(t, 1.0, BandPassButterworth(10, 10, 4, 2), 1e-12)
	assert.InDelta(t, 0.0, BandRejectGauss(10, 10, 4), 1e-12)
	// (d*w)/(d²-c²) is 1 at d=2, c=sqrt(2), w=1
	assert.InDelta(t, 0.5, BandRejectButterworth(2, math.Sqrt2, 1, 3), 1e-12)
}

func TestResponsesInUnitRange(t *testing.T) {
	all := map[string]float64{"cutoff": 12, "width": 6, "order": 2}
	for _, k := range All() {
		opts := map[string]float64{}
		for _, p := range k.Params {
			opts[string(p)] = all[string(p)]
		}
		resp, err := k.Bind(opts)
		require.NoError(t, err, k.String())
		for d := 0.0; d <= 40; d += 0.25 {
			v := resp(d)
			assert.False(t, math.IsNaN(v), "%s d=%v", k, d)
			assert.GreaterOrEqual(t, v, 0.0, "%s d=%v", k, d)
			assert.LessOrEqual(t, v, 1.0, "%s d=%v", k, d)
		}
	}
}

func TestAll(t *testing.T) {
	ks := All()
	require.Len(t, ks, 12)
	assert.Equal(t, "low_pass/ideal", ks[0].String())
	assert.Equal(t, "band_reject/butterworth", ks[len(ks)-1].String())
}

func TestLookup_Unknown(t *testing.T) {
	tests := []struct {
		family, shape string
	}{
		{"notch", "ideal"},
		{"low_pass", "chebyshev"},
		{"", ""},
	}
	for _, tt := range tests {
		_, err := Lookup(tt.family, tt.shape)
		assert.ErrorIs(t, err, ErrUnknownFilter, "%s/%s", tt.family, tt.shape)
	}
}

func TestBind(t *testing.T) {
	tests := []struct {
		name    string
		family  string
		shape   string
		opts    map[string]float64
		wantErr string
	}{
		{"low ideal", "low_pass", "ideal", map[string]float64{"cutoff": 5}, ""},
		{"high butterworth", "high_pass", "butterworth", map[string]float64{"cutoff": 5, "order": 2}, ""},
		{"band pass gauss", "band_pass", "gauss", map[string]float64{"cutoff": 5, "width": 2}, ""},
		{"band reject butterworth", "band_reject", "butterworth", map[string]float64{"cutoff": 5, "width": 2, "order": 1}, ""},
		{"missing cutoff", "low_pass", "gauss", map[string]float64{}, `"cutoff"`},
		{"missing order", "low_pass", "butterworth", map[string]float64{"cutoff": 5}, `"order"`},
		{"missing width", "band_reject", "ideal", map[string]float64{"cutoff": 5}, `"width"`},
		{"extra order", "low_pass", "ideal", map[string]float64{"cutoff": 5, "order": 2}, "order"},
		{"extra unknown", "band_pass", "ideal", map[string]float64{"cutoff": 5, "width": 1, "sigma": 1}, "sigma"},
		{"nan", "low_pass", "ideal", map[string]float64{"cutoff": math.NaN()}, "not finite"},
		{"zero cutoff gauss", "low_pass", "gauss", map[string]float64{"cutoff": 0}, "must be positive"},
		{"zero cutoff high gauss", "high_pass", "gauss", map[string]float64{"cutoff": 0}, "must be positive"},
		{"negative cutoff butterworth", "low_pass", "butterworth", map[string]float64{"cutoff": -2, "order": 2}, `"cutoff"`},
		{"zero width band gauss", "band_pass", "gauss", map[string]float64{"cutoff": 5, "width": 0}, `"width"`},
		{"zero width band ideal", "band_reject", "ideal", map[string]float64{"cutoff": 5, "width": 0}, `"width"`},
		{"zero width band butterworth", "band_pass", "butterworth", map[string]float64{"cutoff": 5, "width": 0, "order": 1}, `"width"`},
		{"zero cutoff ideal", "low_pass", "ideal", map[string]float64{"cutoff": 0}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Lookup(tt.family, tt.shape)
			require.NoError(t, err)
			resp, err := k.Bind(tt.opts)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrInvalidParams)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, resp)
		})
	}
}

func TestBind_MatchesScalarFunctions(t *testing.T) {
	k, err := Get(BandPass, Butterworth)
	require.NoError(t, err)
	resp, err := k.Bind(map[string]float64{"cutoff": 10, "width": 3, "order": 2})
	require.NoError(t, err)
	for _, d := range []float64{0, 1, 9, 10, 11, 30} {
		assert.Equal(t, BandPassButterworth(d, 10, 3, 2), resp(d))
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, name := range familyNames {
		f, err := ParseFamily(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}
	for _, name := range shapeNames {
		s, err := ParseShape(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}
}
