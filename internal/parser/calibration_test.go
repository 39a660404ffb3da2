package parser

import (
	"math"
	"testing"
)

func TestCommonPowerOfTen(t *testing.T) {
	tests := []struct {
		a, b int
		want int
	}{
		{0, 0, 10000},
		{-1100000, 0, 10000},
		{1000, 20000, 1000},
		{500, 1000, 100},
		{5, 2000, 1},
		{-30, 70, 10},
		{123456789, 10, 1},
	}
	for _, tt := range tests {
		if got := commonPowerOfTen(tt.a, tt.b); got != tt.want {
			t.Errorf("commonPowerOfTen(%d, %d): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
}

func calibratedHeader(element byte, levels ...testLevel) testHeader {
	th := polarHeader()
	th.element = element
	th.calUnit = "K"
	th.levels = levels
	return th
}

func TestParseCalibration(t *testing.T) {
	p := decodeHeader(t, calibratedHeader(4,
		testLevel{minB: 0, maxB: 100, minD: -1100000, maxD: 0},
		testLevel{minB: 101, maxB: 200, minD: 5, maxD: 2000},
	))

	c := p.Calibration
	if c == nil {
		t.Fatal("Expected calibration table")
	}
	if c.Unit != "K" {
		t.Errorf("Expected unit K, got %q", c.Unit)
	}
	if len(c.Levels) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(c.Levels))
	}
	if c.Levels[0].Scale != 10000 {
		t.Errorf("Expected scale 10000, got %v", c.Levels[0].Scale)
	}
	if p.Layout.Type != DataTypeFloat {
		t.Errorf("Expected float layout for calibrated product, got %v", p.Layout.Type)
	}
	if v, ok := p.Attribute("calibration_levels"); !ok || v != 2 {
		t.Errorf("Expected calibration_levels 2, got %v", v)
	}

	tests := []struct {
		b    byte
		want float64
	}{
		{0, -110},
		{50, -55},
		{100, 0},
		{101, 0.0005},
		{200, 0.2},
	}
	for _, tt := range tests {
		if got := c.Value(tt.b); math.Abs(float64(got)-tt.want) > 1e-5 {
			t.Errorf("Value(%d): expected %v, got %v", tt.b, tt.want, got)
		}
	}
	if got := c.Value(250); !math.IsNaN(float64(got)) {
		t.Errorf("Expected NaN outside every level, got %v", got)
	}

	out := c.Convert([]byte{0, 100, 250})
	if len(out) != 3 || out[0] != c.Value(0) || out[1] != c.Value(100) || !math.IsNaN(float64(out[2])) {
		t.Errorf("Convert mismatch: %v", out)
	}
}

// TestCalibrationScale checks that the derived scale divides every level's
// stored bounds and never exceeds 10000.
func TestCalibrationScale(t *testing.T) {
	cases := [][]testLevel{
		{{0, 255, 0, 2550000}},
		{{0, 127, -900000, 400000}, {128, 255, 400000, 1230000}},
		{{0, 10, 15, 25}},
		{{0, 10, 120, 3400}, {11, 20, 3400, 90000}},
		{{0, 255, 0, 0}},
	}

	for i, levels := range cases {
		p := decodeHeader(t, calibratedHeader(4, levels...))
		c := p.Calibration
		for j, l := range c.Levels {
			if l.Scale > 10000 || l.Scale < 1 {
				t.Errorf("case %d level %d: scale %v out of range", i, j, l.Scale)
			}
			divisor := 10000 / l.Scale
			raw := levels[j]
			if float64(raw.minD)/divisor != l.MinData || float64(raw.maxD)/divisor != l.MaxData {
				t.Errorf("case %d level %d: %v/%v not exactly divisible by %v", i, j, raw.minD, raw.maxD, divisor)
			}
			// The physical value is independent of the chosen scale.
			if got, want := l.MinData/l.Scale, float64(raw.minD)/10000; math.Abs(got-want) > 1e-9 {
				t.Errorf("case %d level %d: expected min value %v, got %v", i, j, want, got)
			}
		}
	}
}

func TestCalibrationPrecipitationScale(t *testing.T) {
	// Element 27 on a satellite entity is rain rate.
	p := decodeHeader(t, calibratedHeader(27, testLevel{minB: 0, maxB: 255, minD: 0, maxD: 2550000}))
	if !p.PhysicalElement.Precipitation {
		t.Fatal("Expected precipitation element")
	}
	if got := p.Calibration.Levels[0].Scale; got != 100 {
		t.Errorf("Expected scale 100 for precipitation, got %v", got)
	}

	p = decodeHeader(t, calibratedHeader(4, testLevel{minB: 0, maxB: 255, minD: 0, maxD: 2550000}))
	if got := p.Calibration.Levels[0].Scale; got != 1 {
		t.Errorf("Expected scale 1, got %v", got)
	}
}

func TestCalibrationEqualBrightness(t *testing.T) {
	c := &CalibrationTable{Levels: []CalibrationLevel{
		{MinData: 42, MaxData: 99, MinBrightness: 7, MaxBrightness: 7, Scale: 1},
	}}
	if got := c.Value(7); got != 42 {
		t.Errorf("Expected 42, got %v", got)
	}
}
