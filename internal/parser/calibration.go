package parser

import (
	"math"
	"strings"
)

const (
	calibrationUnitOffset  = 47
	calibrationUnitLength  = 8
	calibrationCountOffset = 55
	calibrationLevelOffset = 56
	calibrationLevelStride = 20 // five 4-byte fields, the last unused

	maxCalibrationScale    = 10000
	precipCalibrationScale = 100
)

// CalibrationLevel maps a brightness range linearly onto a data range.
// Physical values are (MinData + (b-MinBrightness)*slope) / Scale.
type CalibrationLevel struct {
	MinData, MaxData             float64
	MinBrightness, MaxBrightness int
	Scale                        float64
}

// CalibrationTable converts raw brightness bytes to physical values.
type CalibrationTable struct {
	Unit   string
	Levels []CalibrationLevel
}

// Value converts a brightness byte. Bytes outside every level are NaN.
func (c *CalibrationTable) Value(b byte) float32 {
	v := int(b)
	for _, l := range c.Levels {
		lo, hi := l.MinBrightness, l.MaxBrightness
		if lo > hi {
			lo, hi = hi, lo
		}
		if v < lo || v > hi {
			continue
		}
		if l.MaxBrightness == l.MinBrightness {
			return float32(l.MinData / l.Scale)
		}
		slope := (l.MaxData - l.MinData) / float64(l.MaxBrightness-l.MinBrightness)
		return float32((l.MinData + float64(v-l.MinBrightness)*slope) / l.Scale)
	}
	return float32(math.NaN())
}

// Convert maps every byte of raw through the table.
func (c *CalibrationTable) Convert(raw []byte) []float32 {
	var lut [256]float32
	for i := range lut {
		lut[i] = c.Value(byte(i))
	}
	out := make([]float32, len(raw))
	for i, b := range raw {
		out[i] = lut[b]
	}
	return out
}

type rawLevel struct {
	minB, maxB, minD, maxD int
}

// parseCalibration decodes the calibration block. Raw data values are in
// units of 1/10000; each level is stored divided by the largest power of ten
// (at most 10000) that divides every level's bounds, so Scale is the
// remaining divisor.
func parseCalibration(h []byte, element PhysicalElement) *CalibrationTable {
	unit := strings.TrimRight(string(h[calibrationUnitOffset:calibrationUnitOffset+calibrationUnitLength]), " \x00")
	count := int(h[calibrationCountOffset])
	if limit := (len(h) - calibrationLevelOffset) / calibrationLevelStride; count > limit {
		count = limit
	}

	raws := make([]rawLevel, count)
	divisor := maxCalibrationScale
	for i := range raws {
		off := calibrationLevelOffset + i*calibrationLevelStride
		r := rawLevel{
			minB: int32BE(h[off:]),
			maxB: int32BE(h[off+4:]),
			minD: int32BE(h[off+8:]),
			maxD: int32BE(h[off+12:]),
		}
		raws[i] = r
		if d := commonPowerOfTen(r.minD, r.maxD); d < divisor {
			divisor = d
		}
	}
	if element.Precipitation && divisor > precipCalibrationScale {
		divisor = precipCalibrationScale
	}

	table := &CalibrationTable{Unit: unit, Levels: make([]CalibrationLevel, count)}
	scale := float64(maxCalibrationScale / divisor)
	for i, r := range raws {
		table.Levels[i] = CalibrationLevel{
			MinData:       float64(r.minD / divisor),
			MaxData:       float64(r.maxD / divisor),
			MinBrightness: r.minB,
			MaxBrightness: r.maxB,
			Scale:         scale,
		}
	}
	return table
}

// commonPowerOfTen returns the largest of 10000, 1000, 100, 10, 1 dividing
// both a and b.
func commonPowerOfTen(a, b int) int {
	d := maxCalibrationScale
	for d > 1 && (a%d != 0 || b%d != 0) {
		d /= 10
	}
	return d
}
