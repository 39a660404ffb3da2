package gini

import (
	"fmt"
)

// Section selects a strided sub-block of an array. The section never
// reduces rank: the result has len(Shape) dimensions even where a
// dimension has length 1.
type Section struct {
	Origin []int // first index in each dimension
	Shape  []int // number of elements taken in each dimension
	Stride []int // step in each dimension; nil means 1 everywhere
}

// FullSection returns the section covering an entire array of the given
// shape.
func FullSection(shape []int) Section {
	origin := make([]int, len(shape))
	stride := make([]int, len(shape))
	for i := range stride {
		stride[i] = 1
	}
	return Section{Origin: origin, Shape: append([]int(nil), shape...), Stride: stride}
}

// validate checks the section against an array shape and returns the
// effective stride.
func (s Section) validate(shape []int) ([]int, error) {
	rank := len(shape)
	if len(s.Origin) != rank || len(s.Shape) != rank {
		return nil, &SectionError{Dim: -1, Reason: fmt.Sprintf(
			"rank %d array given origin of length %d and shape of length %d", rank, len(s.Origin), len(s.Shape))}
	}
	stride := s.Stride
	if stride == nil {
		stride = make([]int, rank)
		for i := range stride {
			stride[i] = 1
		}
	} else if len(stride) != rank {
		return nil, &SectionError{Dim: -1, Reason: fmt.Sprintf(
			"rank %d array given stride of length %d", rank, len(stride))}
	}

	for d := 0; d < rank; d++ {
		switch {
		case s.Origin[d] < 0:
			return nil, &SectionError{Dim: d, Reason: fmt.Sprintf("negative origin %d", s.Origin[d])}
		case s.Shape[d] < 1:
			return nil, &SectionError{Dim: d, Reason: fmt.Sprintf("shape %d must be at least 1", s.Shape[d])}
		case stride[d] < 1:
			return nil, &SectionError{Dim: d, Reason: fmt.Sprintf("stride %d must be at least 1", stride[d])}
		}
		if last := s.Origin[d] + (s.Shape[d]-1)*stride[d]; last >= shape[d] {
			return nil, &SectionError{Dim: d, Reason: fmt.Sprintf(
				"last index %d exceeds length %d", last, shape[d])}
		}
	}
	return stride, nil
}

// Array is a row-major n-dimensional array of bytes or float32 values.
type Array struct {
	shape  []int
	dtype  DataType
	bytes  []byte
	floats []float32
}

// NewByteArray wraps data as a byte array of the given shape.
func NewByteArray(shape []int, data []byte) (*Array, error) {
	if n := numElements(shape); n != len(data) {
		return nil, fmt.Errorf("shape %v holds %d elements, got %d bytes", shape, n, len(data))
	}
	return &Array{shape: append([]int(nil), shape...), dtype: DataTypeByte, bytes: data}, nil
}

// NewFloatArray wraps data as a float32 array of the given shape.
func NewFloatArray(shape []int, data []float32) (*Array, error) {
	if n := numElements(shape); n != len(data) {
		return nil, fmt.Errorf("shape %v holds %d elements, got %d values", shape, n, len(data))
	}
	return &Array{shape: append([]int(nil), shape...), dtype: DataTypeFloat, floats: data}, nil
}

// Shape returns a copy of the array dimensions.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// DataType returns the element type.
func (a *Array) DataType() DataType { return a.dtype }

// Len returns the number of elements.
func (a *Array) Len() int { return numElements(a.shape) }

// Bytes returns the backing bytes of a byte array, or nil for a float
// array.
func (a *Array) Bytes() []byte { return a.bytes }

// Float32s returns the elements as float32. Byte arrays are converted;
// float arrays return their backing slice.
func (a *Array) Float32s() []float32 {
	if a.dtype == DataTypeFloat {
		return a.floats
	}
	out := make([]float32, len(a.bytes))
	for i, b := range a.bytes {
		out[i] = float32(b)
	}
	return out
}

// Float64s returns the elements as float64.
func (a *Array) Float64s() []float64 {
	out := make([]float64, a.Len())
	if a.dtype == DataTypeFloat {
		for i, v := range a.floats {
			out[i] = float64(v)
		}
		return out
	}
	for i, b := range a.bytes {
		out[i] = float64(b)
	}
	return out
}

// ByteAt returns the element at idx of a byte array. It panics when idx is
// out of range or the array holds floats.
func (a *Array) ByteAt(idx ...int) byte {
	if a.dtype != DataTypeByte {
		panic("gini: ByteAt on float array")
	}
	return a.bytes[a.offset(idx)]
}

// FloatAt returns the element at idx as float32. It panics when idx is out
// of range.
func (a *Array) FloatAt(idx ...int) float32 {
	if a.dtype == DataTypeFloat {
		return a.floats[a.offset(idx)]
	}
	return float32(a.bytes[a.offset(idx)])
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("gini: index of rank %d on array of rank %d", len(idx), len(a.shape)))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			panic(fmt.Sprintf("gini: index %d out of range [0,%d) in dimension %d", i, a.shape[d], d))
		}
		off = off*a.shape[d] + i
	}
	return off
}

// Section copies the elements selected by s into a new array.
func (a *Array) Section(s Section) (*Array, error) {
	stride, err := s.validate(a.shape)
	if err != nil {
		return nil, err
	}

	out := &Array{shape: append([]int(nil), s.Shape...), dtype: a.dtype}
	n := numElements(s.Shape)
	if a.dtype == DataTypeFloat {
		out.floats = make([]float32, 0, n)
	} else {
		out.bytes = make([]byte, 0, n)
	}

	// Row-major strides of the source.
	rank := len(a.shape)
	step := make([]int, rank)
	step[rank-1] = 1
	for d := rank - 2; d >= 0; d-- {
		step[d] = step[d+1] * a.shape[d+1]
	}

	counter := make([]int, rank)
	for k := 0; k < n; k++ {
		off := 0
		for d := 0; d < rank; d++ {
			off += (s.Origin[d] + counter[d]*stride[d]) * step[d]
		}
		if a.dtype == DataTypeFloat {
			out.floats = append(out.floats, a.floats[off])
		} else {
			out.bytes = append(out.bytes, a.bytes[off])
		}

		for d := rank - 1; d >= 0; d-- {
			counter[d]++
			if counter[d] < s.Shape[d] {
				break
			}
			counter[d] = 0
		}
	}
	return out, nil
}

func numElements(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}
