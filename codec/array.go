package codec

import (
	"fmt"
	"strings"

	"git.enflame.cn/hai.bai/tdgen/assert"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/x448/float16"
)

// Element lists the Go types an Array can hold.
type Element interface {
	float32 | float64 | float16.Float16 |
		int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		bool | string
}

// Array is a dense row-major tensor value. Data holds a []T matching DType.
type Array struct {
	DType onnxpb.DataType
	Dims  []int64
	Data  any
}

func (*Array) Kind() onnxpb.ElemType { return onnxpb.ElemTypeTensor }

// DTypeOf maps an element type to its ONNX data type.
func DTypeOf[T Element]() onnxpb.DataType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return onnxpb.DataTypeFloat
	case float64:
		return onnxpb.DataTypeDouble
	case float16.Float16:
		return onnxpb.DataTypeFloat16
	case int8:
		return onnxpb.DataTypeInt8
	case int16:
		return onnxpb.DataTypeInt16
	case int32:
		return onnxpb.DataTypeInt32
	case int64:
		return onnxpb.DataTypeInt64
	case uint8:
		return onnxpb.DataTypeUint8
	case uint16:
		return onnxpb.DataTypeUint16
	case uint32:
		return onnxpb.DataTypeUint32
	case uint64:
		return onnxpb.DataTypeUint64
	case bool:
		return onnxpb.DataTypeBool
	case string:
		return onnxpb.DataTypeString
	}
	return onnxpb.DataTypeUndefined
}

// New wraps data as an array shaped dims; without dims the array is 1-D.
func New[T Element](data []T, dims ...int64) *Array {
	if len(dims) == 0 {
		dims = []int64{int64(len(data))}
	}
	return Make(data, dims)
}

// Make takes dims verbatim, so empty dims build a scalar.
func Make[T Element](data []T, dims []int64) *Array {
	a := &Array{DType: DTypeOf[T](), Dims: append([]int64{}, dims...), Data: data}
	assert.Assert(int64(len(data)) == a.Size(),
		"array of %d elements cannot be shaped %v", len(data), dims)
	return a
}

// Scalar is a rank-0 array.
func Scalar[T Element](v T) *Array {
	return Make([]T{v}, nil)
}

// Zeros is an array of zero values shaped dims.
func Zeros[T Element](dims ...int64) *Array {
	return Make(make([]T, product(dims)), dims)
}

// Values returns the typed backing slice of a.
func Values[T Element](a *Array) []T {
	data, ok := a.Data.([]T)
	assert.Assert(ok, "array holds %T, not []%v", a.Data, DTypeOf[T]())
	return data
}

func product(dims []int64) int64 {
	n := int64(1)
	for _, d := range dims {
		n *= d
	}
	return n
}

// Size is the number of elements, 1 for a scalar.
func (a *Array) Size() int64 {
	return product(a.Dims)
}

// Rank is the number of dimensions.
func (a *Array) Rank() int {
	return len(a.Dims)
}

// Shape returns Dims as ints for index arithmetic.
func (a *Array) Shape() []int {
	shape := make([]int, len(a.Dims))
	for i, d := range a.Dims {
		shape[i] = int(d)
	}
	return shape
}

// Reshape returns an array sharing a's data with new dims.
func (a *Array) Reshape(dims ...int64) *Array {
	assert.Assert(product(dims) == a.Size(), "cannot reshape %v into %v", a.Dims, dims)
	return &Array{DType: a.DType, Dims: append([]int64{}, dims...), Data: a.Data}
}

func (a *Array) String() string {
	dims := make([]string, len(a.Dims))
	for i, d := range a.Dims {
		dims[i] = fmt.Sprint(d)
	}
	return fmt.Sprintf("%v[%s]", a.DType, strings.Join(dims, ","))
}
