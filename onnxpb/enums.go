package onnxpb

import "fmt"

// DataType mirrors TensorProto.DataType.
type DataType int32

const (
	DataTypeUndefined DataType = iota
	DataTypeFloat
	DataTypeUint8
	DataTypeInt8
	DataTypeUint16
	DataTypeInt16
	DataTypeInt32
	DataTypeInt64
	DataTypeString
	DataTypeBool
	DataTypeFloat16
	DataTypeDouble
	DataTypeUint32
	DataTypeUint64
	DataTypeComplex64
	DataTypeComplex128
	DataTypeBfloat16
)

var dataTypeNames = map[DataType]string{
	DataTypeUndefined:  "UNDEFINED",
	DataTypeFloat:      "FLOAT",
	DataTypeUint8:      "UINT8",
	DataTypeInt8:       "INT8",
	DataTypeUint16:     "UINT16",
	DataTypeInt16:      "INT16",
	DataTypeInt32:      "INT32",
	DataTypeInt64:      "INT64",
	DataTypeString:     "STRING",
	DataTypeBool:       "BOOL",
	DataTypeFloat16:    "FLOAT16",
	DataTypeDouble:     "DOUBLE",
	DataTypeUint32:     "UINT32",
	DataTypeUint64:     "UINT64",
	DataTypeComplex64:  "COMPLEX64",
	DataTypeComplex128: "COMPLEX128",
	DataTypeBfloat16:   "BFLOAT16",
}

func (dt DataType) String() string {
	if name, ok := dataTypeNames[dt]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", int32(dt))
}

// Size returns the raw_data width of one element, 0 for STRING and unknown types.
func (dt DataType) Size() int {
	switch dt {
	case DataTypeUint8, DataTypeInt8, DataTypeBool:
		return 1
	case DataTypeUint16, DataTypeInt16, DataTypeFloat16, DataTypeBfloat16:
		return 2
	case DataTypeFloat, DataTypeInt32, DataTypeUint32:
		return 4
	case DataTypeDouble, DataTypeInt64, DataTypeUint64, DataTypeComplex64:
		return 8
	case DataTypeComplex128:
		return 16
	}
	return 0
}

// IsIntegral reports whether dt is one of the integer types allowed as map keys.
func (dt DataType) IsIntegral() bool {
	switch dt {
	case DataTypeInt8, DataTypeInt16, DataTypeInt32, DataTypeInt64,
		DataTypeUint8, DataTypeUint16, DataTypeUint32, DataTypeUint64:
		return true
	}
	return false
}

// AttributeType mirrors AttributeProto.AttributeType.
type AttributeType int32

const (
	AttributeTypeUndefined     AttributeType = 0
	AttributeTypeFloat         AttributeType = 1
	AttributeTypeInt           AttributeType = 2
	AttributeTypeString        AttributeType = 3
	AttributeTypeTensor        AttributeType = 4
	AttributeTypeGraph         AttributeType = 5
	AttributeTypeFloats        AttributeType = 6
	AttributeTypeInts          AttributeType = 7
	AttributeTypeStrings       AttributeType = 8
	AttributeTypeTensors       AttributeType = 9
	AttributeTypeGraphs        AttributeType = 10
	AttributeTypeSparseTensor  AttributeType = 11
	AttributeTypeSparseTensors AttributeType = 12
	AttributeTypeTypeProto     AttributeType = 13
	AttributeTypeTypeProtos    AttributeType = 14
)

// ElemType is the element kind shared by SequenceProto and OptionalProto.
type ElemType int32

const (
	ElemTypeUndefined ElemType = iota
	ElemTypeTensor
	ElemTypeSparseTensor
	ElemTypeSequence
	ElemTypeMap
	ElemTypeOptional
)

func (et ElemType) String() string {
	switch et {
	case ElemTypeUndefined:
		return "UNDEFINED"
	case ElemTypeTensor:
		return "TENSOR"
	case ElemTypeSparseTensor:
		return "SPARSE_TENSOR"
	case ElemTypeSequence:
		return "SEQUENCE"
	case ElemTypeMap:
		return "MAP"
	case ElemTypeOptional:
		return "OPTIONAL"
	}
	return fmt.Sprintf("ElemType(%d)", int32(et))
}
