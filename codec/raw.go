package codec

import (
	"bytes"
	"encoding/binary"

	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// dataInfo reports the ONNX type and length of a typed slice.
func dataInfo(data any) (onnxpb.DataType, int, bool) {
	switch d := data.(type) {
	case []float32:
		return onnxpb.DataTypeFloat, len(d), true
	case []float64:
		return onnxpb.DataTypeDouble, len(d), true
	case []float16.Float16:
		return onnxpb.DataTypeFloat16, len(d), true
	case []int8:
		return onnxpb.DataTypeInt8, len(d), true
	case []int16:
		return onnxpb.DataTypeInt16, len(d), true
	case []int32:
		return onnxpb.DataTypeInt32, len(d), true
	case []int64:
		return onnxpb.DataTypeInt64, len(d), true
	case []uint8:
		return onnxpb.DataTypeUint8, len(d), true
	case []uint16:
		return onnxpb.DataTypeUint16, len(d), true
	case []uint32:
		return onnxpb.DataTypeUint32, len(d), true
	case []uint64:
		return onnxpb.DataTypeUint64, len(d), true
	case []bool:
		return onnxpb.DataTypeBool, len(d), true
	case []string:
		return onnxpb.DataTypeString, len(d), true
	}
	return onnxpb.DataTypeUndefined, 0, false
}

// encodeRaw lays data out little-endian. The result is never nil.
func encodeRaw(data any, size int) ([]byte, error) {
	if h, ok := data.([]float16.Float16); ok {
		bits := make([]uint16, len(h))
		for i, v := range h {
			bits[i] = v.Bits()
		}
		data = bits
	}
	buf := bytes.NewBuffer(make([]byte, 0, size))
	if err := binary.Write(buf, binary.LittleEndian, data); err != nil {
		return nil, errors.Wrap(err, "encode raw data")
	}
	return buf.Bytes(), nil
}

func readRaw[T any](raw []byte, n int64) (any, error) {
	out := make([]T, n)
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, out); err != nil {
		return nil, errors.Wrap(err, "decode raw data")
	}
	return out, nil
}

func decodeRaw(dt onnxpb.DataType, raw []byte, n int64) (any, error) {
	switch dt {
	case onnxpb.DataTypeFloat:
		return readRaw[float32](raw, n)
	case onnxpb.DataTypeDouble:
		return readRaw[float64](raw, n)
	case onnxpb.DataTypeFloat16:
		bits, err := readRaw[uint16](raw, n)
		if err != nil {
			return nil, err
		}
		return halfFromBits(bits.([]uint16)), nil
	case onnxpb.DataTypeInt8:
		return readRaw[int8](raw, n)
	case onnxpb.DataTypeInt16:
		return readRaw[int16](raw, n)
	case onnxpb.DataTypeInt32:
		return readRaw[int32](raw, n)
	case onnxpb.DataTypeInt64:
		return readRaw[int64](raw, n)
	case onnxpb.DataTypeUint8:
		return readRaw[uint8](raw, n)
	case onnxpb.DataTypeUint16:
		return readRaw[uint16](raw, n)
	case onnxpb.DataTypeUint32:
		return readRaw[uint32](raw, n)
	case onnxpb.DataTypeUint64:
		return readRaw[uint64](raw, n)
	case onnxpb.DataTypeBool:
		return readRaw[bool](raw, n)
	}
	return nil, errors.Wrapf(ErrUnsupportedType, "%v", dt)
}

func halfFromBits[T int32 | uint16](bits []T) []float16.Float16 {
	out := make([]float16.Float16, len(bits))
	for i, b := range bits {
		out[i] = float16.Frombits(uint16(b))
	}
	return out
}

func convertSlice[D, S int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64](src []S) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = D(v)
	}
	return out
}

// decodeTyped reads the typed *_data fields used when raw_data is absent.
func decodeTyped(tp *onnxpb.TensorProto) (any, int, error) {
	switch tp.DataType {
	case onnxpb.DataTypeFloat:
		return append([]float32{}, tp.FloatData...), len(tp.FloatData), nil
	case onnxpb.DataTypeDouble:
		return append([]float64{}, tp.DoubleData...), len(tp.DoubleData), nil
	case onnxpb.DataTypeInt64:
		return append([]int64{}, tp.Int64Data...), len(tp.Int64Data), nil
	case onnxpb.DataTypeUint32:
		return convertSlice[uint32](tp.Uint64Data), len(tp.Uint64Data), nil
	case onnxpb.DataTypeUint64:
		return append([]uint64{}, tp.Uint64Data...), len(tp.Uint64Data), nil
	case onnxpb.DataTypeInt32:
		return append([]int32{}, tp.Int32Data...), len(tp.Int32Data), nil
	case onnxpb.DataTypeInt16:
		return convertSlice[int16](tp.Int32Data), len(tp.Int32Data), nil
	case onnxpb.DataTypeInt8:
		return convertSlice[int8](tp.Int32Data), len(tp.Int32Data), nil
	case onnxpb.DataTypeUint16:
		return convertSlice[uint16](tp.Int32Data), len(tp.Int32Data), nil
	case onnxpb.DataTypeUint8:
		return convertSlice[uint8](tp.Int32Data), len(tp.Int32Data), nil
	case onnxpb.DataTypeFloat16:
		return halfFromBits(tp.Int32Data), len(tp.Int32Data), nil
	case onnxpb.DataTypeBool:
		out := make([]bool, len(tp.Int32Data))
		for i, v := range tp.Int32Data {
			out[i] = v != 0
		}
		return out, len(out), nil
	}
	return nil, 0, errors.Wrapf(ErrUnsupportedType, "%v", tp.DataType)
}
