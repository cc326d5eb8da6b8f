package onnxpb

import "google.golang.org/protobuf/encoding/protowire"

// TensorProto is a serialized tensor value.
//
// RawData is written whenever it is non-nil, so an empty tensor keeps an
// empty raw_data field.
type TensorProto struct {
	Dims       []int64
	DataType   DataType
	FloatData  []float32
	Int32Data  []int32
	StringData [][]byte
	Int64Data  []int64
	Name       string
	RawData    []byte
	DoubleData []float64
	Uint64Data []uint64
	DocString  string
}

func (m *TensorProto) appendFields(b []byte) []byte {
	b = appendInt64s(b, 1, m.Dims)
	if m.DataType != DataTypeUndefined {
		b = appendInt32(b, 2, int32(m.DataType))
	}
	b = appendPackedFloats(b, 4, m.FloatData)
	b = appendPackedInt32s(b, 5, m.Int32Data)
	for _, s := range m.StringData {
		b = appendBytes(b, 6, s)
	}
	b = appendPackedInt64s(b, 7, m.Int64Data)
	if m.Name != "" {
		b = appendString(b, 8, m.Name)
	}
	if m.RawData != nil {
		b = appendBytes(b, 9, m.RawData)
	}
	b = appendPackedDoubles(b, 10, m.DoubleData)
	b = appendPackedUint64s(b, 11, m.Uint64Data)
	if m.DocString != "" {
		b = appendString(b, 12, m.DocString)
	}
	return b
}

func (m *TensorProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		return consumeInt64s(typ, b, &m.Dims)
	case 2:
		v, n, err := consumeVarint(typ, b)
		m.DataType = DataType(int32(v))
		return n, err
	case 4:
		return consumeFloats(typ, b, &m.FloatData)
	case 5:
		return consumeInt32s(typ, b, &m.Int32Data)
	case 6:
		v, n, err := consumeBytes(typ, b)
		if err == nil {
			m.StringData = append(m.StringData, v)
		}
		return n, err
	case 7:
		return consumeInt64s(typ, b, &m.Int64Data)
	case 8:
		v, n, err := consumeString(typ, b)
		m.Name = v
		return n, err
	case 9:
		v, n, err := consumeBytes(typ, b)
		m.RawData = v
		return n, err
	case 10:
		return consumeDoubles(typ, b, &m.DoubleData)
	case 11:
		return consumeUint64s(typ, b, &m.Uint64Data)
	case 12:
		v, n, err := consumeString(typ, b)
		m.DocString = v
		return n, err
	}
	return skipField(num, typ, b)
}

// NumElements is the product of Dims; 1 for a scalar.
func (m *TensorProto) NumElements() int64 {
	n := int64(1)
	for _, d := range m.Dims {
		n *= d
	}
	return n
}
