package onnxpb

import "google.golang.org/protobuf/encoding/protowire"

// SequenceProto is a serialized sequence value (onnx-data.proto).
type SequenceProto struct {
	Name           string
	ElemType       ElemType
	TensorValues   []*TensorProto
	SequenceValues []*SequenceProto
	MapValues      []*MapProto
	OptionalValues []*OptionalProto
}

func (m *SequenceProto) appendFields(b []byte) []byte {
	if m.Name != "" {
		b = appendString(b, 1, m.Name)
	}
	b = appendInt32(b, 2, int32(m.ElemType))
	for _, v := range m.TensorValues {
		b = appendMessage(b, 3, v)
	}
	for _, v := range m.SequenceValues {
		b = appendMessage(b, 5, v)
	}
	for _, v := range m.MapValues {
		b = appendMessage(b, 6, v)
	}
	for _, v := range m.OptionalValues {
		b = appendMessage(b, 7, v)
	}
	return b
}

func (m *SequenceProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n, err := consumeString(typ, b)
		m.Name = v
		return n, err
	case 2:
		v, n, err := consumeVarint(typ, b)
		m.ElemType = ElemType(int32(v))
		return n, err
	case 3:
		v := new(TensorProto)
		n, err := consumeMessage(typ, b, v)
		m.TensorValues = append(m.TensorValues, v)
		return n, err
	case 5:
		v := new(SequenceProto)
		n, err := consumeMessage(typ, b, v)
		m.SequenceValues = append(m.SequenceValues, v)
		return n, err
	case 6:
		v := new(MapProto)
		n, err := consumeMessage(typ, b, v)
		m.MapValues = append(m.MapValues, v)
		return n, err
	case 7:
		v := new(OptionalProto)
		n, err := consumeMessage(typ, b, v)
		m.OptionalValues = append(m.OptionalValues, v)
		return n, err
	}
	return skipField(num, typ, b)
}

// Len is the number of elements of the declared ElemType.
func (m *SequenceProto) Len() int {
	switch m.ElemType {
	case ElemTypeTensor:
		return len(m.TensorValues)
	case ElemTypeSequence:
		return len(m.SequenceValues)
	case ElemTypeMap:
		return len(m.MapValues)
	case ElemTypeOptional:
		return len(m.OptionalValues)
	}
	return 0
}

// MapProto is a serialized map value. Keys are either Keys (integral
// KeyType) or StringKeys; Values holds one element per key.
type MapProto struct {
	Name       string
	KeyType    DataType
	Keys       []int64
	StringKeys [][]byte
	Values     *SequenceProto
}

func (m *MapProto) appendFields(b []byte) []byte {
	if m.Name != "" {
		b = appendString(b, 1, m.Name)
	}
	b = appendInt32(b, 2, int32(m.KeyType))
	b = appendInt64s(b, 3, m.Keys)
	for _, k := range m.StringKeys {
		b = appendBytes(b, 4, k)
	}
	if m.Values != nil {
		b = appendMessage(b, 5, m.Values)
	}
	return b
}

func (m *MapProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n, err := consumeString(typ, b)
		m.Name = v
		return n, err
	case 2:
		v, n, err := consumeVarint(typ, b)
		m.KeyType = DataType(int32(v))
		return n, err
	case 3:
		return consumeInt64s(typ, b, &m.Keys)
	case 4:
		v, n, err := consumeBytes(typ, b)
		if err == nil {
			m.StringKeys = append(m.StringKeys, v)
		}
		return n, err
	case 5:
		m.Values = new(SequenceProto)
		return consumeMessage(typ, b, m.Values)
	}
	return skipField(num, typ, b)
}

// OptionalProto is a serialized optional value. An empty optional has
// ElemType UNDEFINED and no payload.
type OptionalProto struct {
	Name          string
	ElemType      ElemType
	TensorValue   *TensorProto
	SequenceValue *SequenceProto
	MapValue      *MapProto
	OptionalValue *OptionalProto
}

func (m *OptionalProto) appendFields(b []byte) []byte {
	if m.Name != "" {
		b = appendString(b, 1, m.Name)
	}
	b = appendInt32(b, 2, int32(m.ElemType))
	if m.TensorValue != nil {
		b = appendMessage(b, 3, m.TensorValue)
	}
	if m.SequenceValue != nil {
		b = appendMessage(b, 5, m.SequenceValue)
	}
	if m.MapValue != nil {
		b = appendMessage(b, 6, m.MapValue)
	}
	if m.OptionalValue != nil {
		b = appendMessage(b, 7, m.OptionalValue)
	}
	return b
}

func (m *OptionalProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n, err := consumeString(typ, b)
		m.Name = v
		return n, err
	case 2:
		v, n, err := consumeVarint(typ, b)
		m.ElemType = ElemType(int32(v))
		return n, err
	case 3:
		m.TensorValue = new(TensorProto)
		return consumeMessage(typ, b, m.TensorValue)
	case 5:
		m.SequenceValue = new(SequenceProto)
		return consumeMessage(typ, b, m.SequenceValue)
	case 6:
		m.MapValue = new(MapProto)
		return consumeMessage(typ, b, m.MapValue)
	case 7:
		m.OptionalValue = new(OptionalProto)
		return consumeMessage(typ, b, m.OptionalValue)
	}
	return skipField(num, typ, b)
}
