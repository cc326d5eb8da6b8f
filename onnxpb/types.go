package onnxpb

import "google.golang.org/protobuf/encoding/protowire"

// Category names the kind of value a TypeProto declares.
type Category string

const (
	CategoryTensor   Category = "tensor"
	CategorySequence Category = "sequence"
	CategoryMap      Category = "map"
	CategoryOptional Category = "optional"
	CategoryUnknown  Category = "unknown"
)

// ValueInfoProto names and types a graph input, output or intermediate.
type ValueInfoProto struct {
	Name      string
	Type      *TypeProto
	DocString string
}

func (m *ValueInfoProto) appendFields(b []byte) []byte {
	if m.Name != "" {
		b = appendString(b, 1, m.Name)
	}
	if m.Type != nil {
		b = appendMessage(b, 2, m.Type)
	}
	if m.DocString != "" {
		b = appendString(b, 3, m.DocString)
	}
	return b
}

func (m *ValueInfoProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n, err := consumeString(typ, b)
		m.Name = v
		return n, err
	case 2:
		m.Type = new(TypeProto)
		return consumeMessage(typ, b, m.Type)
	case 3:
		v, n, err := consumeString(typ, b)
		m.DocString = v
		return n, err
	}
	return skipField(num, typ, b)
}

// TypeProto carries exactly one of its value kinds.
type TypeProto struct {
	TensorType   *TensorTypeProto
	SequenceType *SequenceTypeProto
	MapType      *MapTypeProto
	Denotation   string
	OptionalType *OptionalTypeProto
}

// Category reports which value kind m declares. Map, sequence and optional
// take precedence over tensor.
func (m *TypeProto) Category() Category {
	switch {
	case m == nil:
		return CategoryUnknown
	case m.MapType != nil:
		return CategoryMap
	case m.SequenceType != nil:
		return CategorySequence
	case m.OptionalType != nil:
		return CategoryOptional
	case m.TensorType != nil:
		return CategoryTensor
	}
	return CategoryUnknown
}

func (m *TypeProto) appendFields(b []byte) []byte {
	if m.TensorType != nil {
		b = appendMessage(b, 1, m.TensorType)
	}
	if m.SequenceType != nil {
		b = appendMessage(b, 4, m.SequenceType)
	}
	if m.MapType != nil {
		b = appendMessage(b, 5, m.MapType)
	}
	if m.Denotation != "" {
		b = appendString(b, 6, m.Denotation)
	}
	if m.OptionalType != nil {
		b = appendMessage(b, 9, m.OptionalType)
	}
	return b
}

func (m *TypeProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		m.TensorType = new(TensorTypeProto)
		return consumeMessage(typ, b, m.TensorType)
	case 4:
		m.SequenceType = new(SequenceTypeProto)
		return consumeMessage(typ, b, m.SequenceType)
	case 5:
		m.MapType = new(MapTypeProto)
		return consumeMessage(typ, b, m.MapType)
	case 6:
		v, n, err := consumeString(typ, b)
		m.Denotation = v
		return n, err
	case 9:
		m.OptionalType = new(OptionalTypeProto)
		return consumeMessage(typ, b, m.OptionalType)
	}
	return skipField(num, typ, b)
}

// TensorTypeProto is TypeProto.Tensor. A nil Shape means unknown rank; a
// non-nil Shape without dims is a scalar.
type TensorTypeProto struct {
	ElemType DataType
	Shape    *TensorShapeProto
}

func (m *TensorTypeProto) appendFields(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.ElemType))
	if m.Shape != nil {
		b = appendMessage(b, 2, m.Shape)
	}
	return b
}

func (m *TensorTypeProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n, err := consumeVarint(typ, b)
		m.ElemType = DataType(int32(v))
		return n, err
	case 2:
		m.Shape = new(TensorShapeProto)
		return consumeMessage(typ, b, m.Shape)
	}
	return skipField(num, typ, b)
}

// SequenceTypeProto is TypeProto.Sequence.
type SequenceTypeProto struct {
	ElemType *TypeProto
}

func (m *SequenceTypeProto) appendFields(b []byte) []byte {
	if m.ElemType != nil {
		b = appendMessage(b, 1, m.ElemType)
	}
	return b
}

func (m *SequenceTypeProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num == 1 {
		m.ElemType = new(TypeProto)
		return consumeMessage(typ, b, m.ElemType)
	}
	return skipField(num, typ, b)
}

// MapTypeProto is TypeProto.Map.
type MapTypeProto struct {
	KeyType   DataType
	ValueType *TypeProto
}

func (m *MapTypeProto) appendFields(b []byte) []byte {
	b = appendInt32(b, 1, int32(m.KeyType))
	if m.ValueType != nil {
		b = appendMessage(b, 2, m.ValueType)
	}
	return b
}

func (m *MapTypeProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n, err := consumeVarint(typ, b)
		m.KeyType = DataType(int32(v))
		return n, err
	case 2:
		m.ValueType = new(TypeProto)
		return consumeMessage(typ, b, m.ValueType)
	}
	return skipField(num, typ, b)
}

// OptionalTypeProto is TypeProto.Optional.
type OptionalTypeProto struct {
	ElemType *TypeProto
}

func (m *OptionalTypeProto) appendFields(b []byte) []byte {
	if m.ElemType != nil {
		b = appendMessage(b, 1, m.ElemType)
	}
	return b
}

func (m *OptionalTypeProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num == 1 {
		m.ElemType = new(TypeProto)
		return consumeMessage(typ, b, m.ElemType)
	}
	return skipField(num, typ, b)
}

type TensorShapeProto struct {
	Dim []*Dimension
}

func (m *TensorShapeProto) appendFields(b []byte) []byte {
	for _, d := range m.Dim {
		b = appendMessage(b, 1, d)
	}
	return b
}

func (m *TensorShapeProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	if num == 1 {
		d := new(Dimension)
		n, err := consumeMessage(typ, b, d)
		m.Dim = append(m.Dim, d)
		return n, err
	}
	return skipField(num, typ, b)
}

// Dimension is either a fixed DimValue or a symbolic DimParam.
type Dimension struct {
	DimValue   int64
	DimParam   string
	Denotation string
}

func (m *Dimension) appendFields(b []byte) []byte {
	if m.DimParam != "" {
		b = appendString(b, 2, m.DimParam)
	} else {
		b = appendInt64(b, 1, m.DimValue)
	}
	if m.Denotation != "" {
		b = appendString(b, 3, m.Denotation)
	}
	return b
}

func (m *Dimension) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n, err := consumeVarint(typ, b)
		m.DimValue = int64(v)
		return n, err
	case 2:
		v, n, err := consumeString(typ, b)
		m.DimParam = v
		return n, err
	case 3:
		v, n, err := consumeString(typ, b)
		m.Denotation = v
		return n, err
	}
	return skipField(num, typ, b)
}
