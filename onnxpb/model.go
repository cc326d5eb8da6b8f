package onnxpb

import "google.golang.org/protobuf/encoding/protowire"

type ModelProto struct {
	IRVersion       int64
	ProducerName    string
	ProducerVersion string
	Domain          string
	ModelVersion    int64
	DocString       string
	Graph           *GraphProto
	OpsetImport     []*OperatorSetIDProto
}

func (m *ModelProto) appendFields(b []byte) []byte {
	if m.IRVersion != 0 {
		b = appendInt64(b, 1, m.IRVersion)
	}
	if m.ProducerName != "" {
		b = appendString(b, 2, m.ProducerName)
	}
	if m.ProducerVersion != "" {
		b = appendString(b, 3, m.ProducerVersion)
	}
	if m.Domain != "" {
		b = appendString(b, 4, m.Domain)
	}
	if m.ModelVersion != 0 {
		b = appendInt64(b, 5, m.ModelVersion)
	}
	if m.DocString != "" {
		b = appendString(b, 6, m.DocString)
	}
	if m.Graph != nil {
		b = appendMessage(b, 7, m.Graph)
	}
	for _, o := range m.OpsetImport {
		b = appendMessage(b, 8, o)
	}
	return b
}

func (m *ModelProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n, err := consumeVarint(typ, b)
		m.IRVersion = int64(v)
		return n, err
	case 2:
		v, n, err := consumeString(typ, b)
		m.ProducerName = v
		return n, err
	case 3:
		v, n, err := consumeString(typ, b)
		m.ProducerVersion = v
		return n, err
	case 4:
		v, n, err := consumeString(typ, b)
		m.Domain = v
		return n, err
	case 5:
		v, n, err := consumeVarint(typ, b)
		m.ModelVersion = int64(v)
		return n, err
	case 6:
		v, n, err := consumeString(typ, b)
		m.DocString = v
		return n, err
	case 7:
		m.Graph = new(GraphProto)
		return consumeMessage(typ, b, m.Graph)
	case 8:
		o := new(OperatorSetIDProto)
		n, err := consumeMessage(typ, b, o)
		m.OpsetImport = append(m.OpsetImport, o)
		return n, err
	}
	return skipField(num, typ, b)
}

// OperatorSetIDProto always carries its domain, the empty string being the
// default ai.onnx domain.
type OperatorSetIDProto struct {
	Domain  string
	Version int64
}

func (m *OperatorSetIDProto) appendFields(b []byte) []byte {
	b = appendString(b, 1, m.Domain)
	return appendInt64(b, 2, m.Version)
}

func (m *OperatorSetIDProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n, err := consumeString(typ, b)
		m.Domain = v
		return n, err
	case 2:
		v, n, err := consumeVarint(typ, b)
		m.Version = int64(v)
		return n, err
	}
	return skipField(num, typ, b)
}

type GraphProto struct {
	Node        []*NodeProto
	Name        string
	Initializer []*TensorProto
	DocString   string
	Input       []*ValueInfoProto
	Output      []*ValueInfoProto
	ValueInfo   []*ValueInfoProto
}

func (m *GraphProto) appendFields(b []byte) []byte {
	for _, n := range m.Node {
		b = appendMessage(b, 1, n)
	}
	if m.Name != "" {
		b = appendString(b, 2, m.Name)
	}
	for _, t := range m.Initializer {
		b = appendMessage(b, 5, t)
	}
	if m.DocString != "" {
		b = appendString(b, 10, m.DocString)
	}
	for _, v := range m.Input {
		b = appendMessage(b, 11, v)
	}
	for _, v := range m.Output {
		b = appendMessage(b, 12, v)
	}
	for _, v := range m.ValueInfo {
		b = appendMessage(b, 13, v)
	}
	return b
}

func (m *GraphProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v := new(NodeProto)
		n, err := consumeMessage(typ, b, v)
		m.Node = append(m.Node, v)
		return n, err
	case 2:
		v, n, err := consumeString(typ, b)
		m.Name = v
		return n, err
	case 5:
		v := new(TensorProto)
		n, err := consumeMessage(typ, b, v)
		m.Initializer = append(m.Initializer, v)
		return n, err
	case 10:
		v, n, err := consumeString(typ, b)
		m.DocString = v
		return n, err
	case 11, 12, 13:
		v := new(ValueInfoProto)
		n, err := consumeMessage(typ, b, v)
		switch num {
		case 11:
			m.Input = append(m.Input, v)
		case 12:
			m.Output = append(m.Output, v)
		default:
			m.ValueInfo = append(m.ValueInfo, v)
		}
		return n, err
	}
	return skipField(num, typ, b)
}

// OpTypes lists the op_type of every node, in node order.
func (m *GraphProto) OpTypes() []string {
	ops := make([]string, 0, len(m.Node))
	for _, n := range m.Node {
		ops = append(ops, n.OpType)
	}
	return ops
}

type NodeProto struct {
	Input     []string
	Output    []string
	Name      string
	OpType    string
	Attribute []*AttributeProto
	DocString string
	Domain    string
}

func (m *NodeProto) appendFields(b []byte) []byte {
	for _, s := range m.Input {
		b = appendString(b, 1, s)
	}
	for _, s := range m.Output {
		b = appendString(b, 2, s)
	}
	if m.Name != "" {
		b = appendString(b, 3, m.Name)
	}
	if m.OpType != "" {
		b = appendString(b, 4, m.OpType)
	}
	for _, a := range m.Attribute {
		b = appendMessage(b, 5, a)
	}
	if m.DocString != "" {
		b = appendString(b, 6, m.DocString)
	}
	if m.Domain != "" {
		b = appendString(b, 7, m.Domain)
	}
	return b
}

func (m *NodeProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1, 2:
		v, n, err := consumeString(typ, b)
		if err != nil {
			return 0, err
		}
		if num == 1 {
			m.Input = append(m.Input, v)
		} else {
			m.Output = append(m.Output, v)
		}
		return n, nil
	case 3:
		v, n, err := consumeString(typ, b)
		m.Name = v
		return n, err
	case 4:
		v, n, err := consumeString(typ, b)
		m.OpType = v
		return n, err
	case 5:
		a := new(AttributeProto)
		n, err := consumeMessage(typ, b, a)
		m.Attribute = append(m.Attribute, a)
		return n, err
	case 6:
		v, n, err := consumeString(typ, b)
		m.DocString = v
		return n, err
	case 7:
		v, n, err := consumeString(typ, b)
		m.Domain = v
		return n, err
	}
	return skipField(num, typ, b)
}

// AttributeProto writes the scalar slot selected by Type even when it holds
// the zero value, so axis=0 is not lost.
type AttributeProto struct {
	Name      string
	F         float32
	I         int64
	S         []byte
	T         *TensorProto
	G         *GraphProto
	Floats    []float32
	Ints      []int64
	Strings   [][]byte
	Tensors   []*TensorProto
	Graphs    []*GraphProto
	DocString string
	TP        *TypeProto
	Type      AttributeType
}

func (m *AttributeProto) appendFields(b []byte) []byte {
	if m.Name != "" {
		b = appendString(b, 1, m.Name)
	}
	if m.Type == AttributeTypeFloat || m.F != 0 {
		b = appendFloat(b, 2, m.F)
	}
	if m.Type == AttributeTypeInt || m.I != 0 {
		b = appendInt64(b, 3, m.I)
	}
	if m.Type == AttributeTypeString || m.S != nil {
		b = appendBytes(b, 4, m.S)
	}
	if m.T != nil {
		b = appendMessage(b, 5, m.T)
	}
	if m.G != nil {
		b = appendMessage(b, 6, m.G)
	}
	b = appendFloats(b, 7, m.Floats)
	b = appendInt64s(b, 8, m.Ints)
	for _, s := range m.Strings {
		b = appendBytes(b, 9, s)
	}
	for _, t := range m.Tensors {
		b = appendMessage(b, 10, t)
	}
	for _, g := range m.Graphs {
		b = appendMessage(b, 11, g)
	}
	if m.DocString != "" {
		b = appendString(b, 13, m.DocString)
	}
	if m.TP != nil {
		b = appendMessage(b, 14, m.TP)
	}
	if m.Type != AttributeTypeUndefined {
		b = appendInt32(b, 20, int32(m.Type))
	}
	return b
}

func (m *AttributeProto) unmarshalField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	switch num {
	case 1:
		v, n, err := consumeString(typ, b)
		m.Name = v
		return n, err
	case 2:
		v, n, err := consumeFloat(typ, b)
		m.F = v
		return n, err
	case 3:
		v, n, err := consumeVarint(typ, b)
		m.I = int64(v)
		return n, err
	case 4:
		v, n, err := consumeBytes(typ, b)
		m.S = v
		return n, err
	case 5:
		m.T = new(TensorProto)
		return consumeMessage(typ, b, m.T)
	case 6:
		m.G = new(GraphProto)
		return consumeMessage(typ, b, m.G)
	case 7:
		return consumeFloats(typ, b, &m.Floats)
	case 8:
		return consumeInt64s(typ, b, &m.Ints)
	case 9:
		v, n, err := consumeBytes(typ, b)
		if err == nil {
			m.Strings = append(m.Strings, v)
		}
		return n, err
	case 10:
		t := new(TensorProto)
		n, err := consumeMessage(typ, b, t)
		m.Tensors = append(m.Tensors, t)
		return n, err
	case 11:
		g := new(GraphProto)
		n, err := consumeMessage(typ, b, g)
		m.Graphs = append(m.Graphs, g)
		return n, err
	case 13:
		v, n, err := consumeString(typ, b)
		m.DocString = v
		return n, err
	case 14:
		m.TP = new(TypeProto)
		return consumeMessage(typ, b, m.TP)
	case 20:
		v, n, err := consumeVarint(typ, b)
		m.Type = AttributeType(int32(v))
		return n, err
	}
	return skipField(num, typ, b)
}
