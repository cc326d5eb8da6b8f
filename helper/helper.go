// Package helper builds ONNX models for operator test cases.
package helper

import (
	"sort"

	"git.enflame.cn/hai.bai/tdgen/assert"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
)

const (
	// IRVersion written into every model.
	IRVersion = 8
	// DefaultOpsetVersion of the ai.onnx domain.
	DefaultOpsetVersion = 16
	// Producer written into every model.
	Producer = "backend-test"

	DomainML        = "ai.onnx.ml"
	DomainMicrosoft = "com.microsoft"
)

// Attrs are node attributes keyed by name. They are emitted sorted by name;
// nil values are skipped.
type Attrs map[string]any

type NodeOption func(n *onnxpb.NodeProto)

func NodeName(name string) NodeOption {
	return func(n *onnxpb.NodeProto) {
		n.Name = name
	}
}

func NodeDomain(domain string) NodeOption {
	return func(n *onnxpb.NodeProto) {
		n.Domain = domain
	}
}

func NodeDoc(doc string) NodeOption {
	return func(n *onnxpb.NodeProto) {
		n.DocString = doc
	}
}

// MakeNode builds a node. An empty string in inputs marks an omitted
// optional input.
func MakeNode(opType string, inputs, outputs []string, attrs Attrs, opts ...NodeOption) *onnxpb.NodeProto {
	n := &onnxpb.NodeProto{
		Input:  append([]string{}, inputs...),
		Output: append([]string{}, outputs...),
		OpType: opType,
	}
	for _, opt := range opts {
		opt(n)
	}
	names := make([]string, 0, len(attrs))
	for name, v := range attrs {
		if v != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		n.Attribute = append(n.Attribute, MakeAttribute(name, attrs[name]))
	}
	return n
}

// MakeAttribute infers the attribute type from the Go type of value.
// Unsupported types are a bug in the calling case and panic.
func MakeAttribute(name string, value any) *onnxpb.AttributeProto {
	a := &onnxpb.AttributeProto{Name: name}
	switch v := value.(type) {
	case float32:
		a.F, a.Type = v, onnxpb.AttributeTypeFloat
	case float64:
		a.F, a.Type = float32(v), onnxpb.AttributeTypeFloat
	case int:
		a.I, a.Type = int64(v), onnxpb.AttributeTypeInt
	case int64:
		a.I, a.Type = v, onnxpb.AttributeTypeInt
	case string:
		a.S, a.Type = []byte(v), onnxpb.AttributeTypeString
	case []byte:
		a.S, a.Type = append([]byte{}, v...), onnxpb.AttributeTypeString
	case *onnxpb.TensorProto:
		a.T, a.Type = v, onnxpb.AttributeTypeTensor
	case *onnxpb.GraphProto:
		a.G, a.Type = v, onnxpb.AttributeTypeGraph
	case *onnxpb.TypeProto:
		a.TP, a.Type = v, onnxpb.AttributeTypeTypeProto
	case []float32:
		a.Floats, a.Type = append([]float32{}, v...), onnxpb.AttributeTypeFloats
	case []float64:
		for _, f := range v {
			a.Floats = append(a.Floats, float32(f))
		}
		a.Type = onnxpb.AttributeTypeFloats
	case []int:
		for _, i := range v {
			a.Ints = append(a.Ints, int64(i))
		}
		a.Type = onnxpb.AttributeTypeInts
	case []int64:
		a.Ints, a.Type = append([]int64{}, v...), onnxpb.AttributeTypeInts
	case []string:
		for _, s := range v {
			a.Strings = append(a.Strings, []byte(s))
		}
		a.Type = onnxpb.AttributeTypeStrings
	case []*onnxpb.TensorProto:
		a.Tensors, a.Type = v, onnxpb.AttributeTypeTensors
	case []*onnxpb.GraphProto:
		a.Graphs, a.Type = v, onnxpb.AttributeTypeGraphs
	default:
		assert.Assert(false, "attribute %q: unsupported value type %T", name, value)
	}
	return a
}

// MakeGraph assembles nodes and the graph signature.
func MakeGraph(nodes []*onnxpb.NodeProto, name string, inputs, outputs []*onnxpb.ValueInfoProto,
	initializers ...*onnxpb.TensorProto) *onnxpb.GraphProto {
	return &onnxpb.GraphProto{
		Node:        nodes,
		Name:        name,
		Initializer: initializers,
		Input:       inputs,
		Output:      outputs,
	}
}

func MakeOpsetID(domain string, version int64) *onnxpb.OperatorSetIDProto {
	return &onnxpb.OperatorSetIDProto{Domain: domain, Version: version}
}

type ModelOption func(m *onnxpb.ModelProto)

// Opset imports domain at version. Importing the default domain replaces
// the default version.
func Opset(domain string, version int64) ModelOption {
	return func(m *onnxpb.ModelProto) {
		for _, o := range m.OpsetImport {
			if o.Domain == domain {
				o.Version = version
				return
			}
		}
		m.OpsetImport = append(m.OpsetImport, MakeOpsetID(domain, version))
	}
}

func ModelDoc(doc string) ModelOption {
	return func(m *onnxpb.ModelProto) {
		m.DocString = doc
	}
}

// MakeModel wraps graph with the default IR version, producer and an
// ai.onnx opset import.
func MakeModel(graph *onnxpb.GraphProto, opts ...ModelOption) *onnxpb.ModelProto {
	m := &onnxpb.ModelProto{
		IRVersion:    IRVersion,
		ProducerName: Producer,
		Graph:        graph,
		OpsetImport:  []*onnxpb.OperatorSetIDProto{MakeOpsetID("", DefaultOpsetVersion)},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MakeTensorTypeProto declares a tensor type. A nil shape leaves the rank
// unknown; an empty non-nil shape declares a scalar.
func MakeTensorTypeProto(elem onnxpb.DataType, shape []int64) *onnxpb.TypeProto {
	tt := &onnxpb.TensorTypeProto{ElemType: elem}
	if shape != nil {
		tt.Shape = &onnxpb.TensorShapeProto{}
		for _, d := range shape {
			tt.Shape.Dim = append(tt.Shape.Dim, &onnxpb.Dimension{DimValue: d})
		}
	}
	return &onnxpb.TypeProto{TensorType: tt}
}

func MakeSequenceTypeProto(elem *onnxpb.TypeProto) *onnxpb.TypeProto {
	return &onnxpb.TypeProto{SequenceType: &onnxpb.SequenceTypeProto{ElemType: elem}}
}

func MakeMapTypeProto(key onnxpb.DataType, value *onnxpb.TypeProto) *onnxpb.TypeProto {
	return &onnxpb.TypeProto{MapType: &onnxpb.MapTypeProto{KeyType: key, ValueType: value}}
}

func MakeOptionalTypeProto(elem *onnxpb.TypeProto) *onnxpb.TypeProto {
	return &onnxpb.TypeProto{OptionalType: &onnxpb.OptionalTypeProto{ElemType: elem}}
}

func MakeValueInfo(name string, t *onnxpb.TypeProto) *onnxpb.ValueInfoProto {
	return &onnxpb.ValueInfoProto{Name: name, Type: t}
}

func MakeTensorValueInfo(name string, elem onnxpb.DataType, shape []int64) *onnxpb.ValueInfoProto {
	return MakeValueInfo(name, MakeTensorTypeProto(elem, shape))
}

// MakeTensorSequenceValueInfo declares a sequence of tensors.
func MakeTensorSequenceValueInfo(name string, elem onnxpb.DataType, shape []int64) *onnxpb.ValueInfoProto {
	return MakeValueInfo(name, MakeSequenceTypeProto(MakeTensorTypeProto(elem, shape)))
}

// Scalar is the shape of a rank-0 tensor.
var Scalar = []int64{}
