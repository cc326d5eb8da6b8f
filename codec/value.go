// Package codec converts in-memory values to and from the ONNX data
// messages written into fixture files: tensors, sequences, maps and
// optionals.
package codec

import (
	"fmt"
	"strings"

	"git.enflame.cn/hai.bai/tdgen/onnxpb"
)

// Value is one of *Array, Sequence, *Map or Optional.
type Value interface {
	Kind() onnxpb.ElemType
}

// Sequence is an ordered list of values of one kind.
type Sequence []Value

func (Sequence) Kind() onnxpb.ElemType { return onnxpb.ElemTypeSequence }

// Map keeps its keys in insertion order. Exactly one of Keys and
// StringKeys is used, selected by KeyType.
type Map struct {
	KeyType    onnxpb.DataType
	Keys       []int64
	StringKeys []string
	Values     Sequence
}

func (*Map) Kind() onnxpb.ElemType { return onnxpb.ElemTypeMap }

// Int64Map builds a map keyed by int64.
func Int64Map(keys []int64, values ...Value) *Map {
	return &Map{KeyType: onnxpb.DataTypeInt64, Keys: keys, Values: values}
}

// StringMap builds a map keyed by string.
func StringMap(keys []string, values ...Value) *Map {
	return &Map{KeyType: onnxpb.DataTypeString, StringKeys: keys, Values: values}
}

// Len is the number of entries.
func (m *Map) Len() int {
	if m.KeyType == onnxpb.DataTypeString {
		return len(m.StringKeys)
	}
	return len(m.Keys)
}

// Optional holds zero or one value.
type Optional struct {
	Elem Value
}

func (Optional) Kind() onnxpb.ElemType { return onnxpb.ElemTypeOptional }

// Some wraps v.
func Some(v Value) Optional { return Optional{Elem: v} }

// None is the empty optional.
func None() Optional { return Optional{} }

// HasElement reports whether o holds a value.
func (o Optional) HasElement() bool { return o.Elem != nil }

// Describe renders a one-line summary of v, e.g. "seq(FLOAT[2,3] x4)".
func Describe(v Value) string {
	switch v := v.(type) {
	case *Array:
		return v.String()
	case Sequence:
		if len(v) == 0 {
			return "seq()"
		}
		return fmt.Sprintf("seq(%s x%d)", Describe(v[0]), len(v))
	case *Map:
		if len(v.Values) == 0 {
			return fmt.Sprintf("map(%v)", v.KeyType)
		}
		return fmt.Sprintf("map(%v -> %s x%d)", v.KeyType, Describe(v.Values[0]), v.Len())
	case Optional:
		if !v.HasElement() {
			return "optional(none)"
		}
		return fmt.Sprintf("optional(%s)", Describe(v.Elem))
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

// DescribeAll joins the summaries of vs.
func DescribeAll(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = Describe(v)
	}
	return strings.Join(parts, ", ")
}
