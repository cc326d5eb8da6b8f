package node

import (
	"git.enflame.cn/hai.bai/tdgen/assert"
	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/helper"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
)

// nodeCase is a single-node graph whose value infos are derived from the
// data. Types overrides the derived type of a value by name, which is
// needed for empty optionals and empty sequences.
type nodeCase struct {
	node    *onnxpb.NodeProto
	name    string
	inputs  []codec.Value
	outputs []codec.Value
	types   map[string]*onnxpb.TypeProto
	opsets  []helper.ModelOption
}

func (e *Expector) expectNode(c nodeCase) {
	inputs := valueInfos(c.node.Input, c.inputs, c.types)
	outputs := valueInfos(c.node.Output, c.outputs, c.types)
	graph := helper.MakeGraph([]*onnxpb.NodeProto{c.node}, c.name, inputs, outputs)
	e.Expect(helper.MakeModel(graph, c.opsets...), c.inputs, c.outputs, c.name)
}

// valueInfos pairs the non-empty names with values. Empty names stand for
// omitted optional inputs and get no graph input.
func valueInfos(names []string, values []codec.Value, types map[string]*onnxpb.TypeProto) []*onnxpb.ValueInfoProto {
	var infos []*onnxpb.ValueInfoProto
	for _, name := range names {
		if name == "" {
			continue
		}
		i := len(infos)
		assert.Assert(i < len(values), "no value for %q", name)
		t := types[name]
		if t == nil {
			t = typeOf(values[i], true)
		}
		infos = append(infos, helper.MakeValueInfo(name, t))
	}
	assert.Assert(len(infos) == len(values), "%d values for names %v", len(values), names)
	return infos
}

// typeOf derives a TypeProto from a value. Tensors nested in sequences,
// maps and optionals carry no shape since their elements may differ.
func typeOf(v codec.Value, withShape bool) *onnxpb.TypeProto {
	switch v := v.(type) {
	case *codec.Array:
		if !withShape {
			return helper.MakeTensorTypeProto(v.DType, nil)
		}
		return helper.MakeTensorTypeProto(v.DType, v.Dims)
	case codec.Sequence:
		assert.Assert(len(v) > 0, "cannot derive the type of an empty sequence")
		return helper.MakeSequenceTypeProto(typeOf(v[0], false))
	case *codec.Map:
		assert.Assert(len(v.Values) > 0, "cannot derive the type of an empty map")
		return helper.MakeMapTypeProto(v.KeyType, typeOf(v.Values[0], false))
	case codec.Optional:
		assert.Assert(v.HasElement(), "cannot derive the type of an empty optional")
		return helper.MakeOptionalTypeProto(typeOf(v.Elem, false))
	}
	assert.Assert(false, "cannot derive the type of %T", v)
	return nil
}

func values(vs ...codec.Value) []codec.Value {
	return vs
}
