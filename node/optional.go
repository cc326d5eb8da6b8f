package node

import (
	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/helper"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
)

func init() {
	Register("Optional", exportOptional)
	Register("OptionalHasElement", exportOptionalHasElement)
	Register("OptionalGetElement", exportOptionalGetElement)
}

var optionalFloat = helper.MakeOptionalTypeProto(helper.MakeTensorTypeProto(onnxpb.DataTypeFloat, nil))

func exportOptional(e *Expector) {
	x := randn(e.Rand(), 4)
	e.expectNode(nodeCase{
		node:    helper.MakeNode("Optional", []string{"x"}, []string{"opt"}, nil),
		name:    "test_optional_tensor",
		inputs:  values(x),
		outputs: values(codec.Some(x)),
	})

	seq := codec.Sequence{codec.New([]int32{1, 2, 3})}
	e.expectNode(nodeCase{
		node:    helper.MakeNode("Optional", []string{"x"}, []string{"opt"}, nil),
		name:    "test_optional_sequence",
		inputs:  values(seq),
		outputs: values(codec.Some(seq)),
	})

	e.expectNode(nodeCase{
		node: helper.MakeNode("Optional", nil, []string{"opt"},
			helper.Attrs{"type": helper.MakeTensorTypeProto(onnxpb.DataTypeFloat, nil)}),
		name:    "test_optional_empty",
		outputs: values(codec.None()),
		types:   map[string]*onnxpb.TypeProto{"opt": optionalFloat},
	})
}

func exportOptionalHasElement(e *Expector) {
	node := helper.MakeNode("OptionalHasElement", []string{"optional_input"}, []string{"output"}, nil)

	x := randn(e.Rand(), 2, 2)
	e.expectNode(nodeCase{
		node:    node,
		name:    "test_optional_has_element",
		inputs:  values(codec.Some(x)),
		outputs: values(codec.Scalar(true)),
	})

	e.expectNode(nodeCase{
		node:    node,
		name:    "test_optional_has_element_empty",
		inputs:  values(codec.None()),
		outputs: values(codec.Scalar(false)),
		types:   map[string]*onnxpb.TypeProto{"optional_input": optionalFloat},
	})
}

func exportOptionalGetElement(e *Expector) {
	node := helper.MakeNode("OptionalGetElement", []string{"optional_input"}, []string{"output"}, nil)

	x := randn(e.Rand(), 4)
	e.expectNode(nodeCase{
		node:    node,
		name:    "test_optional_get_element",
		inputs:  values(codec.Some(x)),
		outputs: values(x),
	})

	seq := codec.Sequence{codec.New([]int32{1, 2, 3, 4}), codec.New([]int32{5, 6})}
	e.expectNode(nodeCase{
		node:    node,
		name:    "test_optional_get_element_sequence",
		inputs:  values(codec.Some(seq)),
		outputs: values(seq),
	})
}
