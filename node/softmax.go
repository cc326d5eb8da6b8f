package node

import (
	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/helper"
)

func init() {
	Register("Softmax", exportSoftmax)
}

func exportSoftmax(e *Expector) {
	x := codec.New([]float32{-1, 0, 1}, 1, 3)
	e.expectNode(nodeCase{
		node:    helper.MakeNode("Softmax", []string{"x"}, []string{"y"}, nil),
		name:    "test_softmax_example",
		inputs:  values(x),
		outputs: values(softmax(x, -1)),
	})

	x = randn(e.Rand(), 3, 4, 5)
	for _, c := range []struct {
		axis int
		name string
	}{
		{0, "test_softmax_axis_0"},
		{1, "test_softmax_axis_1"},
		{-1, "test_softmax_negative_axis"},
	} {
		e.expectNode(nodeCase{
			node:    helper.MakeNode("Softmax", []string{"x"}, []string{"y"}, helper.Attrs{"axis": c.axis}),
			name:    c.name,
			inputs:  values(x),
			outputs: values(softmax(x, c.axis)),
		})
	}
}
