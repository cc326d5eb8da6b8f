package node

import (
	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/helper"
)

func init() {
	Register("Add", exportAdd)
}

func exportAdd(e *Expector) {
	node := helper.MakeNode("Add", []string{"x", "y"}, []string{"sum"}, nil)
	add := func(a, b float32) float32 { return a + b }

	x := randn(e.Rand(), 3, 4, 5)
	y := randn(e.Rand(), 3, 4, 5)
	e.expectNode(nodeCase{node: node, name: "test_add",
		inputs: values(x, y), outputs: values(binary(x, y, add))})

	x = randn(e.Rand(), 3, 4, 5)
	y = randn(e.Rand(), 5)
	e.expectNode(nodeCase{node: node, name: "test_add_bcast",
		inputs: values(x, y), outputs: values(binary(x, y, add))})

	xi := codec.New([]uint8{1, 2, 250}, 3)
	yi := codec.New([]uint8{4, 5, 10}, 3)
	e.expectNode(nodeCase{node: node, name: "test_add_uint8",
		inputs: values(xi, yi), outputs: values(binary(xi, yi, func(a, b uint8) uint8 { return a + b }))})
}
