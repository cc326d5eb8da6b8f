package node

import (
	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/helper"
)

func init() {
	Register("Where", exportWhere)
}

func exportWhere(e *Expector) {
	node := helper.MakeNode("Where", []string{"condition", "x", "y"}, []string{"z"}, nil)

	cond := codec.New([]bool{true, false, true, true}, 2, 2)
	x := codec.New([]float32{1, 2, 3, 4}, 2, 2)
	y := codec.New([]float32{9, 8, 7, 6}, 2, 2)
	e.expectNode(nodeCase{node: node, name: "test_where_example",
		inputs: values(cond, x, y), outputs: values(where[float32](cond, x, y))})

	cond = randBools(e.Rand(), 3, 1)
	xi := codec.New([]int64{1, 2, 3, 4}, 1, 4)
	yi := codec.Scalar[int64](-1)
	e.expectNode(nodeCase{node: node, name: "test_where_long_example",
		inputs: values(cond, xi, yi), outputs: values(where[int64](cond, xi, yi))})
}
