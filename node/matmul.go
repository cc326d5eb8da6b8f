package node

import "git.enflame.cn/hai.bai/tdgen/helper"

func init() {
	Register("MatMul", func(e *Expector) {
		node := helper.MakeNode("MatMul", []string{"a", "b"}, []string{"c"}, nil)
		a := randn(e.Rand(), 3, 4)
		b := randn(e.Rand(), 4, 3)
		e.expectNode(nodeCase{node: node, name: "test_matmul_2d",
			inputs: values(a, b), outputs: values(matmul(a, b))})
	})
}
