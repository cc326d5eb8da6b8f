package node

import "git.enflame.cn/hai.bai/tdgen/helper"

func init() {
	Register("Relu", func(e *Expector) {
		x := randn(e.Rand(), 3, 4, 5)
		y := unary(x, func(v float32) float32 { return max(v, 0) })
		e.expectNode(nodeCase{
			node:    helper.MakeNode("Relu", []string{"x"}, []string{"y"}, nil),
			name:    "test_relu",
			inputs:  values(x),
			outputs: values(y),
		})
	})
}
