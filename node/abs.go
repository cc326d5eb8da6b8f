package node

import (
	"math"

	"git.enflame.cn/hai.bai/tdgen/helper"
)

func init() {
	Register("Abs", func(e *Expector) {
		x := randn(e.Rand(), 3, 4, 5)
		y := unary(x, func(v float32) float32 { return float32(math.Abs(float64(v))) })
		e.expectNode(nodeCase{
			node:    helper.MakeNode("Abs", []string{"x"}, []string{"y"}, nil),
			name:    "test_abs",
			inputs:  values(x),
			outputs: values(y),
		})
	})
}
