package node

import (
	"math"

	"git.enflame.cn/hai.bai/tdgen/helper"
)

func init() {
	Register("Gelu", func(e *Expector) {
		x := randn(e.Rand(), 2, 3, 4)
		y := unary(x, func(v float32) float32 {
			f := float64(v)
			return float32(0.5 * f * (1 + math.Erf(f/math.Sqrt2)))
		})
		e.expectNode(nodeCase{
			node: helper.MakeNode("Gelu", []string{"x"}, []string{"y"}, nil,
				helper.NodeDomain(helper.DomainMicrosoft)),
			name:    "test_gelu_com_microsoft",
			inputs:  values(x),
			outputs: values(y),
			opsets:  []helper.ModelOption{helper.Opset(helper.DomainMicrosoft, 1)},
		})
	})
}
