package node

import (
	"math"

	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/helper"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/x448/float16"
)

func init() {
	Register("Cast", exportCast)
}

// castInputs covers rounding, subnormals and overflow to infinity.
var castInputs = []float32{
	0.47892547, 0.48033667, 0.49968487, 0.81910545,
	0.47031248, 0.816468, 0.21087195, 0.7229038,
	float32(math.Inf(1)), float32(math.Inf(-1)), 6e-8, 1e-7,
	65504, 70000, -0.5, 0,
}

func exportCast(e *Expector) {
	cast := func(to onnxpb.DataType) *onnxpb.NodeProto {
		return helper.MakeNode("Cast", []string{"input"}, []string{"output"}, helper.Attrs{"to": int64(to)})
	}

	x := codec.New(castInputs, 4, 4)
	half := unary(x, float16.Fromfloat32)
	e.expectNode(nodeCase{
		node:    cast(onnxpb.DataTypeFloat16),
		name:    "test_cast_FLOAT_to_FLOAT16",
		inputs:  values(x),
		outputs: values(half),
	})
	e.expectNode(nodeCase{
		node:    cast(onnxpb.DataTypeFloat),
		name:    "test_cast_FLOAT16_to_FLOAT",
		inputs:  values(half),
		outputs: values(unary(half, float16.Float16.Float32)),
	})

	d := randn(e.Rand(), 3, 4)
	wide := unary(d, func(v float32) float64 { return float64(v) })
	e.expectNode(nodeCase{
		node:    cast(onnxpb.DataTypeDouble),
		name:    "test_cast_FLOAT_to_DOUBLE",
		inputs:  values(d),
		outputs: values(wide),
	})
}
