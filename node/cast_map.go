package node

import (
	"sort"

	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/helper"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
)

func init() {
	Register("CastMap", exportCastMap)
}

// denseValues lays the float values of an int64-keyed map out in key order.
func denseValues(m *codec.Map) []float32 {
	order := make([]int, m.Len())
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return m.Keys[order[i]] < m.Keys[order[j]] })
	out := make([]float32, len(order))
	for i, k := range order {
		out[i] = codec.Values[float32](m.Values[k].(*codec.Array))[0]
	}
	return out
}

func exportCastMap(e *Expector) {
	mlOpset := []helper.ModelOption{helper.Opset(helper.DomainML, 3)}
	castMap := func(castTo string) *onnxpb.NodeProto {
		return helper.MakeNode("CastMap", []string{"x"}, []string{"y"},
			helper.Attrs{"cast_to": castTo, "map_form": "DENSE"},
			helper.NodeDomain(helper.DomainML))
	}

	keys := []int64{3, 1, 2, 5}
	vals := make([]codec.Value, len(keys))
	for i := range keys {
		vals[i] = codec.Scalar(e.Rand().Float32() * 10)
	}
	m := codec.Int64Map(keys, vals...)
	dense := denseValues(m)

	e.expectNode(nodeCase{
		node:    castMap("TO_FLOAT"),
		name:    "test_cast_map_to_float",
		inputs:  values(m),
		outputs: values(codec.New(dense, 1, int64(len(dense)))),
		opsets:  mlOpset,
	})

	truncated := make([]int64, len(dense))
	for i, v := range dense {
		truncated[i] = int64(v)
	}
	e.expectNode(nodeCase{
		node:    castMap("TO_INT64"),
		name:    "test_cast_map_to_int64",
		inputs:  values(m),
		outputs: values(codec.New(truncated, 1, int64(len(truncated)))),
		opsets:  mlOpset,
	})
}
