package node

import (
	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/helper"
)

func init() {
	Register("ZipMap", exportZipMap)
}

// zipRows turns every row of a [N,C] float array into one map whose
// values are scalars.
func zipRows(x *codec.Array, build func(row codec.Sequence) *codec.Map) codec.Sequence {
	data := codec.Values[float32](x)
	n, c := int(x.Dims[0]), int(x.Dims[1])
	out := make(codec.Sequence, n)
	for i := 0; i < n; i++ {
		row := make(codec.Sequence, c)
		for j := 0; j < c; j++ {
			row[j] = codec.Scalar(data[i*c+j])
		}
		out[i] = build(row)
	}
	return out
}

func exportZipMap(e *Expector) {
	mlOpset := []helper.ModelOption{helper.Opset(helper.DomainML, 3)}
	x := uniform(e.Rand(), 0, 1, 2, 3)

	labels := []int64{10, 20, 30}
	e.expectNode(nodeCase{
		node: helper.MakeNode("ZipMap", []string{"X"}, []string{"Z"},
			helper.Attrs{"classlabels_int64s": labels}, helper.NodeDomain(helper.DomainML)),
		name:   "test_zip_map_int64_labels",
		inputs: values(x),
		outputs: values(zipRows(x, func(row codec.Sequence) *codec.Map {
			return codec.Int64Map(labels, row...)
		})),
		opsets: mlOpset,
	})

	names := []string{"cat", "dog", "bird"}
	e.expectNode(nodeCase{
		node: helper.MakeNode("ZipMap", []string{"X"}, []string{"Z"},
			helper.Attrs{"classlabels_strings": names}, helper.NodeDomain(helper.DomainML)),
		name:   "test_zip_map_string_labels",
		inputs: values(x),
		outputs: values(zipRows(x, func(row codec.Sequence) *codec.Map {
			return codec.StringMap(names, row...)
		})),
		opsets: mlOpset,
	})
}
