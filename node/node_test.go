package node

import (
	"math"
	"testing"

	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/helper"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestRegisteredOpTypes(t *testing.T) {
	ops := OpTypes()
	assert.IsNonDecreasing(t, ops)
	for _, op := range []string{
		"Abs", "Add", "CastMap", "ConcatFromSequence", "Optional",
		"OptionalGetElement", "OptionalHasElement", "SequenceAt", "ZipMap",
	} {
		assert.Contains(t, ops, op)
	}
}

func TestCollectAllCasesEncode(t *testing.T) {
	cases, err := CollectTestCases()
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	names := make(map[string]bool)
	for _, tc := range cases {
		assert.False(t, names[tc.Name], "duplicate %s", tc.Name)
		names[tc.Name] = true
		assert.Equal(t, KindSimple, tc.Kind)
		assert.Equal(t, tc.Name, tc.ModelName)
		require.NotNil(t, tc.Model, tc.Name)
		graph := tc.Model.Graph

		for _, ds := range tc.DataSets {
			require.Len(t, ds.Inputs, len(graph.Input), tc.Name)
			require.Len(t, ds.Outputs, len(graph.Output), tc.Name)
			for i, v := range ds.Inputs {
				_, err := codec.Marshal(graph.Input[i].Type, v, graph.Input[i].Name)
				assert.NoError(t, err, "%s input %d", tc.Name, i)
			}
			for i, v := range ds.Outputs {
				_, err := codec.Marshal(graph.Output[i].Type, v, graph.Output[i].Name)
				assert.NoError(t, err, "%s output %d", tc.Name, i)
			}
		}
	}
}

func TestCollectFilter(t *testing.T) {
	cases, err := CollectTestCases("Abs", "Abs")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "test_abs", cases[0].Name)
	assert.Equal(t, []string{"Abs"}, cases[0].OpTypes())

	_, err = CollectTestCases("Abs", "NoSuchOp")
	assert.ErrorIs(t, err, ErrUnknownOpType)
}

func TestCollectSortedByName(t *testing.T) {
	cases, err := CollectTestCases("Where", "Add")
	require.NoError(t, err)
	var names []string
	for _, tc := range cases {
		names = append(names, tc.Name)
	}
	assert.Equal(t, []string{
		"test_add", "test_add_bcast", "test_add_uint8",
		"test_where_example", "test_where_long_example",
	}, names)
}

func TestCollectIsDeterministic(t *testing.T) {
	first, err := CollectTestCases("Softmax", "Transpose")
	require.NoError(t, err)
	second, err := CollectTestCases("Transpose", "Softmax")
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, onnxpb.Marshal(first[i].Model), onnxpb.Marshal(second[i].Model))
		assert.Equal(t, first[i].DataSets, second[i].DataSets)
	}
}

func TestCollectDuplicateName(t *testing.T) {
	const op = "DuplicateForTest"
	Register(op, func(e *Expector) {
		g := helper.MakeGraph(nil, "test_dup", nil, nil)
		e.Expect(helper.MakeModel(g), nil, nil, "")
		e.Expect(helper.MakeModel(g), nil, nil, "")
	})
	defer delete(registry, op)

	_, err := CollectTestCases(op)
	assert.ErrorIs(t, err, ErrDuplicateCase)
}

func TestExpectDefaultsName(t *testing.T) {
	e := newExpector("X")
	g := helper.MakeGraph(nil, "graph_name", nil, nil)
	e.Expect(helper.MakeModel(g), nil, nil, "")
	e.Expect(helper.MakeModel(g), nil, nil, "explicit")
	require.Len(t, e.cases, 2)
	assert.Equal(t, "graph_name", e.cases[0].Name)
	assert.Equal(t, "explicit", e.cases[1].Name)
	assert.Equal(t, "graph_name", e.cases[1].ModelName)
	assert.Equal(t, DefaultRTol, e.cases[0].RTol)
}

func TestTypeOf(t *testing.T) {
	arr := codec.New([]float32{1, 2}, 2)
	assert.Equal(t, onnxpb.CategoryTensor, typeOf(arr, true).Category())
	assert.Len(t, typeOf(arr, true).TensorType.Shape.Dim, 1)
	assert.Nil(t, typeOf(arr, false).TensorType.Shape)

	seq := typeOf(codec.Sequence{arr}, true)
	assert.Nil(t, seq.SequenceType.ElemType.TensorType.Shape)

	m := typeOf(codec.StringMap([]string{"a"}, codec.Scalar[int64](1)), true)
	assert.Equal(t, onnxpb.DataTypeString, m.MapType.KeyType)

	assert.Panics(t, func() { typeOf(codec.None(), true) })
	assert.Panics(t, func() { typeOf(codec.Sequence{}, true) })
}

func TestBroadcast(t *testing.T) {
	assert.Equal(t, []int64{3, 4, 5}, broadcastShape([]int64{3, 4, 5}, []int64{5}))
	assert.Equal(t, []int64{3, 4}, broadcastShape([]int64{3, 1}, []int64{1, 4}, nil))
	assert.Panics(t, func() { broadcastShape([]int64{3}, []int64{4}) })

	a := codec.New([]float32{1, 2}, 2, 1)
	b := codec.New([]float32{10, 20, 30}, 3)
	sum := binary(a, b, func(x, y float32) float32 { return x + y })
	assert.Equal(t, []int64{2, 3}, sum.Dims)
	assert.Equal(t, []float32{11, 21, 31, 12, 22, 32}, codec.Values[float32](sum))
}

func TestWhereKernel(t *testing.T) {
	cond := codec.New([]bool{true, false}, 2, 1)
	x := codec.New([]int64{1, 2}, 1, 2)
	y := codec.Scalar[int64](0)
	got := where[int64](cond, x, y)
	assert.Equal(t, []int64{2, 2}, got.Dims)
	assert.Equal(t, []int64{1, 2, 0, 0}, codec.Values[int64](got))
}

func TestMatMulKernel(t *testing.T) {
	a := codec.New([]float32{1, 2, 3, 4}, 2, 2)
	b := codec.New([]float32{5, 6, 7, 8}, 2, 2)
	assert.Equal(t, []float32{19, 22, 43, 50}, codec.Values[float32](matmul(a, b)))
}

func TestTransposeKernel(t *testing.T) {
	a := codec.New([]int32{1, 2, 3, 4, 5, 6}, 2, 3)
	got := transpose[int32](a, nil)
	assert.Equal(t, []int64{3, 2}, got.Dims)
	assert.Equal(t, []int32{1, 4, 2, 5, 3, 6}, codec.Values[int32](got))

	c := codec.New([]int32{0, 1, 2, 3, 4, 5, 6, 7}, 2, 2, 2)
	got = transpose[int32](c, []int{0, 2, 1})
	assert.Equal(t, []int32{0, 2, 1, 3, 4, 6, 5, 7}, codec.Values[int32](got))
}

func TestSoftmaxKernel(t *testing.T) {
	x := codec.New([]float32{1, 2, 3, 1, 1, 1}, 2, 3)
	y := codec.Values[float32](softmax(x, 1))
	for row := 0; row < 2; row++ {
		sum := y[row*3] + y[row*3+1] + y[row*3+2]
		assert.InDelta(t, 1, sum, 1e-6)
	}
	assert.InDelta(t, 1.0/3, y[3], 1e-6)
	assert.Less(t, y[0], y[2])
}

func TestConcatAndStack(t *testing.T) {
	a := codec.New([]int64{1, 2}, 2, 1)
	b := codec.New([]int64{3, 4, 5, 6}, 2, 2)
	got := concat[int64]([]*codec.Array{a, b}, 1)
	assert.Equal(t, []int64{2, 3}, got.Dims)
	assert.Equal(t, []int64{1, 3, 4, 2, 5, 6}, codec.Values[int64](got))

	x := codec.New([]int64{1, 2}, 2)
	y := codec.New([]int64{3, 4}, 2)
	s := stack[int64]([]*codec.Array{x, y}, 1)
	assert.Equal(t, []int64{2, 2}, s.Dims)
	assert.Equal(t, []int64{1, 3, 2, 4}, codec.Values[int64](s))
}

func TestCastMapOrdersByKey(t *testing.T) {
	m := codec.Int64Map([]int64{3, 1, 2},
		codec.Scalar[float32](30), codec.Scalar[float32](10), codec.Scalar[float32](20))
	assert.Equal(t, []float32{10, 20, 30}, denseValues(m))
}

func TestZipMapCases(t *testing.T) {
	cases, err := CollectTestCases("ZipMap")
	require.NoError(t, err)
	require.Len(t, cases, 2)
	out := cases[0].DataSets[0].Outputs[0].(codec.Sequence)
	require.Len(t, out, 2)
	m := out[0].(*codec.Map)
	assert.Equal(t, []int64{10, 20, 30}, m.Keys)
	assert.Equal(t, onnxpb.CategorySequence, cases[0].Model.Graph.Output[0].Type.Category())
	assert.Equal(t, helper.DomainML, cases[0].Model.Graph.Node[0].Domain)
}

func TestCastFloat16Case(t *testing.T) {
	cases, err := CollectTestCases("Cast")
	require.NoError(t, err)
	var found bool
	for _, tc := range cases {
		if tc.Name != "test_cast_FLOAT_to_FLOAT16" {
			continue
		}
		found = true
		out := tc.DataSets[0].Outputs[0].(*codec.Array)
		assert.Equal(t, onnxpb.DataTypeFloat16, out.DType)
		assert.True(t, math.IsInf(float64(codec.Values[float16.Float16](out)[13].Float32()), 1), "70000 overflows")
	}
	assert.True(t, found)
}
