package codec

import (
	"testing"

	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func tensorType(dt onnxpb.DataType) *onnxpb.TypeProto {
	return &onnxpb.TypeProto{TensorType: &onnxpb.TensorTypeProto{ElemType: dt}}
}

func seqType(elem *onnxpb.TypeProto) *onnxpb.TypeProto {
	return &onnxpb.TypeProto{SequenceType: &onnxpb.SequenceTypeProto{ElemType: elem}}
}

func mapType(key onnxpb.DataType, value *onnxpb.TypeProto) *onnxpb.TypeProto {
	return &onnxpb.TypeProto{MapType: &onnxpb.MapTypeProto{KeyType: key, ValueType: value}}
}

func optType(elem *onnxpb.TypeProto) *onnxpb.TypeProto {
	return &onnxpb.TypeProto{OptionalType: &onnxpb.OptionalTypeProto{ElemType: elem}}
}

func TestFromArrayRaw(t *testing.T) {
	a := New([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	tp, err := FromArray(a, "x")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, tp.Dims)
	assert.Equal(t, onnxpb.DataTypeFloat, tp.DataType)
	assert.Equal(t, "x", tp.Name)
	require.Len(t, tp.RawData, 24)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, tp.RawData[:4])
	assert.Nil(t, tp.FloatData)
}

func TestFromArrayStrings(t *testing.T) {
	tp, err := FromArray(New([]string{"a", "bc"}), "s")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("bc")}, tp.StringData)
	assert.Nil(t, tp.RawData)
}

func TestFromArrayEmpty(t *testing.T) {
	tp, err := FromArray(New([]int64{}, 0, 3), "")
	require.NoError(t, err)
	assert.NotNil(t, tp.RawData)
	assert.Empty(t, tp.RawData)
	assert.Equal(t, "", tp.Name)
}

func TestFromArrayErrors(t *testing.T) {
	_, err := FromArray(nil, "x")
	assert.ErrorIs(t, err, ErrNilValue)

	bad := &Array{DType: onnxpb.DataTypeInt32, Dims: []int64{2}, Data: []float32{1, 2}}
	_, err = FromArray(bad, "x")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	short := &Array{DType: onnxpb.DataTypeFloat, Dims: []int64{3}, Data: []float32{1, 2}}
	_, err = FromArray(short, "x")
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNewPanicsOnShapeMismatch(t *testing.T) {
	assert.Panics(t, func() { New([]float32{1, 2, 3}, 2, 2) })
}

func TestArrayRoundTripAllTypes(t *testing.T) {
	arrays := []*Array{
		New([]float32{1.5, -2}, 2, 1),
		New([]float64{3.25}),
		New([]float16.Float16{float16.Fromfloat32(0.5), float16.Fromfloat32(-1)}),
		New([]int8{-1, 2}),
		New([]int16{-300, 300}),
		New([]int32{1 << 20}),
		New([]int64{-1 << 40, 7}),
		New([]uint8{255, 0}),
		New([]uint16{65535}),
		New([]uint32{1 << 31}),
		New([]uint64{1 << 63}),
		New([]bool{true, false, true}),
		New([]string{"x", "", "yz"}),
		Scalar[int64](42),
	}
	for _, a := range arrays {
		t.Run(a.String(), func(t *testing.T) {
			b, err := Marshal(tensorType(a.DType), a, "v")
			require.NoError(t, err)
			got, name, err := Decode(tensorType(a.DType), b)
			require.NoError(t, err)
			assert.Equal(t, "v", name)
			assert.Equal(t, a, got)
		})
	}
}

func TestToArrayTypedFields(t *testing.T) {
	a, err := ToArray(&onnxpb.TensorProto{Dims: []int64{2}, DataType: onnxpb.DataTypeInt64, Int64Data: []int64{4, 5}})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, Values[int64](a))

	b, err := ToArray(&onnxpb.TensorProto{Dims: []int64{3}, DataType: onnxpb.DataTypeBool, Int32Data: []int32{1, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, Values[bool](b))

	h, err := ToArray(&onnxpb.TensorProto{DataType: onnxpb.DataTypeFloat16, Int32Data: []int32{int32(float16.Fromfloat32(2).Bits())}})
	require.NoError(t, err)
	assert.Equal(t, float32(2), Values[float16.Float16](h)[0].Float32())

	_, err = ToArray(&onnxpb.TensorProto{Dims: []int64{3}, DataType: onnxpb.DataTypeFloat, FloatData: []float32{1}})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = ToArray(&onnxpb.TensorProto{DataType: onnxpb.DataTypeComplex64, RawData: make([]byte, 8)})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestFromListInfersElemType(t *testing.T) {
	sp, err := FromList(Sequence{}, "empty")
	require.NoError(t, err)
	assert.Equal(t, onnxpb.ElemTypeTensor, sp.ElemType)

	sp, err = FromList(Sequence{Sequence{New([]int32{1})}}, "nested")
	require.NoError(t, err)
	assert.Equal(t, onnxpb.ElemTypeSequence, sp.ElemType)
	require.Len(t, sp.SequenceValues, 1)
	assert.Equal(t, "", sp.SequenceValues[0].Name)

	sp, err = FromList(Sequence{Int64Map([]int64{1}, Scalar[float32](1))}, "maps")
	require.NoError(t, err)
	assert.Equal(t, onnxpb.ElemTypeMap, sp.ElemType)
}

func TestFromListMixedKinds(t *testing.T) {
	_, err := FromList(Sequence{New([]float32{1}), Sequence{}}, "mixed")
	assert.ErrorIs(t, err, ErrMixedSequence)

	_, err = FromList(Sequence{nil}, "nil")
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestFromDict(t *testing.T) {
	m := Int64Map([]int64{3, 1, 2}, Scalar[float32](0.3), Scalar[float32](0.1), Scalar[float32](0.2))
	mp, err := FromDict(m, "m")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, mp.Keys, "keys keep insertion order")
	assert.Equal(t, onnxpb.DataTypeInt64, mp.KeyType)
	assert.Equal(t, 3, mp.Values.Len())

	sm := StringMap([]string{"b", "a"}, New([]int64{1}), New([]int64{2}))
	mp, err = FromDict(sm, "")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("b"), []byte("a")}, mp.StringKeys)
	assert.Nil(t, mp.Keys)

	_, err = FromDict(&Map{KeyType: onnxpb.DataTypeFloat}, "bad")
	assert.ErrorIs(t, err, ErrMapKeyType)

	_, err = FromDict(Int64Map([]int64{1, 2}, Scalar[float32](1)), "short")
	assert.ErrorIs(t, err, ErrMapLength)

	_, err = FromDict(Int64Map(nil), "empty")
	assert.ErrorIs(t, err, ErrMapLength)
	_, err = Marshal(mapType(onnxpb.DataTypeString, tensorType(onnxpb.DataTypeInt64)), StringMap([]string{}), "empty")
	assert.ErrorIs(t, err, ErrMapLength)
}

func TestFromOptional(t *testing.T) {
	op, err := FromOptional(None(), "o")
	require.NoError(t, err)
	assert.Equal(t, onnxpb.ElemTypeUndefined, op.ElemType)
	assert.Nil(t, op.TensorValue)

	op, err = FromOptional(Some(Sequence{New([]float32{1})}), "o")
	require.NoError(t, err)
	assert.Equal(t, onnxpb.ElemTypeSequence, op.ElemType)
	assert.Equal(t, 1, op.SequenceValue.Len())
}

func TestCompositeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		typ  *onnxpb.TypeProto
		val  Value
	}{
		{"seq", seqType(tensorType(onnxpb.DataTypeFloat)), Sequence{New([]float32{1, 2}), New([]float32{3})}},
		{"empty_seq", seqType(tensorType(onnxpb.DataTypeFloat)), Sequence{}},
		{"map", mapType(onnxpb.DataTypeInt64, tensorType(onnxpb.DataTypeFloat)),
			Int64Map([]int64{5, -1}, Scalar[float32](1), Scalar[float32](2))},
		{"string_map", mapType(onnxpb.DataTypeString, tensorType(onnxpb.DataTypeInt64)),
			StringMap([]string{"k"}, Scalar[int64](9))},
		{"seq_of_map", seqType(mapType(onnxpb.DataTypeInt64, tensorType(onnxpb.DataTypeFloat))),
			Sequence{Int64Map([]int64{0}, Scalar[float32](0.5))}},
		{"opt_tensor", optType(tensorType(onnxpb.DataTypeInt32)), Some(New([]int32{1, 2}))},
		{"opt_none", optType(tensorType(onnxpb.DataTypeInt32)), None()},
		{"opt_seq", optType(seqType(tensorType(onnxpb.DataTypeInt32))), Some(Sequence{New([]int32{7})})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := Marshal(c.typ, c.val, c.name)
			require.NoError(t, err)
			again, err := Marshal(c.typ, c.val, c.name)
			require.NoError(t, err)
			assert.Equal(t, b, again, "encoding must be deterministic")

			got, name, err := Decode(c.typ, b)
			require.NoError(t, err)
			assert.Equal(t, c.name, name)
			assert.Equal(t, c.val, got)
		})
	}
}

func TestEncodeKindMismatch(t *testing.T) {
	_, err := Encode(seqType(tensorType(onnxpb.DataTypeFloat)), New([]float32{1}), "x")
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = Encode(tensorType(onnxpb.DataTypeFloat), None(), "x")
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = Encode(&onnxpb.TypeProto{}, New([]float32{1}), "x")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = Encode(tensorType(onnxpb.DataTypeFloat), nil, "x")
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "FLOAT[2,3]", Describe(Zeros[float32](2, 3)))
	assert.Equal(t, "INT64[]", Describe(Scalar[int64](1)))
	assert.Equal(t, "seq(INT32[1] x2)", Describe(Sequence{New([]int32{1}), New([]int32{2})}))
	assert.Equal(t, "optional(none)", Describe(None()))
	assert.Equal(t, "map(INT64 -> FLOAT[] x1)", Describe(Int64Map([]int64{1}, Scalar[float32](1))))
	assert.Equal(t, "seq(), optional(seq())", DescribeAll([]Value{Sequence{}, Some(Sequence{})}))
}

func TestReshape(t *testing.T) {
	a := New([]int32{1, 2, 3, 4, 5, 6}, 6)
	r := a.Reshape(3, 2)
	assert.Equal(t, []int{3, 2}, r.Shape())
	assert.Equal(t, 2, r.Rank())
	assert.Panics(t, func() { a.Reshape(4) })
}
