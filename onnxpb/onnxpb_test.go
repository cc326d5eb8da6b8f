package onnxpb

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestTensorGoldenBytes(t *testing.T) {
	tp := &TensorProto{
		Dims:     []int64{2},
		DataType: DataTypeFloat,
		Name:     "x",
		RawData:  []byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0x40},
	}
	want := []byte{
		0x08, 0x02,
		0x10, 0x01,
		0x42, 0x01, 'x',
		0x4a, 0x08, 0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0x40,
	}
	assert.Equal(t, want, Marshal(tp))
}

func TestEmptyRawDataIsKept(t *testing.T) {
	tp := &TensorProto{Dims: []int64{0}, DataType: DataTypeInt64, RawData: []byte{}}
	b := Marshal(tp)
	assert.Equal(t, []byte{0x08, 0x00, 0x10, 0x07, 0x4a, 0x00}, b)

	var got TensorProto
	require.NoError(t, Unmarshal(b, &got))
	assert.NotNil(t, got.RawData)
	assert.Empty(t, got.RawData)
}

func TestEmptyOptionalKeepsElemType(t *testing.T) {
	op := &OptionalProto{Name: "o"}
	assert.Equal(t, []byte{0x0a, 0x01, 'o', 0x10, 0x00}, Marshal(op))
}

func TestOpsetDefaultDomainIsWritten(t *testing.T) {
	o := &OperatorSetIDProto{Version: 16}
	assert.Equal(t, []byte{0x0a, 0x00, 0x10, 0x10}, Marshal(o))
}

func TestAttributeZeroInt(t *testing.T) {
	a := &AttributeProto{Name: "axis", Type: AttributeTypeInt}
	b := Marshal(a)
	// name, i=0, type=INT
	assert.Equal(t, []byte{0x0a, 0x04, 'a', 'x', 'i', 's', 0x18, 0x00, 0xa0, 0x01, 0x02}, b)
}

func sampleModel() *ModelProto {
	seqOfFloat := &TypeProto{SequenceType: &SequenceTypeProto{
		ElemType: &TypeProto{TensorType: &TensorTypeProto{ElemType: DataTypeFloat}},
	}}
	return &ModelProto{
		IRVersion:    8,
		ProducerName: "backend-test",
		Graph: &GraphProto{
			Name: "test_sequence_at",
			Node: []*NodeProto{{
				Input:  []string{"seq", "pos"},
				Output: []string{"out"},
				OpType: "SequenceAt",
				Attribute: []*AttributeProto{
					{Name: "perm", Type: AttributeTypeInts, Ints: []int64{1, 0, -1}},
					{Name: "alpha", Type: AttributeTypeFloat, F: 0.5},
					{Name: "mode", Type: AttributeTypeString, S: []byte("dense")},
					{Name: "type", Type: AttributeTypeTypeProto, TP: seqOfFloat},
				},
			}},
			Input: []*ValueInfoProto{
				{Name: "seq", Type: seqOfFloat},
				{Name: "pos", Type: &TypeProto{TensorType: &TensorTypeProto{
					ElemType: DataTypeInt64,
					Shape:    &TensorShapeProto{},
				}}},
			},
			Output: []*ValueInfoProto{
				{Name: "out", Type: &TypeProto{TensorType: &TensorTypeProto{
					ElemType: DataTypeFloat,
					Shape: &TensorShapeProto{Dim: []*Dimension{
						{DimValue: 3}, {DimParam: "N"},
					}},
				}}},
			},
		},
		OpsetImport: []*OperatorSetIDProto{{Version: 16}, {Domain: "com.microsoft", Version: 1}},
	}
}

func TestModelRoundTrip(t *testing.T) {
	m := sampleModel()
	b := Marshal(m)

	var got ModelProto
	require.NoError(t, Unmarshal(b, &got))
	if diff := cmp.Diff(m, &got); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, b, Marshal(&got), "re-encoding must be byte identical")
	assert.Equal(t, []string{"SequenceAt"}, got.Graph.OpTypes())
	assert.Equal(t, CategorySequence, got.Graph.Input[0].Type.Category())
	assert.Equal(t, CategoryTensor, got.Graph.Input[1].Type.Category())
	assert.NotNil(t, got.Graph.Input[1].Type.TensorType.Shape)
}

func TestDataRoundTrip(t *testing.T) {
	seq := &SequenceProto{
		Name:     "s",
		ElemType: ElemTypeMap,
		MapValues: []*MapProto{{
			KeyType: DataTypeInt64,
			Keys:    []int64{10, -3},
			Values: &SequenceProto{
				ElemType: ElemTypeTensor,
				TensorValues: []*TensorProto{
					{DataType: DataTypeFloat, RawData: []byte{0, 0, 0, 0}},
					{DataType: DataTypeFloat, RawData: []byte{0, 0, 0x80, 0x3f}},
				},
			},
		}},
	}
	opt := &OptionalProto{Name: "o", ElemType: ElemTypeSequence, SequenceValue: seq}

	var got OptionalProto
	require.NoError(t, Unmarshal(Marshal(opt), &got))
	if diff := cmp.Diff(opt, &got); diff != "" {
		t.Fatalf("optional mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, got.SequenceValue.Len())
	assert.Equal(t, 2, got.SequenceValue.MapValues[0].Values.Len())
}

func TestDecodePackedAndUnpacked(t *testing.T) {
	var b []byte
	// dims packed
	b = appendPackedInt64s(b, 1, []int64{2, 3})
	// int64_data unpacked
	b = appendInt64(b, 7, 5)
	b = appendInt64(b, 7, -6)
	// float_data unpacked
	b = appendFloat(b, 4, 1.5)
	b = appendInt32(b, 2, int32(DataTypeInt64))

	var got TensorProto
	require.NoError(t, Unmarshal(b, &got))
	assert.Equal(t, []int64{2, 3}, got.Dims)
	assert.Equal(t, []int64{5, -6}, got.Int64Data)
	assert.Equal(t, []float32{1.5}, got.FloatData)
	assert.Equal(t, DataTypeInt64, got.DataType)
	assert.EqualValues(t, 6, got.NumElements())
}

func TestUnknownFieldsAreSkipped(t *testing.T) {
	b := appendString(nil, 99, "future")
	b = appendString(b, 8, "kept")
	var got TensorProto
	require.NoError(t, Unmarshal(b, &got))
	assert.Equal(t, "kept", got.Name)
}

func TestTruncatedInput(t *testing.T) {
	b := Marshal(sampleModel())
	var got ModelProto
	assert.Error(t, Unmarshal(b[:len(b)-3], &got))
}

func TestWrongWireType(t *testing.T) {
	b := protowire.AppendTag(nil, 8, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	var got TensorProto
	err := Unmarshal(b, &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWireType)
}

func TestDataTypeHelpers(t *testing.T) {
	assert.Equal(t, "FLOAT16", DataTypeFloat16.String())
	assert.Equal(t, "DataType(99)", DataType(99).String())
	assert.Equal(t, 2, DataTypeFloat16.Size())
	assert.Equal(t, 0, DataTypeString.Size())
	assert.True(t, DataTypeUint16.IsIntegral())
	assert.False(t, DataTypeBool.IsIntegral())
	assert.Equal(t, "OPTIONAL", ElemTypeOptional.String())
}
