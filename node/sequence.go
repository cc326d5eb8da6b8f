package node

import (
	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/helper"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
)

func init() {
	Register("SequenceConstruct", exportSequenceConstruct)
	Register("SequenceAt", exportSequenceAt)
	Register("SequenceLength", exportSequenceLength)
	Register("ConcatFromSequence", exportConcatFromSequence)
}

// tensors draws n float arrays sharing every dim but the first.
func tensors(e *Expector, rows []int64, cols int64) codec.Sequence {
	seq := make(codec.Sequence, len(rows))
	for i, r := range rows {
		seq[i] = randn(e.Rand(), r, cols)
	}
	return seq
}

func exportSequenceConstruct(e *Expector) {
	seq := tensors(e, []int64{2, 3, 1}, 3)
	e.expectNode(nodeCase{
		node:    helper.MakeNode("SequenceConstruct", []string{"x0", "x1", "x2"}, []string{"seq"}, nil),
		name:    "test_sequence_construct",
		inputs:  seq,
		outputs: values(seq),
	})
}

func exportSequenceAt(e *Expector) {
	node := helper.MakeNode("SequenceAt", []string{"seq", "position"}, []string{"out"}, nil)
	seq := tensors(e, []int64{1, 2, 3}, 4)
	for _, c := range []struct {
		pos  int64
		name string
	}{
		{1, "test_sequence_at_positive"},
		{-1, "test_sequence_at_negative"},
	} {
		at := c.pos
		if at < 0 {
			at += int64(len(seq))
		}
		e.expectNode(nodeCase{
			node:    node,
			name:    c.name,
			inputs:  values(seq, codec.Scalar(c.pos)),
			outputs: values(seq[at]),
		})
	}
}

func exportSequenceLength(e *Expector) {
	node := helper.MakeNode("SequenceLength", []string{"seq"}, []string{"len"}, nil)
	seq := tensors(e, []int64{1, 1, 2, 3}, 2)
	e.expectNode(nodeCase{
		node:    node,
		name:    "test_sequence_length",
		inputs:  values(seq),
		outputs: values(codec.Scalar(int64(len(seq)))),
	})

	e.expectNode(nodeCase{
		node:    node,
		name:    "test_sequence_length_empty",
		inputs:  values(codec.Sequence{}),
		outputs: values(codec.Scalar[int64](0)),
		types: map[string]*onnxpb.TypeProto{
			"seq": helper.MakeSequenceTypeProto(helper.MakeTensorTypeProto(onnxpb.DataTypeFloat, nil)),
		},
	})
}

func exportConcatFromSequence(e *Expector) {
	arrays := func(seq codec.Sequence) []*codec.Array {
		out := make([]*codec.Array, len(seq))
		for i, v := range seq {
			out[i] = v.(*codec.Array)
		}
		return out
	}

	seq := codec.Sequence{randn(e.Rand(), 2, 1), randn(e.Rand(), 2, 3), randn(e.Rand(), 2, 2)}
	e.expectNode(nodeCase{
		node: helper.MakeNode("ConcatFromSequence", []string{"seq"}, []string{"out"},
			helper.Attrs{"axis": 1}),
		name:    "test_concat_from_sequence_axis_1",
		inputs:  values(seq),
		outputs: values(concat[float32](arrays(seq), 1)),
	})

	seq = tensors(e, []int64{2, 2, 2}, 3)
	e.expectNode(nodeCase{
		node: helper.MakeNode("ConcatFromSequence", []string{"seq"}, []string{"out"},
			helper.Attrs{"axis": 0, "new_axis": 1}),
		name:    "test_concat_from_sequence_new_axis",
		inputs:  values(seq),
		outputs: values(stack[float32](arrays(seq), 0)),
	})
}
