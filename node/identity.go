package node

import (
	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/helper"
)

func init() {
	Register("Identity", exportIdentity)
}

func exportIdentity(e *Expector) {
	node := helper.MakeNode("Identity", []string{"x"}, []string{"y"}, nil)

	s := codec.New([]string{"alpha", "", "γάμμα", "delta"}, 2, 2)
	e.expectNode(nodeCase{node: node, name: "test_identity_string",
		inputs: values(s), outputs: values(s)})

	seq := codec.Sequence{randn(e.Rand(), 2, 2), randn(e.Rand(), 1, 3)}
	e.expectNode(nodeCase{node: node, name: "test_identity_sequence",
		inputs: values(seq), outputs: values(seq)})

	opt := codec.Some(codec.Sequence{randn(e.Rand(), 5)})
	e.expectNode(nodeCase{node: node, name: "test_identity_opt",
		inputs: values(opt), outputs: values(opt)})
}
