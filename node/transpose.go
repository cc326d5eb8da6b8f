package node

import (
	"fmt"
	"strings"

	"git.enflame.cn/hai.bai/tdgen/helper"
)

func init() {
	Register("Transpose", exportTranspose)
}

func exportTranspose(e *Expector) {
	data := randn(e.Rand(), 2, 3, 4)
	e.expectNode(nodeCase{
		node:    helper.MakeNode("Transpose", []string{"data"}, []string{"transposed"}, nil),
		name:    "test_transpose_default",
		inputs:  values(data),
		outputs: values(transpose[float32](data, nil)),
	})

	for _, perm := range [][]int{{0, 2, 1}, {1, 0, 2}, {2, 0, 1}} {
		parts := make([]string, len(perm))
		for i, p := range perm {
			parts[i] = fmt.Sprint(p)
		}
		e.expectNode(nodeCase{
			node:    helper.MakeNode("Transpose", []string{"data"}, []string{"transposed"}, helper.Attrs{"perm": perm}),
			name:    "test_transpose_perm_" + strings.Join(parts, "_"),
			inputs:  values(data),
			outputs: values(transpose[float32](data, perm)),
		})
	}
}
