// Command casedoc prints the test case registry as a markdown table.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/node"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func writeTable(out io.Writer, cases []*node.TestCase) {
	fmt.Fprintln(out, "| op type | case | inputs | outputs |")
	fmt.Fprintln(out, "|---|---|---|---|")
	for _, tc := range cases {
		var inputs, outputs []codec.Value
		if len(tc.DataSets) > 0 {
			inputs, outputs = tc.DataSets[0].Inputs, tc.DataSets[0].Outputs
		}
		fmt.Fprintf(out, "| %s | `%s` | %s | %s |\n",
			strings.Join(tc.OpTypes(), ", "), tc.Name,
			codec.DescribeAll(inputs), codec.DescribeAll(outputs))
	}
}

func newCaseDocCmd() *cobra.Command {
	var (
		output  string
		opTypes []string
	)
	cmd := &cobra.Command{
		Use:          "casedoc",
		Short:        "Print the registered test cases as a markdown table",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := node.CollectTestCases(opTypes...)
			if err != nil {
				return err
			}
			if output == "" {
				writeTable(cmd.OutOrStdout(), cases)
				return nil
			}
			f, err := os.Create(output)
			if err != nil {
				return errors.Wrap(err, "create table file")
			}
			writeTable(f, cases)
			return errors.Wrap(f.Close(), "close table file")
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringSliceVarP(&opTypes, "op_type", "t", nil, "only these op types")
	return cmd
}

func main() {
	if err := newCaseDocCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
