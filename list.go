package main

import (
	"fmt"
	"strings"

	"git.enflame.cn/hai.bai/tdgen/node"
	"github.com/spf13/cobra"
)

func newListCmd(st *cliState) *cobra.Command {
	var (
		opTypes []string
		opsOnly bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered test cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opsOnly {
				for _, op := range node.OpTypes() {
					fmt.Fprintln(out, op)
				}
				return nil
			}
			if !cmd.Flags().Changed("op_type") {
				opTypes = st.cfg.OpTypes
			}
			cases, err := node.CollectTestCases(opTypes...)
			if err != nil {
				return err
			}
			for _, tc := range cases {
				fmt.Fprintf(out, "%s/%s\t[%s]\n", tc.Kind, tc.Name, strings.Join(tc.OpTypes(), " "))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&opTypes, "op_type", "t", nil, "only list cases of these op types")
	cmd.Flags().BoolVar(&opsOnly, "ops", false, "list the registered op types instead")
	return cmd
}
