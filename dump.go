package main

import (
	"git.enflame.cn/hai.bai/tdgen/inspector"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDumpCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <case-dir>...",
		Short: "Decode and print generated fixtures",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, dir := range args {
				st.logger.Debug("dumping case", zap.String("dir", dir))
				if err := inspector.DumpCase(cmd.OutOrStdout(), dir); err != nil {
					return errors.WithMessage(err, dir)
				}
			}
			return nil
		},
	}
}

func newInspectCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <catalog.db>",
		Short: "Summarize a fixture catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st.logger.Debug("inspecting catalog", zap.String("catalog", args[0]))
			return inspector.InspectMain(cmd.OutOrStdout(), args[0])
		},
	}
}
