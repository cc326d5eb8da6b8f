// Command tdgen generates ONNX backend test fixtures: one model.onnx per
// test case plus serialized input and expected output data sets.
package main

import (
	"os"

	"git.enflame.cn/hai.bai/tdgen/conf"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// cliState is shared by the subcommands of one invocation.
type cliState struct {
	configPath string
	verbose    bool

	cfg    *conf.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	st := &cliState{}
	root := &cobra.Command{
		Use:           "tdgen",
		Short:         "Generate ONNX backend test fixtures",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := conf.Load(st.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Verbose = st.verbose
			}
			st.cfg = cfg

			config := zap.NewProductionConfig()
			if cfg.Verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			st.logger, err = config.Build()
			return errors.Wrap(err, "init logger")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.logger != nil {
				_ = st.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newGenerateCmd(st),
		newListCmd(st),
		newDumpCmd(st),
		newInspectCmd(st),
	)
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("error:", err)
		os.Exit(1)
	}
}
