package main

import (
	"context"
	"os"
	"strings"
	"time"

	"git.enflame.cn/hai.bai/tdgen/conf"
	"git.enflame.cn/hai.bai/tdgen/dbexport"
	"git.enflame.cn/hai.bai/tdgen/fixture"
	"git.enflame.cn/hai.bai/tdgen/node"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd(st *cliState) *cobra.Command {
	var (
		output  string
		opTypes []string
		jobs    int
		catalog string
		save    string
	)
	cmd := &cobra.Command{
		Use:   "generate-data",
		Short: "Write model.onnx and test data sets for the registered cases",
		Long: `Writes every registered test case as

  <output>/<kind>/<name>/model.onnx
  <output>/<kind>/<name>/test_data_set_<i>/input_<j>.pb
  <output>/<kind>/<name>/test_data_set_<i>/output_<j>.pb

Case directories are recreated, so stale files from earlier runs vanish.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *st.cfg
			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("op_type") {
				cfg.OpTypes = opTypes
			}
			if flags.Changed("jobs") {
				cfg.Jobs = jobs
			}
			if flags.Changed("catalog") {
				cfg.Catalog = catalog
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if save != "" {
				if err := cfg.Save(save); err != nil {
					return err
				}
				st.logger.Debug("saved effective config", zap.String("path", save))
			}
			return runGenerate(cmd.Context(), &cfg, st.logger)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", conf.DefaultOutput, "output directory")
	cmd.Flags().StringSliceVarP(&opTypes, "op_type", "t", nil, "only generate cases of these op types")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", conf.DefaultJobs, "cases written concurrently")
	cmd.Flags().StringVar(&catalog, "catalog", "", "also write a sqlite catalog of the fixtures")
	cmd.Flags().StringVar(&save, "save-config", "", "write the effective config as YAML before generating")
	return cmd
}

func runGenerate(ctx context.Context, cfg *conf.Config, logger *zap.Logger) error {
	start := time.Now()
	cases, err := node.CollectTestCases(cfg.OpTypes...)
	if err != nil {
		return err
	}
	logger.Info("collected test cases",
		zap.Int("cases", len(cases)),
		zap.Strings("op_types", cfg.OpTypes))

	g := fixture.NewGenerator(cfg.Output, fixture.WithJobs(cfg.Jobs), fixture.WithLogger(logger))
	results, err := g.Generate(ctx, cases)
	if err != nil {
		return err
	}
	if cfg.Catalog == "" {
		return nil
	}
	return writeCatalog(cfg.Catalog, results, start, logger)
}

func writeCatalog(target string, results []fixture.Result, start time.Time, logger *zap.Logger) (err error) {
	dbs, err := dbexport.NewDbSession(target, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dbs.Close(); err == nil {
			err = cerr
		}
	}()

	if err := dbs.DumpVersion(version); err != nil {
		return err
	}
	if err := dbs.DumpResults(results); err != nil {
		return err
	}
	return dbs.DumpCommand(strings.Join(os.Args, " "), start, time.Now())
}
