// Package fixture writes test cases to disk in the ONNX backend test
// layout.
package fixture

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"

	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/conf"
	"git.enflame.cn/hai.bai/tdgen/node"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoModel     = errors.New("test case has no model")
	ErrNoDataSets  = errors.New("test case has no data sets")
	ErrExtraValues = errors.New("more values than graph declares")
)

type FileRole string

const (
	RoleModel  FileRole = "model"
	RoleInput  FileRole = "input"
	RoleOutput FileRole = "output"
)

// File is one written file.
type File struct {
	Path    string
	Role    FileRole
	DataSet int // -1 for the model
	Index   int
	Size    int
	SHA256  string
}

type Result struct {
	Case  *node.TestCase
	Dir   string
	Files []File
}

type Generator struct {
	layout conf.Layout
	jobs   int
	logger *zap.Logger
}

type Option func(*Generator)

// WithJobs bounds how many cases are written at once.
func WithJobs(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.jobs = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewGenerator(output string, opts ...Option) *Generator {
	g := &Generator{
		layout: conf.NewLayout(output),
		jobs:   conf.DefaultJobs,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes every case and returns one result per case, in the
// order of cases. The first failure cancels the cases not yet started.
func (g *Generator) Generate(ctx context.Context, cases []*node.TestCase) ([]Result, error) {
	results := make([]Result, len(cases))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.jobs)
	for i, tc := range cases {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := g.writeCase(tc)
			if err != nil {
				return errors.WithMessagef(err, "case %s/%s", tc.Kind, tc.Name)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	g.logger.Info("fixtures written",
		zap.String("output", g.layout.Root()), zap.Int("cases", len(cases)))
	return results, nil
}

func (g *Generator) writeCase(tc *node.TestCase) (Result, error) {
	dir := g.layout.CaseDir(tc.Kind, tc.Name)
	res := Result{Case: tc, Dir: dir}
	if err := prepareDir(dir); err != nil {
		return res, err
	}

	if tc.Model == nil {
		return res, ErrNoModel
	}
	f, err := writeFile(g.layout.ModelPath(tc.Kind, tc.Name), onnxpb.Marshal(tc.Model))
	if err != nil {
		return res, err
	}
	f.Role, f.DataSet = RoleModel, -1
	res.Files = append(res.Files, f)

	if len(tc.DataSets) == 0 {
		return res, ErrNoDataSets
	}
	graph := tc.Model.Graph
	if graph == nil {
		graph = &onnxpb.GraphProto{}
	}
	for i, ds := range tc.DataSets {
		dsDir := conf.DataSetDir(dir, i)
		if err := prepareDir(dsDir); err != nil {
			return res, err
		}
		inputs, err := writeValues(ds.Inputs, graph.Input, dsDir, RoleInput, i)
		if err != nil {
			return res, err
		}
		outputs, err := writeValues(ds.Outputs, graph.Output, dsDir, RoleOutput, i)
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, inputs...)
		res.Files = append(res.Files, outputs...)
	}

	g.logger.Debug("case written",
		zap.String("case", tc.Name),
		zap.Int("data_sets", len(tc.DataSets)),
		zap.Int("files", len(res.Files)))
	return res, nil
}

// writeValues encodes values[j] against infos[j], taking the file's
// message name from the value info.
func writeValues(values []codec.Value, infos []*onnxpb.ValueInfoProto, dir string, role FileRole, dataSet int) ([]File, error) {
	if len(values) > len(infos) {
		return nil, errors.Wrapf(ErrExtraValues, "%d %ss for %d declared", len(values), role, len(infos))
	}
	files := make([]File, 0, len(values))
	for j, v := range values {
		b, err := codec.Marshal(infos[j].Type, v, infos[j].Name)
		if err != nil {
			return nil, errors.WithMessagef(err, "%s %d (%s)", role, j, infos[j].Name)
		}
		path := conf.InputPath(dir, j)
		if role == RoleOutput {
			path = conf.OutputPath(dir, j)
		}
		f, err := writeFile(path, b)
		if err != nil {
			return nil, err
		}
		f.Role, f.DataSet, f.Index = role, dataSet, j
		files = append(files, f)
	}
	return files, nil
}

// prepareDir recreates dir empty so stale files from earlier runs vanish.
func prepareDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, "remove %s", dir)
	}
	return errors.Wrapf(os.MkdirAll(dir, 0o755), "create %s", dir)
}

func writeFile(path string, b []byte) (File, error) {
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return File{}, errors.Wrapf(err, "write %s", path)
	}
	sum := sha256.Sum256(b)
	return File{Path: path, Size: len(b), SHA256: hex.EncodeToString(sum[:])}, nil
}
