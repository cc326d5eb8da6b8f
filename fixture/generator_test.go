package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/conf"
	"git.enflame.cn/hai.bai/tdgen/helper"
	"git.enflame.cn/hai.bai/tdgen/node"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func absCase(name string) *node.TestCase {
	x := codec.New([]float32{-1, 2}, 2)
	y := codec.New([]float32{1, 2}, 2)
	graph := helper.MakeGraph(
		[]*onnxpb.NodeProto{helper.MakeNode("Abs", []string{"x"}, []string{"y"}, nil)},
		name,
		[]*onnxpb.ValueInfoProto{helper.MakeTensorValueInfo("x", onnxpb.DataTypeFloat, []int64{2})},
		[]*onnxpb.ValueInfoProto{helper.MakeTensorValueInfo("y", onnxpb.DataTypeFloat, []int64{2})},
	)
	return &node.TestCase{
		Name:     name,
		Kind:     node.KindSimple,
		Model:    helper.MakeModel(graph),
		DataSets: []node.DataSet{{Inputs: []codec.Value{x}, Outputs: []codec.Value{y}}},
	}
}

func readTree(t *testing.T, root string) map[string][]byte {
	t.Helper()
	files := make(map[string][]byte)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := os.ReadFile(path)
		rel, _ := filepath.Rel(root, path)
		files[rel] = b
		return err
	})
	require.NoError(t, err)
	return files
}

func TestGenerateLayout(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(out, WithLogger(zaptest.NewLogger(t)))
	results, err := g.Generate(context.Background(), []*node.TestCase{absCase("test_abs")})
	require.NoError(t, err)
	require.Len(t, results, 1)

	dir := filepath.Join(out, "simple", "test_abs")
	assert.Equal(t, dir, results[0].Dir)
	require.Len(t, results[0].Files, 3)
	assert.Equal(t, RoleModel, results[0].Files[0].Role)
	assert.Equal(t, -1, results[0].Files[0].DataSet)

	tree := readTree(t, out)
	assert.Len(t, tree, 3)
	for _, rel := range []string{
		"simple/test_abs/model.onnx",
		"simple/test_abs/test_data_set_0/input_0.pb",
		"simple/test_abs/test_data_set_0/output_0.pb",
	} {
		assert.Contains(t, tree, filepath.FromSlash(rel))
	}

	var model onnxpb.ModelProto
	require.NoError(t, onnxpb.Unmarshal(tree[filepath.FromSlash("simple/test_abs/model.onnx")], &model))
	assert.Equal(t, "test_abs", model.Graph.Name)

	in := tree[filepath.FromSlash("simple/test_abs/test_data_set_0/input_0.pb")]
	v, name, err := codec.Decode(model.Graph.Input[0].Type, in)
	require.NoError(t, err)
	assert.Equal(t, "x", name)
	assert.Equal(t, []float32{-1, 2}, codec.Values[float32](v.(*codec.Array)))
	assert.Equal(t, len(in), results[0].Files[1].Size)
	assert.Len(t, results[0].Files[1].SHA256, 64)
}

func TestGenerateIsReproducible(t *testing.T) {
	cases, err := node.CollectTestCases()
	require.NoError(t, err)

	first, second := t.TempDir(), t.TempDir()
	_, err = NewGenerator(first).Generate(context.Background(), cases)
	require.NoError(t, err)

	cases, err = node.CollectTestCases()
	require.NoError(t, err)
	_, err = NewGenerator(second, WithJobs(4)).Generate(context.Background(), cases)
	require.NoError(t, err)

	assert.Equal(t, readTree(t, first), readTree(t, second))
}

func TestGenerateKeepsOrder(t *testing.T) {
	cases := []*node.TestCase{absCase("test_c"), absCase("test_a"), absCase("test_b")}
	results, err := NewGenerator(t.TempDir(), WithJobs(3)).Generate(context.Background(), cases)
	require.NoError(t, err)
	for i, res := range results {
		assert.Same(t, cases[i], res.Case)
	}
}

func TestGenerateRemovesStaleFiles(t *testing.T) {
	out := t.TempDir()
	stale := filepath.Join(conf.NewLayout(out).DataSetDir(node.KindSimple, "test_abs", 7), "input_0.pb")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	_, err := NewGenerator(out).Generate(context.Background(), []*node.TestCase{absCase("test_abs")})
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(out, "simple", "test_abs", "model.onnx"))
}

func TestGenerateErrors(t *testing.T) {
	noModel := absCase("test_no_model")
	noModel.Model = nil

	noData := absCase("test_no_data")
	noData.DataSets = nil

	extra := absCase("test_extra")
	extra.DataSets[0].Inputs = append(extra.DataSets[0].Inputs, codec.Scalar[int64](1))

	mismatch := absCase("test_mismatch")
	mismatch.DataSets[0].Outputs = []codec.Value{codec.Sequence{}}

	for _, c := range []struct {
		tc   *node.TestCase
		want error
	}{
		{noModel, ErrNoModel},
		{noData, ErrNoDataSets},
		{extra, ErrExtraValues},
		{mismatch, codec.ErrKindMismatch},
	} {
		t.Run(c.tc.Name, func(t *testing.T) {
			_, err := NewGenerator(t.TempDir()).Generate(context.Background(), []*node.TestCase{c.tc})
			require.Error(t, err)
			assert.ErrorIs(t, err, c.want)
			assert.Contains(t, err.Error(), c.tc.Name)
		})
	}
}

func TestGenerateNoDataSetsKeepsModel(t *testing.T) {
	out := t.TempDir()
	tc := absCase("test_no_data")
	tc.DataSets = nil
	_, err := NewGenerator(out).Generate(context.Background(), []*node.TestCase{tc})
	require.ErrorIs(t, err, ErrNoDataSets)
	assert.FileExists(t, filepath.Join(out, "simple", "test_no_data", "model.onnx"))
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGenerator(t.TempDir()).Generate(ctx, []*node.TestCase{absCase("test_abs")})
	assert.ErrorIs(t, err, context.Canceled)
}
