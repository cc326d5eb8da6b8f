package inspector

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/conf"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/pkg/errors"
)

var ErrNameMismatch = errors.New("serialized name differs from graph")

// TypeString renders t as e.g. "seq(tensor(FLOAT)[?])".
func TypeString(t *onnxpb.TypeProto) string {
	switch t.Category() {
	case onnxpb.CategoryTensor:
		s := fmt.Sprintf("tensor(%v)", t.TensorType.ElemType)
		if shape := t.TensorType.Shape; shape != nil {
			dims := make([]string, len(shape.Dim))
			for i, d := range shape.Dim {
				if d.DimParam != "" {
					dims[i] = d.DimParam
				} else {
					dims[i] = strconv.FormatInt(d.DimValue, 10)
				}
			}
			s += "[" + strings.Join(dims, ",") + "]"
		}
		return s
	case onnxpb.CategorySequence:
		return "seq(" + TypeString(t.SequenceType.ElemType) + ")"
	case onnxpb.CategoryMap:
		return fmt.Sprintf("map(%v,%v)", t.MapType.KeyType, TypeString(t.MapType.ValueType))
	case onnxpb.CategoryOptional:
		return "optional(" + TypeString(t.OptionalType.ElemType) + ")"
	}
	return "?"
}

// LoadModel reads the model of a case directory.
func LoadModel(caseDir string) (*onnxpb.ModelProto, error) {
	b, err := os.ReadFile(filepath.Join(caseDir, conf.ModelFile))
	if err != nil {
		return nil, errors.Wrap(err, "read model")
	}
	model := new(onnxpb.ModelProto)
	if err := onnxpb.Unmarshal(b, model); err != nil {
		return nil, errors.WithMessagef(err, "parse %s", conf.ModelFile)
	}
	if model.Graph == nil {
		return nil, errors.Errorf("%s has no graph", conf.ModelFile)
	}
	return model, nil
}

// DataSetDirs lists the test_data_set_<i> directories of a case in index
// order.
func DataSetDirs(caseDir string) ([]string, error) {
	entries, err := os.ReadDir(caseDir)
	if err != nil {
		return nil, errors.Wrap(err, "list case")
	}
	type indexed struct {
		i    int
		name string
	}
	var sets []indexed
	for _, e := range entries {
		rest, ok := strings.CutPrefix(e.Name(), "test_data_set_")
		if !ok || !e.IsDir() {
			continue
		}
		i, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		sets = append(sets, indexed{i, e.Name()})
	}
	sort.Slice(sets, func(a, b int) bool { return sets[a].i < sets[b].i })
	dirs := make([]string, len(sets))
	for k, s := range sets {
		dirs[k] = filepath.Join(caseDir, s.name)
	}
	return dirs, nil
}

// ReadValues decodes the files of one role in a data set directory against
// the declared graph values. Missing trailing files end the list.
func ReadValues(dir string, infos []*onnxpb.ValueInfoProto, output bool) ([]codec.Value, error) {
	var vals []codec.Value
	for j, info := range infos {
		path := conf.InputPath(dir, j)
		if output {
			path = conf.OutputPath(dir, j)
		}
		b, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		v, name, err := codec.Decode(info.Type, b)
		if err != nil {
			return nil, errors.WithMessagef(err, "decode %s", path)
		}
		if name != info.Name {
			return nil, errors.Wrapf(ErrNameMismatch, "%s holds %q, graph declares %q", path, name, info.Name)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// DumpCase prints the signature of a case and a summary of every value in
// its data sets.
func DumpCase(out io.Writer, caseDir string) error {
	model, err := LoadModel(caseDir)
	if err != nil {
		return err
	}
	graph := model.Graph

	opsets := make([]string, len(model.OpsetImport))
	for i, o := range model.OpsetImport {
		domain := o.Domain
		if domain == "" {
			domain = "ai.onnx"
		}
		opsets[i] = fmt.Sprintf("%v:%v", domain, o.Version)
	}
	fmt.Fprintf(out, "model %v (ir_version %v, opsets %v)\n", graph.Name, model.IRVersion, strings.Join(opsets, " "))
	fmt.Fprintf(out, "  nodes: %v\n", strings.Join(graph.OpTypes(), ", "))
	for _, v := range graph.Input {
		fmt.Fprintf(out, "  input  %-16v %v\n", v.Name, TypeString(v.Type))
	}
	for _, v := range graph.Output {
		fmt.Fprintf(out, "  output %-16v %v\n", v.Name, TypeString(v.Type))
	}

	dirs, err := DataSetDirs(caseDir)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		inputs, err := ReadValues(dir, graph.Input, false)
		if err != nil {
			return err
		}
		outputs, err := ReadValues(dir, graph.Output, true)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%v\n", filepath.Base(dir))
		fmt.Fprintf(out, "  inputs:  %v\n", codec.DescribeAll(inputs))
		fmt.Fprintf(out, "  outputs: %v\n", codec.DescribeAll(outputs))
	}
	return nil
}
