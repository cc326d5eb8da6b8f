// Package node is the registry of operator test cases. Each operator file
// registers exporters from init; an exporter builds a model and computes
// the expected outputs for its inputs.
package node

import (
	"hash/fnv"
	"math/rand/v2"
	"sort"

	"git.enflame.cn/hai.bai/tdgen/codec"
	"git.enflame.cn/hai.bai/tdgen/onnxpb"
	"github.com/pkg/errors"
)

const (
	KindSimple = "simple"

	DefaultRTol = 1e-3
	DefaultATol = 1e-7
)

var (
	ErrUnknownOpType = errors.New("no test cases registered for op type")
	ErrDuplicateCase = errors.New("duplicate test case")
)

// DataSet is one matched pair of inputs and expected outputs.
type DataSet struct {
	Inputs  []codec.Value
	Outputs []codec.Value
}

type TestCase struct {
	Name      string
	ModelName string
	Kind      string
	Model     *onnxpb.ModelProto
	DataSets  []DataSet
	RTol      float64
	ATol      float64
}

// OpTypes lists the op types used by the case's graph.
func (tc *TestCase) OpTypes() []string {
	if tc.Model == nil || tc.Model.Graph == nil {
		return nil
	}
	return tc.Model.Graph.OpTypes()
}

// Exporter produces the cases of one operator.
type Exporter func(e *Expector)

var registry = map[string][]Exporter{}

// Register adds an exporter for opType.
func Register(opType string, export Exporter) {
	registry[opType] = append(registry[opType], export)
}

// OpTypes returns the registered op types, sorted.
func OpTypes() []string {
	ops := make([]string, 0, len(registry))
	for op := range registry {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Expector collects the cases of one operator.
type Expector struct {
	opType string
	rng    *rand.Rand
	cases  []*TestCase
}

func newExpector(opType string) *Expector {
	h := fnv.New64a()
	h.Write([]byte(opType))
	seed := h.Sum64()
	return &Expector{
		opType: opType,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Rand is seeded from the op type, so the data of one operator does not
// depend on which other operators were collected.
func (e *Expector) Rand() *rand.Rand {
	return e.rng
}

// Expect records a case with one data set. An empty name defaults to the
// graph name.
func (e *Expector) Expect(model *onnxpb.ModelProto, inputs, outputs []codec.Value, name string) {
	modelName := ""
	if model != nil && model.Graph != nil {
		modelName = model.Graph.Name
	}
	if name == "" {
		name = modelName
	}
	e.cases = append(e.cases, &TestCase{
		Name:      name,
		ModelName: modelName,
		Kind:      KindSimple,
		Model:     model,
		DataSets:  []DataSet{{Inputs: inputs, Outputs: outputs}},
		RTol:      DefaultRTol,
		ATol:      DefaultATol,
	})
}

// CollectTestCases runs the exporters of the given op types, or of every
// registered op type when none is given. Cases are sorted by kind and name.
func CollectTestCases(opTypes ...string) ([]*TestCase, error) {
	if len(opTypes) == 0 {
		opTypes = OpTypes()
	}
	seen := make(map[string]bool)
	var cases []*TestCase
	for _, op := range opTypes {
		if seen[op] {
			continue
		}
		seen[op] = true
		exporters, ok := registry[op]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownOpType, "%q", op)
		}
		e := newExpector(op)
		for _, export := range exporters {
			export(e)
		}
		cases = append(cases, e.cases...)
	}

	sort.SliceStable(cases, func(i, j int) bool {
		if cases[i].Kind != cases[j].Kind {
			return cases[i].Kind < cases[j].Kind
		}
		return cases[i].Name < cases[j].Name
	})
	for i := 1; i < len(cases); i++ {
		if cases[i].Kind == cases[i-1].Kind && cases[i].Name == cases[i-1].Name {
			return nil, errors.Wrapf(ErrDuplicateCase, "%s/%s", cases[i].Kind, cases[i].Name)
		}
	}
	return cases, nil
}
