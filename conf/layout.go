package conf

import (
	"fmt"
	"path/filepath"
)

const ModelFile = "model.onnx"

// Layout maps cases to paths below an output root:
//
//	<root>/<kind>/<name>/model.onnx
//	<root>/<kind>/<name>/test_data_set_<i>/input_<j>.pb
//	<root>/<kind>/<name>/test_data_set_<i>/output_<j>.pb
type Layout struct {
	root string
}

func NewLayout(root string) Layout {
	return Layout{root: root}
}

func (l Layout) Root() string {
	return l.root
}

func (l Layout) CaseDir(kind, name string) string {
	return filepath.Join(l.root, kind, name)
}

func (l Layout) ModelPath(kind, name string) string {
	return filepath.Join(l.CaseDir(kind, name), ModelFile)
}

func (l Layout) DataSetDir(kind, name string, i int) string {
	return DataSetDir(l.CaseDir(kind, name), i)
}

// DataSetDir is the i-th data set directory of a case directory.
func DataSetDir(caseDir string, i int) string {
	return filepath.Join(caseDir, fmt.Sprintf("test_data_set_%d", i))
}

func InputPath(dataSetDir string, j int) string {
	return filepath.Join(dataSetDir, fmt.Sprintf("input_%d.pb", j))
}

func OutputPath(dataSetDir string, j int) string {
	return filepath.Join(dataSetDir, fmt.Sprintf("output_%d.pb", j))
}
