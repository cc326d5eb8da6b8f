package dbexport

import (
	"database/sql"
	"strings"

	"git.enflame.cn/hai.bai/tdgen/node"
)

const (
	createTestCaseTable = `
	CREATE TABLE test_case(idx INT,kind TEXT,name TEXT,model_name TEXT,
		op_types TEXT,data_sets INT,rtol REAL,atol REAL,dir TEXT);`
)

func init() {
	RegisterTabInitCommand(createTestCaseTable)
}

type TestCaseSession struct {
	TableSession
}

func NewTestCaseSession(db *sql.DB) (*TestCaseSession, error) {
	ts, err := NewTableSession(db, `insert into test_case(
		idx, kind, name, model_name,
		op_types, data_sets, rtol, atol, dir
	) values(?, ?, ?, ?,
		?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	return &TestCaseSession{TableSession: ts}, nil
}

func (tcs *TestCaseSession) AddTestCase(idx int, tc *node.TestCase, dir string) error {
	return tcs.exec(idx, tc.Kind, tc.Name, tc.ModelName,
		strings.Join(tc.OpTypes(), ","), len(tc.DataSets), tc.RTol, tc.ATol, dir)
}
