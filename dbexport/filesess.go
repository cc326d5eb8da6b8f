package dbexport

import (
	"database/sql"

	"git.enflame.cn/hai.bai/tdgen/fixture"
)

const (
	createFixtureFileTable = `
	CREATE TABLE fixture_file(idx INT,case_idx INT,role TEXT,data_set INT,
		item INT,path TEXT,size INT,sha256 TEXT);`
)

func init() {
	RegisterTabInitCommand(createFixtureFileTable)
}

type FixtureFileSession struct {
	TableSession
}

func NewFixtureFileSession(db *sql.DB) (*FixtureFileSession, error) {
	ts, err := NewTableSession(db, `insert into fixture_file(
		idx, case_idx, role, data_set,
		item, path, size, sha256
	) values(?, ?, ?, ?,
		?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	return &FixtureFileSession{TableSession: ts}, nil
}

func (ffs *FixtureFileSession) AddFile(idx, caseIdx int, f fixture.File) error {
	return ffs.exec(idx, caseIdx, string(f.Role), f.DataSet, f.Index, f.Path, f.Size, f.SHA256)
}
