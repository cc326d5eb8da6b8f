package dbexport

import (
	"database/sql"
)

const (
	createHeaderTable = `
	CREATE TABLE header(table_name TEXT,version TEXT,category TEXT,count INT);`
)

const (
	TableCategory_TestCase    = "TestCase"
	TableCategory_FixtureFile = "FixtureFile"
	TableCategory_Command     = "Command"
)

func init() {
	RegisterTabInitCommand(createHeaderTable)
}

type HeaderSession struct {
	TableSession
}

func NewHeaderSess(db *sql.DB) (*HeaderSession, error) {
	ts, err := NewTableSession(db,
		`insert into header(table_name, version, category, count) values(?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	return &HeaderSession{TableSession: ts}, nil
}

func (hs *HeaderSession) AddHeader(tableName string, version string, category string,
	count int) error {
	return hs.exec(tableName, version, category, count)
}
