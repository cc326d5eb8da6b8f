package dbexport

import (
	"database/sql"
)

const (
	createVersionTable = `
	CREATE TABLE version(tool_version TEXT,ir_version INT,opset_version INT,producer TEXT);`
)

func init() {
	RegisterTabInitCommand(createVersionTable)
}

type VerInfoSession struct {
	TableSession
}

func NewVerInfoSession(db *sql.DB) (*VerInfoSession, error) {
	ts, err := NewTableSession(db,
		`insert into version(
			tool_version, ir_version, opset_version, producer
		) values(?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	return &VerInfoSession{TableSession: ts}, nil
}

func (verS *VerInfoSession) AddVerInfo(tool string, irVersion, opsetVersion int64, producer string) error {
	return verS.exec(tool, irVersion, opsetVersion, producer)
}
