package dbexport

import (
	"database/sql"
)

const (
	createCommandTable = `
	CREATE TABLE command(command TEXT,start_timestamp INT,end_timestamp INT);`
)

func init() {
	RegisterTabInitCommand(createCommandTable)
}

// CmdInfoSession records the command line of the run that produced the
// catalog. Timestamps are unix nanoseconds.
type CmdInfoSession struct {
	TableSession
}

func NewCmdInfoSession(db *sql.DB) (*CmdInfoSession, error) {
	ts, err := NewTableSession(db,
		`insert into command(
			command, start_timestamp, end_timestamp
		) values(?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	return &CmdInfoSession{TableSession: ts}, nil
}

func (cmdS *CmdInfoSession) AddCmdInfo(cmd string, start, end int64) error {
	return cmdS.exec(cmd, start, end)
}
