package dbexport

import (
	"database/sql"

	"github.com/pkg/errors"
)

// TableSession batches inserts into one table inside a transaction.
type TableSession struct {
	stmt      *sql.Stmt
	tx        *sql.Tx
	cmdString string
	count     int
}

func NewTableSession(db *sql.DB, cmdString string) (TableSession, error) {
	tx, err := db.Begin()
	if err != nil {
		return TableSession{}, errors.Wrap(err, "begin")
	}
	stmt, err := tx.Prepare(cmdString)
	if err != nil {
		tx.Rollback()
		return TableSession{}, errors.Wrapf(err, "prepare %q", cmdString)
	}
	return TableSession{
		stmt:      stmt,
		tx:        tx,
		cmdString: cmdString,
	}, nil
}

func (tabSess *TableSession) exec(args ...any) error {
	if _, err := tabSess.stmt.Exec(args...); err != nil {
		return errors.Wrapf(err, "exec %q", tabSess.cmdString)
	}
	tabSess.count++
	return nil
}

// Count is the number of rows inserted so far.
func (tabSess *TableSession) Count() int {
	return tabSess.count
}

func (tabSess *TableSession) Close() error {
	defer tabSess.stmt.Close()
	return errors.Wrap(tabSess.tx.Commit(), "commit")
}

// Abort drops the rows of an unfinished session.
func (tabSess *TableSession) Abort() {
	tabSess.stmt.Close()
	tabSess.tx.Rollback()
}
