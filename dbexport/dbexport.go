// Package dbexport writes a SQLite catalog of generated fixtures: one row
// per test case and per file, plus the run's version and command line.
package dbexport

import (
	"database/sql"
	"os"
	"time"

	"git.enflame.cn/hai.bai/tdgen/fixture"
	"git.enflame.cn/hai.bai/tdgen/helper"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const schemaVersion = "1.0"

// DbSession owns a catalog file. Table sessions run one after another;
// sqlite does not take two writers.
type DbSession struct {
	targetName string
	dbObject   *sql.DB
	logger     *zap.Logger

	caseCount    int
	fileCount    int
	commandCount int
}

func ifFileExist(file string) bool {
	stat, err := os.Stat(file)
	return nil == err && !stat.IsDir()
}

// NewDbSession recreates target with the registered schema.
func NewDbSession(target string, logger *zap.Logger) (*DbSession, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ifFileExist(target) {
		if err := os.Remove(target); err != nil {
			return nil, errors.Wrapf(err, "remove old catalog %s", target)
		}
	}

	db, err := sql.Open("sqlite3", target)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", target)
	}
	sqlStmt := getDbInitSchema()
	if _, err = db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "create schema in %s", target)
	}

	return &DbSession{
		targetName: target,
		dbObject:   db,
		logger:     logger,
	}, nil
}

// DumpResults adds a test_case row per result and a fixture_file row per
// written file.
func (dbs *DbSession) DumpResults(results []fixture.Result) error {
	tcs, err := NewTestCaseSession(dbs.dbObject)
	if err != nil {
		return err
	}
	for i, res := range results {
		if err := tcs.AddTestCase(dbs.caseCount+i, res.Case, res.Dir); err != nil {
			tcs.Abort()
			return err
		}
	}
	if err := tcs.Close(); err != nil {
		return err
	}

	ffs, err := NewFixtureFileSession(dbs.dbObject)
	if err != nil {
		return err
	}
	for i, res := range results {
		for _, f := range res.Files {
			if err := ffs.AddFile(dbs.fileCount+ffs.Count(), dbs.caseCount+i, f); err != nil {
				ffs.Abort()
				return err
			}
		}
	}
	if err := ffs.Close(); err != nil {
		return err
	}

	dbs.caseCount += tcs.Count()
	dbs.fileCount += ffs.Count()
	dbs.logger.Info("catalog updated",
		zap.String("catalog", dbs.targetName),
		zap.Int("cases", tcs.Count()),
		zap.Int("files", ffs.Count()))
	return nil
}

func (dbs *DbSession) DumpVersion(tool string) error {
	vs, err := NewVerInfoSession(dbs.dbObject)
	if err != nil {
		return err
	}
	if err := vs.AddVerInfo(tool, helper.IRVersion, helper.DefaultOpsetVersion, helper.Producer); err != nil {
		vs.Abort()
		return err
	}
	return vs.Close()
}

func (dbs *DbSession) DumpCommand(cmd string, start, end time.Time) error {
	cs, err := NewCmdInfoSession(dbs.dbObject)
	if err != nil {
		return err
	}
	if err := cs.AddCmdInfo(cmd, start.UnixNano(), end.UnixNano()); err != nil {
		cs.Abort()
		return err
	}
	dbs.commandCount++
	return cs.Close()
}

// Close writes the header rows, whose counts are only known at the end,
// and closes the file.
func (dbs *DbSession) Close() error {
	defer dbs.dbObject.Close()
	hs, err := NewHeaderSess(dbs.dbObject)
	if err != nil {
		return err
	}
	for _, h := range []struct {
		table, category string
		count           int
	}{
		{"test_case", TableCategory_TestCase, dbs.caseCount},
		{"fixture_file", TableCategory_FixtureFile, dbs.fileCount},
		{"command", TableCategory_Command, dbs.commandCount},
	} {
		if err := hs.AddHeader(h.table, schemaVersion, h.category, h.count); err != nil {
			hs.Abort()
			return err
		}
	}
	return hs.Close()
}
