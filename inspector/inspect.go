// Package inspector prints generated fixtures and their catalogs.
package inspector

import (
	"database/sql"
	"fmt"
	"io"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// InspectKind prints the cases of one kind with their file counts.
func InspectKind(out io.Writer, db *sql.DB, kind string) error {
	rows, err := db.Query(`
		SELECT c.name, c.op_types, c.data_sets, COUNT(f.idx), COALESCE(SUM(f.size), 0)
		FROM test_case c LEFT JOIN fixture_file f ON f.case_idx = c.idx
		WHERE c.kind = ?
		GROUP BY c.idx ORDER BY c.name`, kind)
	if err != nil {
		return errors.Wrapf(err, "query cases of %s", kind)
	}
	defer rows.Close()

	fmt.Fprintf(out, "### %v ###\n", kind)
	var cases, bytes int
	for rows.Next() {
		var name, ops string
		var dataSets, files, size int
		if err := rows.Scan(&name, &ops, &dataSets, &files, &size); err != nil {
			return errors.Wrap(err, "scan case")
		}
		fmt.Fprintf(out, "%-40v\t%-24v\t%v set(s)\t%v file(s)\t%v B\n", name, ops, dataSets, files, size)
		cases++
		bytes += size
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "iterate cases")
	}
	fmt.Fprintf(out, "%v case(s), %v byte(s)\n\n", cases, bytes)
	return nil
}

// GetDistinctKinds returns the case kinds, sorted.
func GetDistinctKinds(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT DISTINCT(kind) FROM test_case ORDER BY kind")
	if err != nil {
		return nil, errors.Wrap(err, "query kinds")
	}
	defer rows.Close()
	var kinds []string
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			return nil, errors.Wrap(err, "scan kind")
		}
		kinds = append(kinds, kind)
	}
	return kinds, rows.Err()
}

// InspectMain summarizes the catalog at targetName.
func InspectMain(out io.Writer, targetName string) error {
	db, err := sql.Open("sqlite3", targetName)
	if err != nil {
		return errors.Wrapf(err, "open %s", targetName)
	}
	defer db.Close()

	var tool, producer string
	var irVersion, opset int64
	err = db.QueryRow("SELECT tool_version, ir_version, opset_version, producer FROM version").
		Scan(&tool, &irVersion, &opset, &producer)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return errors.Wrapf(err, "read version of %s", targetName)
	default:
		fmt.Fprintf(out, "tdgen %v, producer %v, ir_version %v, opset %v\n\n", tool, producer, irVersion, opset)
	}

	kinds, err := GetDistinctKinds(db)
	if err != nil {
		return err
	}
	for _, kind := range kinds {
		if err := InspectKind(out, db, kind); err != nil {
			return err
		}
	}
	return nil
}
