package dbexport

import "strings"

type DbTabGen struct {
	initCmd []string
}

var (
	dbTab DbTabGen
)

func (d *DbTabGen) Append(cmd string) {
	d.initCmd = append(d.initCmd, cmd)
}

// RegisterTabInitCommand adds a CREATE statement to the schema. Table
// files call it from init.
func RegisterTabInitCommand(cmd string) {
	dbTab.Append(cmd)
}

func GetRegisteredInitCmds() []string {
	return dbTab.initCmd
}

func getDbInitSchema() string {
	return strings.Join(GetRegisteredInitCmds(), "\n")
}
