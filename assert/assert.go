package assert

import "fmt"

// Assert panics with the formatted message when cond does not hold. It is
// meant for programming errors in case definitions, not for IO failures.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf(format, args...))
	}
}
