package assert

import (
	"fmt"
	"testing"
)

func TestAssert(t *testing.T) {
	(func() {
		defer func() {
			if err := recover(); fmt.Sprintf("%v", err) != "error for test 7" {
				t.Fail()
			}
		}()
		Assert(false, "error for test %d", 7)
	})()
}

func TestAssertHolds(t *testing.T) {
	defer func() {
		if err := recover(); err != nil {
			t.Fatalf("unexpected panic: %v", err)
		}
	}()
	Assert(true, "never")
}
