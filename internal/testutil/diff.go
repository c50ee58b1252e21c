package testutil

import "fmt"

// PrintWantGot formats a cmp.Diff(want, got) result for test failures.
func PrintWantGot(diff string) string {
	return fmt.Sprintf("(-want +got):\n%s", diff)
}
