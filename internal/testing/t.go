// Package testing holds test doubles shared by driver tests.
package testing

// T is the subset of testing.TB the doubles report failures through.
type T interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
}
