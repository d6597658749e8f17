// Package testing provides test doubles for driving edit sessions without a
// terminal: a keystroke script builder and a capturing writer.
//
// Import with an alias to avoid clashing with the standard library:
//
//	rltesting "github.com/phoenix-tui/readline/testing"
//
// Example:
//
//	in := rltesting.Script("hi", rltesting.KeyLeft, "!", rltesting.KeyEnter)
//	out := rltesting.NewCaptureWriter()
//	// feed in/out to the session under test, then inspect out.Writes
package testing
