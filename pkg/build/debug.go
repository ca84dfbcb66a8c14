package build

import "fmt"

// DebugMode controls precondition checking. When true, configuration
// mistakes such as registering a handler twice or creating an instance with
// no matching handler panic immediately. When false, the checks are skipped
// and behavior on violation is undefined.
var DebugMode = true

// SetDebugMode enables or disables debug mode for the package.
func SetDebugMode(debug bool) {
	DebugMode = debug
}

// assertf panics with a formatted message when cond is false in debug mode.
func assertf(cond bool, format string, args ...any) {
	if cond || !DebugMode {
		return
	}
	panic("treesync: " + fmt.Sprintf(format, args...))
}
