package trellis

import (
	"fmt"
	"os"
)

// globalDebug gates diagnostic logging across the package. Off by default;
// flip it with SetDebug.
var globalDebug bool

// SetDebug enables or disables diagnostic logging: per-flush renderer
// stats, atlas resizes, and missing-translation warnings, all written to
// stderr.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugLogf writes one prefixed diagnostic line to stderr when debug
// logging is on.
func debugLogf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[trellis] "+format+"\n", args...)
}
