//go:build unix

package signals

import (
	"os"

	"golang.org/x/sys/unix"
)

// TerminationSignals is the default set of signals that request a shutdown.
var TerminationSignals = []os.Signal{unix.SIGTERM, unix.SIGINT}
