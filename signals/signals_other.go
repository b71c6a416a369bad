//go:build !unix

package signals

import "os"

// TerminationSignals is the default set of signals that request a shutdown.
var TerminationSignals = []os.Signal{os.Interrupt}
