//go:build windows

package main

import "os"

// stopSignals end a conversion run. SIGTERM is not delivered on Windows.
var stopSignals = []os.Signal{os.Interrupt}
