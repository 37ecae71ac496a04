//go:build !windows

package main

import (
	"os"
	"syscall"
)

// stopSignals end a conversion run; docker stop sends SIGTERM.
var stopSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
