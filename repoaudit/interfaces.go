// Package repoaudit provides common infrastructure that doesn't depend
// directly on the pacman database format or the audit pipeline
package repoaudit

import (
	"io"
)

// Version of the program
var Version string

// Progress is a progress displaying entity, it allows progress bars & simple prints
type Progress interface {
	// Writer interface to support progress bar ticking
	io.Writer
	// Start makes progress start its work
	Start()
	// Shutdown shuts down progress display
	Shutdown()
	// Flush waits for all queued messages to be displayed
	Flush()
	// InitBar starts progressbar for count items
	InitBar(count int64)
	// ShutdownBar stops progress bar and hides it
	ShutdownBar()
	// AddBar increments progress for progress bar
	AddBar(count int)
	// Printf does printf but in safe manner: not overwriting progress bar
	Printf(msg string, a ...interface{})
	// ColoredPrintf does printf in colored way + newline
	ColoredPrintf(msg string, a ...interface{})
}
