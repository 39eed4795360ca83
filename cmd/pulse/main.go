// Command pulse is the terminal client for NEET Pulse. It logs practice test
// scores, shows history and trends, asks the AI mentor for an assessment and
// runs the exam countdown, all against the configured storage backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newCLI()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
