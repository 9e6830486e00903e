// Command hspflow provides a CLI for decoding alignment records.
//
// Usage:
//
//	hspflow [command] [options]
//
// Commands:
//
//	analyze     Decode one aligned triple into a match line and position sets
//	batch       Prepare a JSON Lines file of hits
//	region      Identity and similarity over a query interval
//	version     Show version information
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
