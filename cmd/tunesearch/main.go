// Command tunesearch indexes an iTunes library export for search.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/tunesearch/internal/adapters/driving/cli"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetWiring(&app{})

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
