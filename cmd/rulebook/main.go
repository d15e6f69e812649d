// Command rulebook manages wargame rules in a markdown vault.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/rulebook/internal/adapters/driving/cli"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetBootstrap(build)
	code := cli.Main(ctx)

	stop()
	os.Exit(code)
}
