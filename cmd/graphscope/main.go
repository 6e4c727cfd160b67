// Command graphscope inspects the profile behind a Graph API access token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/graphscope/internal/adapters/driven/config/file"
	"github.com/custodia-labs/graphscope/internal/adapters/driving/cli"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := file.LoadDotEnv(); err != nil {
		logger.Warn("Failed to load .env: %v", err)
	}

	cli.SetVersion(version)
	cli.SetWiring(wire)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
