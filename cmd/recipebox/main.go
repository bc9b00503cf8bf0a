// Command recipebox manages a local recipe store.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/mesh-intelligence/recipebox/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
