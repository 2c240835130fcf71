// Package main provides the CLI entrypoint for typemeta.
//
// typemeta loads Go packages and reports:
//   - the resolved attributes of structs and interface contracts
//   - the members, descriptions and flag decomposition of enumerated types
//   - enum values rendered from and parsed into member lists
package main

import (
	"context"
	"os"
	"os/signal"

	"typemeta/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
