// Wardrobe: a personal clothing catalog.
//
// Items and outfit combinations live in one local document. The same
// catalog is reachable from the command line and, through `wardrobe serve`,
// from any MCP host over stdio.
//
// Usage:
//
//	wardrobe item add --category Shirts --color navy
//	wardrobe combo add --name Office <item-id> <item-id>
//	wardrobe stats
//	wardrobe serve    # Start MCP server (stdio transport)
package main

import (
	"context"
	"os"

	"github.com/HendryAvila/wardrobe/internal/server"
	"github.com/charmbracelet/fang"
)

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(server.Version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
