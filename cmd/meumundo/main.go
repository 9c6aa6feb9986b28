// Package main is the single-binary entrypoint for Meu Mundo.
package main

import "github.com/meu-mundo/meumundo/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
