// Command styml is a thin CLI front-end over the styml library: it decodes
// a file (or stdin, given '-') and dumps it either as round-trippable YAML
// or as the structural comparison form the reference test suite expects.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), RootCommand())
}
