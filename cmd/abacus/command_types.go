package main

import (
	"fmt"

	"github.com/randalmurphal/abacus/pkg/abacus/types"
)

// TypesCmd lists registered type names.
type TypesCmd struct{}

// Run executes the types command
func (cmd *TypesCmd) Run(ctx *Context) error {
	for _, name := range types.NewRegistry().Names() {
		fmt.Fprintln(ctx.Stdout, name)
	}
	return nil
}
