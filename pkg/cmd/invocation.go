// Package cmd is the command core shared by the Discord bot and the console.
// A command has a name, a description and Run; adapters decide how it is
// reached and what they put in Invocation.Data.
package cmd

import "context"

// Invocation is one call of a command.
type Invocation struct {
	Args []string
	// Data is the adapter payload. The music commands expect *music.Request.
	Data any
}

type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}
