package middleware

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/keshon/jukebox/pkg/cmd"
)

// WithRecover turns a panicking command into an error so one bad request
// does not take the adapter down.
func WithRecover() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[ERROR] Panic in command %s: %v\n%s", c.Name(), r, debug.Stack())
					err = fmt.Errorf("command %s panicked: %v", c.Name(), r)
				}
			}()
			return c.Run(ctx, inv)
		})
	}
}
