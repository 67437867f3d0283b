package cli

import (
	"context"
	"fmt"

	"github.com/bpstudios/widescreen/internal/identity"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	ident, err := identity.Bootstrap(context.Background(), ctx.Data(), ctx.API, ctx.Logger)
	if err != nil {
		return fmt.Errorf("failed to create player identity: %w", err)
	}

	fmt.Printf("Initialized widescreen storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Printf("Playing as %s (id %s)\n", ident.UserName, ident.UserID)
	return nil
}
