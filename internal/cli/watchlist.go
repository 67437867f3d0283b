package cli

import (
	"context"
	"fmt"

	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/session"
)

type WatchlistCmd struct {
	List   WatchlistListCmd   `cmd:"" help:"Show saved films." default:"1"`
	Add    WatchlistAddCmd    `cmd:"" help:"Save today's film for later."`
	Remove WatchlistRemoveCmd `cmd:"" help:"Remove a film by title."`
}

type WatchlistListCmd struct{}

func (c *WatchlistListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	items := ctx.Data().Watchlist()
	if len(items) == 0 {
		fmt.Println("Your watchlist is empty.")
		return nil
	}

	fmt.Printf("Watchlist (%d):\n\n", len(items))
	for _, item := range items {
		fmt.Printf("  %-30s  %-20s  %s, %d min\n", item.Title, item.Director, item.ContentRating, item.RuntimeMinutes)
	}
	return nil
}

type WatchlistAddCmd struct{}

func (c *WatchlistAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data := ctx.Data()
	sess := session.New(data, ctx.API, nil)
	if err := sess.Start(context.Background()); err != nil {
		return fmt.Errorf("could not fetch today's film: %w", err)
	}

	item := models.WatchlistEntry(sess.Puzzle())
	if data.Watchlisted(item) {
		fmt.Printf("%s is already on your watchlist.\n", item.Title)
		return nil
	}
	if err := data.AddWatchlist(item); err != nil {
		return err
	}
	fmt.Printf("Added %s to your watchlist.\n", item.Title)
	return nil
}

type WatchlistRemoveCmd struct {
	Title []string `arg:"" help:"Title of the film to remove."`
}

func (c *WatchlistRemoveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data := ctx.Data()
	title := joinArgs(c.Title)
	for _, item := range data.Watchlist() {
		if item.Title == title {
			if err := data.RemoveWatchlist(item); err != nil {
				return err
			}
			fmt.Printf("Removed %s from your watchlist.\n", title)
			return nil
		}
	}
	return fmt.Errorf("%q is not on your watchlist", title)
}
