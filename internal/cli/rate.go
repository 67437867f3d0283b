package cli

import (
	"context"
	"fmt"

	"github.com/bpstudios/widescreen/internal/session"
	"github.com/bpstudios/widescreen/internal/share"
)

type RateCmd struct {
	Score int `arg:"" help:"Score from 1 to 5."`
}

func (c *RateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data := ctx.Data()
	sess := session.New(data, ctx.API, nil)
	if err := sess.Start(context.Background()); err != nil {
		return fmt.Errorf("could not fetch today's film: %w", err)
	}

	sub, err := sess.Rate(c.Score)
	if err != nil {
		return err
	}

	prefs := data.Preferences()
	if prefs.ShareRatings {
		ctx.API.ShareRating(sub, prefs.ShareWithFriends)
	}

	fmt.Printf("Rated %s %d/5.\n\n", sub.Title, sub.Rating)
	fmt.Println(share.Message(true, sub.Rating, data.Streak()))
	return nil
}
