package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/session"
	"github.com/bpstudios/widescreen/internal/suggest"
)

type GuessCmd struct {
	Title []string `arg:"" help:"Film title to guess."`
}

func (c *GuessCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data := ctx.Data()
	sess := session.New(data, ctx.API, nil)
	if err := sess.Start(context.Background()); err != nil {
		return fmt.Errorf("could not fetch today's film: %w", err)
	}
	if sess.State().Terminal() {
		fmt.Println("Today's round is already over. Come back after midnight.")
		return nil
	}

	guess := strings.Join(c.Title, " ")
	state, err := sess.SubmitGuess(guess)
	if err != nil {
		return err
	}

	switch state {
	case session.StateWon:
		fmt.Printf("Correct! You've seen %s. Streak: %d\n", sess.Puzzle().Title, data.Streak())
		fmt.Println("Run 'widescreen rate <1-5>' to rate it.")
	case session.StateLost:
		fmt.Printf("Out of attempts. Today's film was %s.\n", sess.Puzzle().Title)
	default:
		remaining := models.FrameCount - sess.Attempt() + 1
		fmt.Printf("Not it. %d attempt(s) left, next frame: %s\n", remaining, sess.CurrentFrame())
		if titles, err := ctx.API.AllTitles(context.Background()); err == nil {
			if hints := suggest.Titles(titles, guess); len(hints) > 0 {
				fmt.Printf("Close titles: %s\n", strings.Join(hints, ", "))
			}
		}
	}
	return nil
}
