package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/bpstudios/widescreen/internal/dayclock"
	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/session"
	"github.com/bpstudios/widescreen/internal/storage"
)

type TodayCmd struct {
	Watch bool `help:"Keep running and announce the new film at midnight."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data := ctx.Data()
	sess := session.New(data, ctx.API, nil)
	if err := sess.Start(context.Background()); err != nil {
		return fmt.Errorf("could not fetch today's film: %w", err)
	}

	printRound(data, sess)

	if !c.Watch {
		return nil
	}

	fmt.Println("\nWatching for the next film. Press ctrl+c to stop.")
	watchCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watcher := dayclock.NewWatcher(nil)
	watcher.Run(watchCtx, func(dayID int) {
		if err := sess.Rollover(context.Background(), dayID); err != nil {
			fmt.Printf("could not fetch day %d: %v\n", dayID, err)
			return
		}
		fmt.Println()
		printRound(data, sess)
	})
	return nil
}

func printRound(data *storage.Data, sess *session.Session) {
	puzzle := sess.Puzzle()
	now := time.Now()
	fmt.Printf("Day %d · next film in %s\n\n", sess.DayID(), dayclock.UntilMidnight(now))

	switch sess.State() {
	case session.StateInProgress:
		fmt.Printf("Frame %d of %d: %s\n", sess.Attempt(), models.FrameCount, sess.CurrentFrame())
		fmt.Printf("Guesses used: %d\n", len(sess.Guesses()))
		fmt.Println("\nRun 'widescreen guess <title>' to take a guess.")
	case session.StateWon:
		fmt.Printf("Seen: %s (%s, %s)\n", puzzle.Title, puzzle.Director, puzzle.Genre)
		if score, ok := data.Rating(puzzle.Title, puzzle.Poster); ok {
			fmt.Printf("Your rating: %d/5\n", score)
		} else {
			fmt.Println("Run 'widescreen rate <1-5>' to rate it.")
		}
		fmt.Printf("Streak: %d\n", data.Streak())
	case session.StateLost:
		fmt.Printf("Unseen: today's film was %s (%s)\n", puzzle.Title, puzzle.Director)
		if data.Watchlisted(models.WatchlistEntry(puzzle)) {
			fmt.Println("It is on your watchlist.")
		} else {
			fmt.Println("Run 'widescreen watchlist add' to save it for later.")
		}
	}
}
