package cli

import (
	"context"
	"fmt"

	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/validation"
)

type PrefsCmd struct {
	Show PrefsShowCmd `cmd:"" help:"Show current preferences." default:"1"`
	Set  PrefsSetCmd  `cmd:"" help:"Change a preference."`
}

type PrefsShowCmd struct{}

func (c *PrefsShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	prefs := ctx.Data().Preferences()
	fmt.Printf("share-ratings      %v\n", prefs.ShareRatings)
	fmt.Printf("share-with-friends %v\n", prefs.ShareWithFriends)
	fmt.Printf("daily-notif        %v\n", prefs.DailyNotif)
	fmt.Printf("review-notif       %v\n", prefs.ReviewNotif)
	fmt.Printf("theme              %s\n", prefs.SelectedTheme)
	return nil
}

type PrefsSetCmd struct {
	Name  string `arg:"" help:"Preference name (share-ratings, share-with-friends, daily-notif, review-notif, theme)."`
	Value string `arg:"" help:"New value (true/false, or a theme name)."`
}

func (c *PrefsSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data := ctx.Data()
	prefs := data.Preferences()
	notifWasOn := prefs.DailyNotif || prefs.ReviewNotif

	if err := validation.ApplyPreference(&prefs, c.Name, c.Value); err != nil {
		return err
	}
	if err := data.SavePreferences(prefs); err != nil {
		return err
	}

	// Turning every notification off drops the stored token
	if notifWasOn && !prefs.DailyNotif && !prefs.ReviewNotif {
		if id, ok := data.UserID(); ok {
			if err := ctx.API.RemovePushToken(context.Background(), id); err != nil {
				ctx.Logger.Warn("failed to remove notification token")
			}
		}
	}

	fmt.Printf("Set %s to %s.\n", c.Name, c.Value)
	if c.Name == "theme" {
		fmt.Printf("Theme will apply next time the interface starts (%s..%s).\n", models.Theme1, models.Theme4)
	}
	return nil
}
