package cli

import (
	"context"
	"fmt"

	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/share"
	"github.com/bpstudios/widescreen/internal/validation"
)

type ProfileCmd struct {
	Show   ProfileShowCmd   `cmd:"" help:"Show your profile." default:"1"`
	Rename ProfileRenameCmd `cmd:"" help:"Change your display name."`
	QR     ProfileQRCmd     `cmd:"" name:"qr" help:"Print a QR code that links to the game."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data := ctx.Data()
	id, ok := data.UserID()
	if !ok {
		return fmt.Errorf("no player identity, run 'widescreen init' first")
	}

	fmt.Printf("%s (id %s)\n", data.UserName(), id)
	if since, ok := data.AppOpenedDate(); ok {
		fmt.Printf("Playing since %s\n", since.Format("2006-01-02"))
	}
	fmt.Printf("Streak: %d\n", data.Streak())

	ratings := data.Ratings()
	if len(ratings) == 0 {
		fmt.Println("No films rated yet.")
		return nil
	}
	fmt.Printf("\nRated films (%d):\n", len(ratings))
	for _, film := range ratings {
		fmt.Printf("  %-30s %d/5\n", film.Title, film.Rating)
	}
	return nil
}

type ProfileRenameCmd struct {
	Name []string `arg:"" help:"New display name."`
}

func (c *ProfileRenameCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data := ctx.Data()
	id, ok := data.UserID()
	if !ok {
		return fmt.Errorf("no player identity, run 'widescreen init' first")
	}

	name := joinArgs(c.Name)
	if err := validation.ValidateUserName(name); err != nil {
		return err
	}
	if err := data.SetUserName(name); err != nil {
		return err
	}

	// Push the updated profile so friends see the new name
	info := models.UserInfo{
		UserID:   id,
		UserName: name,
		Ratings:  data.Ratings(),
	}
	if since, ok := data.AppOpenedDate(); ok {
		info.UserSince = since.Format("2006-01-02")
	}
	if err := ctx.API.UploadProfile(context.Background(), info); err != nil {
		ctx.Logger.Warn("profile upload failed after rename")
	}

	fmt.Printf("You are now %s.\n", name)
	return nil
}

type ProfileQRCmd struct {
	Out string `help:"Write a PNG to this path instead of printing." type:"path"`
}

func (c *ProfileQRCmd) Run(ctx *Context) error {
	if c.Out != "" {
		if err := share.WriteQR(c.Out); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", c.Out)
		return nil
	}
	text, err := share.TerminalQR()
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}
