// Package share builds the text a player posts after a round and a QR
// code that sends friends to the game.
package share

import (
	"fmt"
	"os"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/bpstudios/widescreen/internal/constants"
)

// Message composes the share text for a finished round. The wording
// varies with the result, the score given and the running streak.
func Message(won bool, rating, streak int) string {
	if !won {
		return fmt.Sprintf("I haven't seen today's film on Widescreen.\n\nHave you seen it?\n\n%s", constants.GameURL)
	}
	if rating == 0 {
		if streak > 1 {
			return fmt.Sprintf("I've seen today's film on Widescreen. I'm on a streak of %d!\n\nHave you seen it?\n\n%s", streak, constants.GameURL)
		}
		return fmt.Sprintf("I've seen today's film on Widescreen.\n\nHave you seen it?\n\n%s", constants.GameURL)
	}
	if streak > 1 {
		return fmt.Sprintf("I gave today's film on Widescreen a %d/5. I'm on a streak of %d!\n\nHave you seen it?\n\n%s", rating, streak, constants.GameURL)
	}
	return fmt.Sprintf("I gave today's film on Widescreen a %d/5.\n\nHave you seen it?\n\n%s", rating, constants.GameURL)
}

// WriteQR writes a PNG QR code pointing at the game to path.
func WriteQR(path string) error {
	png, err := qrcode.Encode(constants.GameURL, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("write qr: %w", err)
	}
	return nil
}

// TerminalQR renders the QR code as text for the profile screen, dark
// modules as full blocks.
func TerminalQR() (string, error) {
	code, err := qrcode.New(constants.GameURL, qrcode.Medium)
	if err != nil {
		return "", err
	}
	return code.ToSmallString(false), nil
}
