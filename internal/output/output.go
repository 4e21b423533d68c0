// Package output delivers transcribed text to its destination:
// the system clipboard, stdout, or a simulated paste into the focused
// application.
package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

// Mode selects where transcribed text goes.
type Mode string

const (
	ModeClipboard Mode = "clipboard"
	ModeStdout    Mode = "stdout"
	ModePaste     Mode = "paste"
)

var validModes = map[string]Mode{
	"clipboard": ModeClipboard,
	"stdout":    ModeStdout,
	"paste":     ModePaste,
}

// ErrDelivery indicates the text could not be delivered, e.g. the
// clipboard is unavailable.
var ErrDelivery = errors.New("delivery failed")

// ParseMode validates an output mode name. Unknown names are rejected
// with the valid set in the error message.
func ParseMode(s string) (Mode, error) {
	if m, ok := validModes[s]; ok {
		return m, nil
	}
	names := make([]string, 0, len(validModes))
	for name := range validModes {
		names = append(names, name)
	}
	sort.Strings(names)
	return "", fmt.Errorf("invalid output mode %q, must be one of: %s", s, strings.Join(names, ", "))
}

// Deliverer sends text to a destination. Stdout is configurable so
// tests can capture it.
type Deliverer struct {
	Stdout io.Writer
}

func New() *Deliverer {
	return &Deliverer{Stdout: os.Stdout}
}

// Deliver sends text using the given mode. Paste leaves the text on the
// clipboard even when the paste keystroke itself fails.
func (d *Deliverer) Deliver(ctx context.Context, text string, mode Mode) error {
	switch mode {
	case ModeClipboard:
		return toClipboard(text)
	case ModeStdout:
		_, err := io.WriteString(d.Stdout, text)
		return err
	case ModePaste:
		if err := toClipboard(text); err != nil {
			return err
		}
		if err := platformPaste(ctx); err != nil {
			return fmt.Errorf("%w: paste simulation failed (text is still on the clipboard): %v", ErrDelivery, err)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown mode %q", ErrDelivery, mode)
}

func toClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: clipboard not available: %v", ErrDelivery, err)
	}
	return nil
}
