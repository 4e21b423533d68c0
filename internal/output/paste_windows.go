//go:build windows

package output

import (
	"context"
	"fmt"
)

// platformPaste is not implemented on Windows yet.
// TODO: send Ctrl+V via SendInput.
func platformPaste(ctx context.Context) error {
	return fmt.Errorf("paste not supported on windows")
}
