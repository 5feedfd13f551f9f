package backup

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned on systems without a clipboard tool.
var ErrClipboardUnavailable = errors.New("no clipboard available (install xclip, xsel or wl-clipboard)")

// CopyToClipboard places a backup document on the system clipboard.
func CopyToClipboard(doc []byte) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(string(doc))
}

// PasteFromClipboard reads a backup document from the system clipboard.
func PasteFromClipboard() ([]byte, error) {
	if clipboard.Unsupported {
		return nil, ErrClipboardUnavailable
	}
	s, err := clipboard.ReadAll()
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(s)), nil
}
