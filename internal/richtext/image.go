package richtext

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// MaxImageBytes bounds inline images; larger files are rejected rather than
// bloating every stored document.
const MaxImageBytes = 5 << 20

// EncodeImage reads an image and returns it as a self-contained data: URL.
func EncodeImage(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image is empty")
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("image exceeds %d bytes", MaxImageBytes)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("unsupported content type %q", mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// EncodeImageFile encodes the image at path as a data: URL.
func EncodeImageFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return EncodeImage(f)
}
