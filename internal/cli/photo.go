package cli

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// photoDataURL returns arg unchanged when it already is a data URL, and
// otherwise reads the file at arg and encodes it as one.
func photoDataURL(arg string) (string, error) {
	if strings.HasPrefix(arg, "data:") {
		return arg, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s is empty", flashbooth.ErrMalformedImage, arg)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: %s is %s, not an image", flashbooth.ErrMalformedImage, arg, mimeType)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
