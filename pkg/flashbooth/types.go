package flashbooth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// AspectRatio selects the shape of a generated image.
type AspectRatio string

// Supported aspect ratios.
const (
	AspectSquare        AspectRatio = "1:1"
	AspectPortrait2x3   AspectRatio = "2:3"
	AspectLandscape3x2  AspectRatio = "3:2"
	AspectPortrait3x4   AspectRatio = "3:4"
	AspectLandscape4x3  AspectRatio = "4:3"
	AspectPortrait9x16  AspectRatio = "9:16"
	AspectLandscape16x9 AspectRatio = "16:9"
	AspectUltrawide     AspectRatio = "21:9"
)

// AspectRatios lists every supported aspect ratio in display order.
var AspectRatios = []AspectRatio{
	AspectSquare,
	AspectPortrait2x3,
	AspectLandscape3x2,
	AspectPortrait3x4,
	AspectLandscape4x3,
	AspectPortrait9x16,
	AspectLandscape16x9,
	AspectUltrawide,
}

// Valid reports whether r is one of the supported aspect ratios.
func (r AspectRatio) Valid() bool {
	for _, candidate := range AspectRatios {
		if r == candidate {
			return true
		}
	}
	return false
}

// ParseAspectRatio validates s and returns it as an AspectRatio.
func ParseAspectRatio(s string) (AspectRatio, error) {
	r := AspectRatio(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAspectRatio, s)
	}
	return r, nil
}

// Photo is a single captured frame.
type Photo struct {
	ID        string    `json:"id"`
	DataURL   string    `json:"dataUrl"`
	Timestamp time.Time `json:"timestamp"`
}

// Image is binary image data with its MIME type.
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURL renders the image as a base64 data URL.
func (i *Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ParseDataURL decodes a base64 data URL of the form data:<mime>;base64,<payload>.
// A missing comma delimiter, an empty payload, or an undecodable payload yields
// ErrMalformedImage. The MIME type defaults to image/jpeg when the header omits it.
func ParseDataURL(dataURL string) (*Image, error) {
	header, payload, found := strings.Cut(dataURL, ",")
	if !found {
		return nil, fmt.Errorf("%w: missing data delimiter", ErrMalformedImage)
	}
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedImage)
	}

	mimeType := "image/jpeg"
	if rest, ok := strings.CutPrefix(header, "data:"); ok {
		if mt, _, _ := strings.Cut(rest, ";"); mt != "" {
			mimeType = mt
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImage, err)
	}
	return &Image{MIMEType: mimeType, Data: data}, nil
}
