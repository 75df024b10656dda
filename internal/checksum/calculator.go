package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// photoIDLength is the number of hex characters kept for photo IDs.
const photoIDLength = 16

// Calculator computes content fingerprints.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculatePhoto computes a checksum of the image carried by a data URL.
	CalculatePhoto(dataURL string) (string, error)
}

// SHA256 implements Calculator using SHA-256.
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculatePhoto decodes dataURL and hashes the image bytes. Whitespace inside
// the base64 payload is ignored. Returns flashbooth.ErrMalformedImage when the
// data URL cannot be decoded.
func (c SHA256) CalculatePhoto(dataURL string) (string, error) {
	img, err := flashbooth.ParseDataURL(stripSpace(dataURL))
	if err != nil {
		return "", err
	}
	return c.CalculateRaw(img.Data), nil
}

// PhotoID returns a short, content-derived photo identifier.
func PhotoID(dataURL string) (string, error) {
	sum, err := New().CalculatePhoto(dataURL)
	if err != nil {
		return "", err
	}
	return "photo_" + sum[:photoIDLength], nil
}

func stripSpace(s string) string {
	if !strings.ContainsAny(s, " \t\r\n") {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
}
