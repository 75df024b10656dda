// Package checksum fingerprints photo content.
//
// Two fingerprints are provided:
//
//   - Raw: hash of the exact bytes given
//   - Photo: hash of the decoded image payload of a data URL, so the same image
//     yields the same fingerprint whatever its MIME header or base64 line wrapping
//
// Photo fingerprints are used as photo IDs when a caller supplies none.
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
