// Package fecparse turns raw FEC file bytes into journal entries: byte
// encoding and delimiter auto-detection, header mapping, and row-level
// parsing with partial-failure tolerance.
package fecparse

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names reported in parse results.
const (
	EncodingUTF8        = "utf-8"
	EncodingUTF8Sig     = "utf-8-sig"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "latin-1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// windows1252Undefined are the byte values Windows-1252 leaves unmapped.
// Their presence disqualifies the candidate.
var windows1252Undefined = [...]byte{0x81, 0x8D, 0x8F, 0x90, 0x9D}

// DetectEncoding tries candidates in order (UTF-8, UTF-8 with signature,
// Windows-1252, Latin-1) and returns the first that decodes cleanly.
// Latin-1 maps every byte, so it always succeeds; it is reported as
// low-confidence because it cannot actually be verified.
func DetectEncoding(raw []byte) (name string, lowConfidence bool) {
	if bytes.HasPrefix(raw, utf8BOM) && utf8.Valid(raw[len(utf8BOM):]) {
		return EncodingUTF8Sig, false
	}
	if utf8.Valid(raw) {
		return EncodingUTF8, false
	}
	if validWindows1252(raw) {
		return EncodingWindows1252, false
	}
	return EncodingLatin1, true
}

func validWindows1252(raw []byte) bool {
	for _, b := range raw {
		for _, u := range windows1252Undefined {
			if b == u {
				return false
			}
		}
	}
	return true
}

// Decode detects the encoding and returns the content as a UTF-8 string.
func Decode(raw []byte) (content string, encoding string, lowConfidence bool, err error) {
	encoding, lowConfidence = DetectEncoding(raw)
	switch encoding {
	case EncodingUTF8Sig:
		return string(raw[len(utf8BOM):]), encoding, lowConfidence, nil
	case EncodingUTF8:
		return string(raw), encoding, lowConfidence, nil
	case EncodingWindows1252:
		decoded, derr := charmap.Windows1252.NewDecoder().Bytes(raw)
		if derr != nil {
			return "", encoding, lowConfidence, fmt.Errorf("windows-1252 decode failed: %w", derr)
		}
		return string(decoded), encoding, lowConfidence, nil
	default:
		decoded, derr := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if derr != nil {
			return "", encoding, lowConfidence, fmt.Errorf("latin-1 decode failed: %w", derr)
		}
		return string(decoded), encoding, lowConfidence, nil
	}
}
