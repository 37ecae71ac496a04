package mdparse

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is returned when source bytes are neither UTF-8 nor
// BOM-marked UTF-16.
var ErrInvalidEncoding = errors.New("source is not valid UTF-8")

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DecodeSource converts raw file bytes to a string. A byte order mark selects
// the encoding and is removed; without one the input must be UTF-8.
func DecodeSource(data []byte) (string, error) {
	utf16 := bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE)
	// The UTF-8 decoder substitutes U+FFFD for bad bytes instead of failing.
	if !utf16 && !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return string(out), nil
}
