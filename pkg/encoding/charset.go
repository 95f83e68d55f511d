// Package encoding provides text encoding utilities for mesh names.
package encoding

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 is returned when UTF-8 input contains invalid sequences.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 in name")

// IsUTF8 reports whether charset names UTF-8 (the empty string counts).
func IsUTF8(charset string) bool {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// ToUTF8 decodes data from the named charset and returns it as NFC-normalized
// UTF-8. Charset names follow the WHATWG encoding labels ("euc-kr",
// "shift_jis", "windows-1252", ...).
func ToUTF8(data []byte, charset string) (string, error) {
	if IsUTF8(charset) {
		if !utf8.Valid(data) {
			return "", ErrInvalidUTF8
		}
		return norm.NFC.String(string(data)), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", charset, err)
	}

	result, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decoding %s name: %w", charset, err)
	}
	return norm.NFC.String(string(result)), nil
}

// SanitizeName returns s as NFC-normalized UTF-8 with invalid sequences
// replaced by U+FFFD.
func SanitizeName(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}
	return norm.NFC.String(s)
}
