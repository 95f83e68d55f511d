package encoding

import (
	"errors"
	"testing"
)

func TestToUTF8(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		charset string
		want    string
		wantErr bool
	}{
		{"plain ascii", []byte("Cube"), "", "Cube", false},
		{"utf8 label", []byte("Würfel"), "UTF-8", "Würfel", false},
		{"euc-kr", []byte{0xC7, 0xD1, 0xB1, 0xDB}, "euc-kr", "한글", false},
		{"shift_jis", []byte{0x83, 0x65, 0x83, 0x58, 0x83, 0x67}, "shift_jis", "テスト", false},
		{"windows-1252", []byte{0x57, 0xFC, 0x72, 0x66, 0x65, 0x6C}, "windows-1252", "Würfel", false},
		{"unknown charset", []byte("x"), "klingon", "", true},
		{"invalid utf8", []byte{0xFF, 0xFE}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUTF8(tt.data, tt.charset)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToUTF8() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ToUTF8() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToUTF8_InvalidUTF8Sentinel(t *testing.T) {
	_, err := ToUTF8([]byte{0xC3}, "utf8")
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("got %v, want ErrInvalidUTF8", err)
	}
}

func TestToUTF8_NormalizesToNFC(t *testing.T) {
	// "e" followed by a combining acute accent composes to U+00E9.
	got, err := ToUTF8([]byte("Cafe\u0301"), "")
	if err != nil {
		t.Fatalf("ToUTF8() error: %v", err)
	}
	if got != "Caf\u00e9" {
		t.Errorf("ToUTF8() = %q, want composed form", got)
	}
}

func TestSanitizeName(t *testing.T) {
	if got := SanitizeName("ok"); got != "ok" {
		t.Errorf("SanitizeName(ok) = %q", got)
	}
	if got := SanitizeName("a\xffb"); got != "a\uFFFDb" {
		t.Errorf("SanitizeName() = %q, want replacement character", got)
	}
}

func TestIsUTF8(t *testing.T) {
	for _, s := range []string{"", "utf-8", "UTF8", " utf-8 "} {
		if !IsUTF8(s) {
			t.Errorf("IsUTF8(%q) = false", s)
		}
	}
	if IsUTF8("euc-kr") {
		t.Error("IsUTF8(euc-kr) = true")
	}
}
