package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"주차", "주차"},
		{"  주차  ", "주차"},
		{"\tParking\n", "Parking"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeKeyword(tt.in); got != tt.expected {
			t.Errorf("NormalizeKeyword(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestValidateKeyword(t *testing.T) {
	tests := []struct {
		name     string
		keyword  string
		expected error
	}{
		{"hangul keyword", "주차", nil},
		{"ascii keyword", "parking", nil},
		{"keyword with spaces inside", "불법 주차", nil},
		{"empty", "", ErrKeywordRequired},
		{"exactly max runes", strings.Repeat("가", MaxKeywordLength), nil},
		{"over max runes", strings.Repeat("가", MaxKeywordLength+1), ErrKeywordTooLong},
		{"over max ascii", strings.Repeat("a", MaxKeywordLength+1), ErrKeywordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateKeyword(tt.keyword); !errors.Is(err, tt.expected) {
				t.Errorf("ValidateKeyword(%q) = %v, want %v", tt.keyword, err, tt.expected)
			}
		})
	}
}

func TestValidateSearchQuery(t *testing.T) {
	tests := []struct {
		name        string
		keyword     string
		wantKeyword string
		expected    error
	}{
		{"trims keyword", "  소음 ", "소음", nil},
		{"whitespace only", "   ", "", ErrKeywordRequired},
		{"missing", "", "", ErrKeywordRequired},
		{"too long", strings.Repeat("b", 200), strings.Repeat("b", 200), ErrKeywordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &SearchQuery{Keyword: tt.keyword}
			if err := ValidateSearchQuery(q); !errors.Is(err, tt.expected) {
				t.Errorf("ValidateSearchQuery() = %v, want %v", err, tt.expected)
			}
			if q.Keyword != tt.wantKeyword {
				t.Errorf("ValidateSearchQuery() keyword = %q, want %q", q.Keyword, tt.wantKeyword)
			}
		})
	}
}
