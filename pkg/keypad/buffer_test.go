package keypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsert(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		insert     string
		wantText   string
		wantCursor int
	}{
		{"middle", "123", 1, "4", "1423", 2},
		{"start", "123", 0, "4", "4123", 1},
		{"end", "123", 3, "4", "1234", 4},
		{"empty text", "", 0, "7", "7", 1},
		{"cursor past end is clamped", "123", 9, "4", "1234", 4},
		{"negative cursor is clamped", "123", -2, "4", "4123", 1},
		{"multi rune insert", "12", 1, "٫٥", "1٫٥2", 3},
		{"non ascii text", "١٢٣", 2, "٤", "١٢٤٣", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, cursor := Insert(tt.text, tt.cursor, tt.insert)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantCursor, cursor)
		})
	}
}

func TestDeleteBefore(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		wantText   string
		wantCursor int
	}{
		{"at start is a no-op", "123", 0, "123", 0},
		{"at end", "123", 3, "12", 2},
		{"middle", "123", 2, "13", 1},
		{"empty text is a no-op", "", 0, "", 0},
		{"cursor past end is clamped", "123", 7, "12", 2},
		{"non ascii", "١٢٣", 3, "١٢", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, cursor := DeleteBefore(tt.text, tt.cursor)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantCursor, cursor)
		})
	}
}
