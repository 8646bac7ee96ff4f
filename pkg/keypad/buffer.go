package keypad

import "unicode/utf8"

// Cursor positions count runes.

// Insert places s at cursor, clamped to the text bounds, and returns the
// new text with the cursor advanced past s.
func Insert(text string, cursor int, s string) (string, int) {
	runes := []rune(text)
	cursor = clampCursor(cursor, len(runes))

	out := make([]rune, 0, len(runes)+utf8.RuneCountInString(s))
	out = append(out, runes[:cursor]...)
	out = append(out, []rune(s)...)
	out = append(out, runes[cursor:]...)

	return string(out), cursor + utf8.RuneCountInString(s)
}

// DeleteBefore removes the character left of cursor. At the start of the
// text, or on empty text, it returns its input unchanged.
func DeleteBefore(text string, cursor int) (string, int) {
	if cursor <= 0 || text == "" {
		return text, cursor
	}

	runes := []rune(text)
	cursor = clampCursor(cursor, len(runes))

	out := make([]rune, 0, len(runes)-1)
	out = append(out, runes[:cursor-1]...)
	out = append(out, runes[cursor:]...)
	return string(out), cursor - 1
}

func clampCursor(cursor, length int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > length {
		return length
	}
	return cursor
}
