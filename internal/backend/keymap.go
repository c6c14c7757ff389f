// Package backend contains helpers shared by the display and input backends.
package backend

// HexKey returns the keypad key for a hexadecimal digit character.
func HexKey(r rune) (uint8, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 0xA, true
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 0xA, true
	default:
		return 0, false
	}
}
