package identity

// IsHexString reports whether s is an even-length string made only of hexadecimal digits.
func IsHexString(s string) bool {
	if len(s)%2 != 0 {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	default:
		return false
	}
}
