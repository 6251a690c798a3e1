package slug

// MaxLength is the longest slug accepted by Valid.
const MaxLength = 200

// Valid reports whether s is a non-empty run of ASCII letters, digits,
// hyphens and underscores that starts and ends with a letter or digit.
func Valid(s string) bool {
	if s == "" || len(s) > MaxLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case (c == '-' || c == '_') && i > 0 && i < len(s)-1:
		default:
			return false
		}
	}
	return true
}
