package pipeline

import "strings"

// EscapeTeX backslash-escapes * and #. A character already preceded by an
// odd run of backslashes is kept as is, so EscapeTeX(EscapeTeX(s)) == EscapeTeX(s).
func EscapeTeX(s string) string {
	if !strings.ContainsAny(s, "*#") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 8)
	backslashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			backslashes++
		case '*', '#':
			if backslashes%2 == 0 {
				sb.WriteByte('\\')
			}
			backslashes = 0
		default:
			backslashes = 0
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
