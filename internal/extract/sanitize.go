package extract

import "strings"

// Sanitize escapes literal newline, tab and carriage-return characters that
// appear inside JSON string literals. Whitespace between tokens is left alone,
// so pretty-printed JSON survives. Unbalanced braces, trailing commas and
// unescaped quotes are not repaired.
func Sanitize(s string) string {
	if !strings.ContainsAny(s, "\n\t\r") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 16)

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			sb.WriteByte(c)
			continue
		}

		if escaped {
			escaped = false
			sb.WriteByte(c)
			continue
		}

		switch c {
		case '\\':
			escaped = true
			sb.WriteByte(c)
		case '"':
			inString = false
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
