package simplehtml

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLEscape escapes every HTML metacharacter in s, including any '&'
// that already begins an entity reference.
func HTMLEscape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	writeEscaped(&sb, s, false)
	return sb.String()
}

// HTMLEscapeAllowEntities escapes the HTML metacharacters in s but leaves
// well-formed entity references such as "&amp;" or "&#39;" untouched, so
// text that is already escaped is not escaped twice.
func HTMLEscapeAllowEntities(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	writeEscaped(&sb, s, true)
	return sb.String()
}

func writeEscaped(sb *strings.Builder, s string, allowEntities bool) {
	last := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '&':
			if allowEntities {
				if end := entityEnd(s, i); end > 0 {
					// Copy the reference as is and resume after ';'.
					i = end - 1
					continue
				}
			}
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			esc = "&quot;"
		case '\'':
			esc = "&#39;"
		default:
			continue
		}
		sb.WriteString(s[last:i])
		sb.WriteString(esc)
		last = i + 1
	}
	sb.WriteString(s[last:])
}

// entityEnd reports where the entity reference starting at s[i] == '&'
// ends (the index just past its ';'), or 0 if s[i:] does not begin a
// well-formed reference.
func entityEnd(s string, i int) int {
	j := i + 1
	if j < len(s) && s[j] == '#' {
		j++
		isDigit := isDecimal
		if j < len(s) && (s[j] == 'x' || s[j] == 'X') {
			j++
			isDigit = isHex
		}
		start := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j == start || j >= len(s) || s[j] != ';' {
			return 0
		}
		return j + 1
	}

	start := j
	for j < len(s) && isAlnum(s[j]) {
		j++
	}
	if j == start || j >= len(s) || s[j] != ';' {
		return 0
	}
	if !isNamedEntity(s[i : j+1]) {
		return 0
	}
	return j + 1
}

// isNamedEntity reports whether ref, of the form "&name;", is a named
// character reference. The x/net/html decoder also accepts legacy
// references without a trailing ';' ("&ampx;" decodes to "&x;"), so a
// decoded value still ending in ';' means only a prefix matched.
func isNamedEntity(ref string) bool {
	u := html.UnescapeString(ref)
	if u == ";" {
		// &semi;
		return true
	}
	return !strings.HasSuffix(u, ";")
}

func isDecimal(c byte) bool { return '0' <= c && c <= '9' }

func isHex(c byte) bool {
	return isDecimal(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isAlnum(c byte) bool {
	return isDecimal(c) || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
