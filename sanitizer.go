package simplehtml

import (
	"io"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// allowedTags lists, in order, the tag names whose simple open and close
// forms pass through SanitizeHTML unescaped. Names are case-sensitive.
var allowedTags = []string{
	"b", "em",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"hr", "i", "li", "ol", "strong", "u", "ul",
}

var allowedTagSet = sliceToSet(allowedTags)

// AllowedTags returns a copy of the tag allowlist used by SanitizeHTML.
func AllowedTags() []string {
	tags := make([]string, len(allowedTags))
	copy(tags, allowedTags)
	return tags
}

// IsAllowedTag reports whether name is in the allowlist. The comparison
// is case-sensitive: "em" is allowed, "EM" is not.
func IsAllowedTag(name string) bool {
	return allowedTagSet[name]
}

// SanitizeHTML returns s as safe HTML. Simple open and close tags from the
// allowlist ("<em>", "</em>") are copied through unchanged; everything else,
// including unknown tags, tags with attributes and stray '<' or '>', is
// HTML-escaped. Existing entity references are not escaped again.
//
// Tags are matched one occurrence at a time, so an unbalanced "</em>" is
// still passed through.
func SanitizeHTML(s string) safehtml.HTML {
	var sb strings.Builder
	sb.Grow(len(s) + len(s)/8)

	text := 0 // start of the pending text run
	for i := 0; i < len(s); i++ {
		if s[i] != '<' {
			continue
		}
		end := simpleTagEnd(s, i)
		if end == 0 {
			continue
		}
		writeEscaped(&sb, s[text:i], true)
		sb.WriteString(s[i:end])
		text = end
		i = end - 1
	}
	writeEscaped(&sb, s[text:], true)

	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(sb.String())
}

// SanitizeReader reads all of r and returns it sanitized by SanitizeHTML.
// The only errors are those returned by r.
func SanitizeReader(r io.Reader) (safehtml.HTML, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return safehtml.HTML{}, err
	}
	return SanitizeHTML(string(b)), nil
}

// --- helpers ---------------------------------------------------------

// simpleTagEnd returns the index just past the closing '>' when s[i:]
// begins with an allowlisted simple tag, "<name>" or "</name>", and 0
// otherwise. A simple tag has nothing but the name between its delimiters.
func simpleTagEnd(s string, i int) int {
	j := i + 1
	if j < len(s) && s[j] == '/' {
		j++
	}
	start := j
	for j < len(s) && isAlnum(s[j]) {
		j++
	}
	if j == start || j >= len(s) || s[j] != '>' {
		return 0
	}
	if !allowedTagSet[s[start:j]] {
		return 0
	}
	return j + 1
}

func sliceToSet(s []string) map[string]bool {
	m := make(map[string]bool, len(s))
	for _, v := range s {
		m[v] = true
	}
	return m
}
