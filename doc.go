// Package simplehtml provides a minimal, allowlist-based HTML sanitizer
// for short user text that may carry simple inline formatting.
//
// # Overview
//
// [SanitizeHTML] scans its input once, left to right. Simple tags from a
// fixed allowlist, with no attributes and nothing else between the
// delimiters ("<b>", "</em>"), are copied through byte for byte. Every
// other character run is HTML-escaped:
//   - '<' becomes &lt; and '>' becomes &gt;
//   - '"' becomes &quot; and '\'' becomes &#39;
//   - '&' becomes &amp; unless it already begins a well-formed entity
//     reference such as &amp; or &#169;
//
// Newlines and tabs are never altered.
//
// # Allowlist
//
// The allowlist is b, em, h1-h6, hr, i, li, ol, strong, u and ul. It is
// case-sensitive and cannot be changed at run time; see [AllowedTags].
// Tags are matched per occurrence, not balanced, so an orphan closing tag
// from the allowlist is still emitted.
//
// # Safety typing
//
// The result is a [safehtml.HTML] from github.com/google/safehtml, so
// callers that accept only that type cannot be handed unsanitized text.
// SanitizeHTML never fails: malformed markup is escaped, not rejected.
//
// # Thread Safety
//
// All functions are safe for concurrent use.
//
// # Example
//
//	h := simplehtml.SanitizeHTML("foo <em>bar</em> & <script>")
//	fmt.Println(h.String()) // foo <em>bar</em> &amp; &lt;script&gt;
package simplehtml
