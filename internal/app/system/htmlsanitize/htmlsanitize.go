// Package htmlsanitize strips dangerous HTML from user-supplied content
// before it is stored. Announcement messages are authored by teachers
// but rendered to every visitor, so script injection must be removed at
// the write boundary.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy is built once; bluemonday policies are safe for concurrent use.
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Extra text formatting beyond the UGC defaults.
	p.AllowElements("u", "s", "sub", "sup", "mark")

	// Tables are common in formatted announcements.
	p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption")
	p.AllowAttrs("colspan", "rowspan").Matching(bluemonday.Integer).OnElements("td", "th")
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")

	return p
}

// Sanitize returns s with unsafe HTML removed. Plain text passes through
// unchanged; script tags, event-handler attributes, and javascript: URLs
// are stripped.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
