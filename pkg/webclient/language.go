package webclient

import (
	"strings"

	"golang.org/x/text/language"
)

// PreferredLanguage picks the best match for the client's Accept-Language
// list among the supported tags. The first supported tag is the fallback.
// It returns language.Und when supported is empty.
func (c *Client) PreferredLanguage(supported ...language.Tag) language.Tag {
	if len(supported) == 0 {
		return language.Und
	}
	if len(c.Languages) == 0 {
		return supported[0]
	}

	desired, _, err := language.ParseAcceptLanguage(strings.Join(c.Languages, ","))
	if err != nil || len(desired) == 0 {
		return supported[0]
	}

	matcher := language.NewMatcher(supported)
	_, idx, confidence := matcher.Match(desired...)
	if confidence == language.No {
		return supported[0]
	}

	return supported[idx]
}
