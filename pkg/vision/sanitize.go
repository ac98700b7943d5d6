package vision

import (
	"regexp"
	"strings"
)

const fence = "```"

var openingFence = regexp.MustCompile("^```[A-Za-z0-9_+-]*")

// CleanResponse strips markdown code fences wrapped around a model reply.
// It is idempotent and does not check that the result is valid JSON.
func CleanResponse(text string) string {
	cleaned := strings.TrimSpace(text)
	for {
		next := cleaned
		if loc := openingFence.FindStringIndex(next); loc != nil {
			next = strings.TrimSpace(next[loc[1]:])
		}
		next = strings.TrimSpace(strings.TrimSuffix(next, fence))

		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}
