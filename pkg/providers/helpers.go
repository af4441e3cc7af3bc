package providers

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"strings"
)

// excerptLimit bounds the text fed into synthesized ids. Longer excerpts are
// more likely to pick up rendering noise that changes between runs.
const excerptLimit = 160

// hashExcerpt synthesizes a listing id from a textual excerpt when no
// structured id exists. The excerpt is whitespace-normalized and truncated
// first, so the id survives reflows but not content changes. Such ids are
// only as stable as the source's rendering of the same listing.
func hashExcerpt(text string) string {
	excerpt := normalizeSpace(text)
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit]
	}
	sum := sha1.Sum([]byte(excerpt))
	return hex.EncodeToString(sum[:])
}

// normalizeSpace collapses all whitespace runs to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
