package schedule

import (
	"strings"
	"unicode"
)

// ParseChannelList splits free-form text into channel IDs. Tokens are
// separated by any run of commas, whitespace or newlines; empty tokens are
// dropped and first-appearance order is preserved. Duplicates are kept
// here; DedupeChannels runs at the fetch boundary. Identifier shape is not
// validated, the remote API rejects malformed IDs per channel.
func ParseChannelList(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	ids := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field != "" {
			ids = append(ids, field)
		}
	}

	return ids
}

// DedupeChannels drops repeated IDs, keeping the first occurrence so a
// pasted list fetches each channel once.
func DedupeChannels(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	deduped := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	return deduped
}
