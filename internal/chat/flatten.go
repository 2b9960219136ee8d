package chat

import (
	"strings"

	"chatd/pkg/types"
)

// flattenHistory serializes a bounded history into the prompt sent to the
// model: one line per turn, "role: content", oldest first. The model sees the
// whole retained window as context, not just the latest prompt.
func flattenHistory(turns []types.Turn) string {
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Content)
	}
	return b.String()
}
