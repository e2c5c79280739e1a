package promptstyle

import "strings"

const marker = "Respond only with a single JSON object."

// ApplySystem appends the JSON-only instruction to a system prompt. It is
// idempotent so callers can apply it to prompts that already carry it.
func ApplySystem(system string) string {
	base := strings.TrimSpace(system)
	if base == "" || strings.Contains(base, marker) {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\n")
	b.WriteString(marker)
	b.WriteString(" Do not wrap it in markdown code fences and do not add commentary.")
	return b.String()
}
