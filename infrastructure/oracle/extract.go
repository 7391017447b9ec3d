package oracle

import "strings"

// quoteNormalizer maps curly quotes to their ASCII equivalents. LLMs
// occasionally emit typographic quotes inside otherwise valid JSON.
var quoteNormalizer = strings.NewReplacer(
	"“", `"`, "”", `"`,
	"‘", "'", "’", "'",
)

// ExtractFirstJSONObject pulls the first balanced {...} block out of a
// raw LLM response. It tolerates markdown code fences, text before and
// after the object, and curly quotes. Returns the empty string when no
// balanced object is found.
func ExtractFirstJSONObject(response string) string {
	response = quoteNormalizer.Replace(strings.TrimSpace(response))

	if fenced := stripCodeFence(response); fenced != "" {
		response = fenced
	}

	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}

	braceCount := 0
	inString := false
	escapeNext := false

	for i := start; i < len(response); i++ {
		char := response[i]

		if escapeNext {
			escapeNext = false
			continue
		}
		if char == '\\' {
			escapeNext = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			braceCount++
		case '}':
			braceCount--
			if braceCount == 0 {
				return response[start : i+1]
			}
		}
	}

	return ""
}

// stripCodeFence returns the contents of the first markdown code fence
// when it looks like a JSON object, or the empty string otherwise.
func stripCodeFence(response string) string {
	if strings.Contains(response, "```json") {
		start := strings.Index(response, "```json") + 7
		if end := strings.Index(response[start:], "```"); end != -1 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	if strings.Contains(response, "```") {
		start := strings.Index(response, "```") + 3
		// Skip a language identifier on the fence line.
		if nl := strings.Index(response[start:], "\n"); nl != -1 {
			start += nl + 1
		}
		if end := strings.Index(response[start:], "```"); end != -1 {
			candidate := strings.TrimSpace(response[start : start+end])
			if strings.HasPrefix(candidate, "{") {
				return candidate
			}
		}
	}

	return ""
}
