package llm

import (
	"fmt"
	"strings"
)

// ExtractJSONObject recovers the JSON object embedded in a model reply.
// Models occasionally wrap JSON in markdown fences or surround it with prose;
// we strip fences and scan for the outermost {...} before giving up.
func ExtractJSONObject(raw string) ([]byte, error) {
	s := strings.TrimSpace(raw)

	// strip ```json ... ``` fences
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	if start < 0 {
		return nil, fmt.Errorf("no JSON object in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return []byte(s[start : i+1]), nil
			}
		}
	}
	return nil, fmt.Errorf("unbalanced JSON object in response")
}
