package service

// Model responses are expected to contain a JSON payload but frequently wrap
// it in commentary or markdown fences. These helpers locate the outermost
// object or array by bracket matching, skipping brackets inside string
// literals, so the payload can be unmarshalled strictly.

func extractJSONObject(s string) (string, bool) {
	return extractDelimited(s, '{', '}')
}

func extractJSONArray(s string) (string, bool) {
	return extractDelimited(s, '[', ']')
}

func extractDelimited(s string, opening, closing byte) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
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
			if start >= 0 {
				inString = true
			}
		case opening:
			if start < 0 {
				start = i
			}
			depth++
		case closing:
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
