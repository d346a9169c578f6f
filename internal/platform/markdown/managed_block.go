package markdown

import "strings"

// ReplaceManagedBlock swaps the text between the markers for generated,
// appending a new block when the body has none. Text outside the markers is
// left untouched.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	block := startMarker + "\n" + strings.TrimRight(generated, "\n") + "\n" + endMarker

	start := strings.Index(body, startMarker)
	if start >= 0 {
		if rel := strings.Index(body[start:], endMarker); rel >= 0 {
			end := start + rel + len(endMarker)
			return body[:start] + block + body[end:]
		}
	}

	if strings.TrimSpace(body) == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}
