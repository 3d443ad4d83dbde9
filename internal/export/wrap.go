package export

import "strings"

// wrapText breaks text into lines no wider than width according to measure.
// Words wider than a line are split at byte boundaries; text is expected to be
// already translated to the single-byte font encoding.
func wrapText(text string, width float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, width, measure)...)
	}
	return lines
}

func wrapParagraph(para string, width float64, measure func(string) float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= width {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		// hard-break words that do not fit on a line of their own
		for measure(word) > width && len(word) > 1 {
			cut := fitPrefix(word, width, measure)
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// fitPrefix returns the length of the longest prefix of s that fits, at least 1
func fitPrefix(s string, width float64, measure func(string) float64) int {
	n := 1
	for n < len(s) && measure(s[:n+1]) <= width {
		n++
	}
	return n
}
