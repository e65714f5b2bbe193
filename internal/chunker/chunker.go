package chunker

import "strings"

// Split breaks text into consecutive groups of size whitespace-delimited
// words, preserving word order. Every chunk holds exactly size words except
// possibly the last. Words are rejoined with single spaces, so the original
// inter-word whitespace is normalized away. Empty or all-whitespace text
// yields nil.
func Split(text string, size int) []string {
	if size <= 0 {
		return nil
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(words)+size-1)/size)
	for i := 0; i < len(words); i += size {
		end := min(i+size, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
