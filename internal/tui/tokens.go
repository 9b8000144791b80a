package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// estimateTokens returns an approximate token count. Latin text runs about
// four characters per token; CJK characters are closer to one each.
func estimateTokens(text string) int {
	var cjk, other int
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			cjk++
		} else {
			other++
		}
	}
	return cjk + (other+3)/4
}

func countChars(text string) int {
	return utf8.RuneCountInString(text)
}

// getContextLimit returns the context window size for a model
func getContextLimit(model string) int {
	model = strings.ToLower(model)

	switch {
	case strings.Contains(model, "gemini"):
		return 1000000
	case strings.Contains(model, "claude"):
		return 200000
	case strings.Contains(model, "gpt-4.1"):
		return 1000000
	case strings.Contains(model, "gpt-4o"):
		return 128000
	case strings.Contains(model, "deepseek"):
		return 64000
	case strings.Contains(model, "llama-3"), strings.Contains(model, "llama3"):
		return 128000
	case strings.Contains(model, "qwen"):
		return 32000
	default:
		return 8000
	}
}
