package rewrite

import (
	"github.com/sant0-9/miaobi/internal/options"
)

// GenerationError is what callers see when a provider call fails for any
// reason. Message is safe to show; Err keeps the cause for the log.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// RewriteFailedMessage is the generic message for a failed rewrite.
func RewriteFailedMessage(lang options.Language) string {
	if lang == options.LanguageZh {
		return "文本改写失败，请重试。"
	}
	return "Failed to rewrite text. Please try again."
}

// AnalysisFailedMessage is the generic message for a failed analysis.
func AnalysisFailedMessage(lang options.Language) string {
	if lang == options.LanguageZh {
		return "文本分析失败，请重试。"
	}
	return "Failed to analyze text. Please try again."
}
