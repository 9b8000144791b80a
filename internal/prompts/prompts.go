package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/sant0-9/miaobi/internal/options"
)

//go:embed analysis.md
var Analysis string

// Delimiter fences the user's text so the model can tell it apart from the
// instructions above it.
const Delimiter = "---"

// Build renders the rewrite instruction for text. The instruction language
// follows opts.Language; anything other than Chinese gets English.
// Options left on auto contribute no line at all.
func Build(text string, opts options.Options) string {
	loc := localeFor(opts.Language)

	instructions := []string{loc.base}
	if opts.Tone != options.ToneAuto {
		instructions = append(instructions, fmt.Sprintf(loc.tone, loc.tones[opts.Tone]))
	}
	if opts.Format != options.FormatAuto {
		instructions = append(instructions, fmt.Sprintf(loc.format, loc.formats[opts.Format]))
	}
	if opts.Length != options.LengthAuto {
		instructions = append(instructions, fmt.Sprintf(loc.length, loc.lengths[opts.Length]))
	}

	var b strings.Builder
	b.WriteString(strings.Join(instructions, "\n"))
	b.WriteString("\n\n")
	b.WriteString(loc.closing)
	b.WriteString("\n\n")
	writeDelimited(&b, loc.label, text)
	return b.String()
}

// BuildAnalysis renders the AI-detection instruction for text.
func BuildAnalysis(text string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(Analysis))
	b.WriteString("\n\n")
	writeDelimited(&b, "待分析文本:", text)
	return b.String()
}

func writeDelimited(b *strings.Builder, label, text string) {
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(Delimiter)
	b.WriteString("\n")
	b.WriteString(text)
	b.WriteString("\n")
	b.WriteString(Delimiter)
	b.WriteString("\n")
}

func localeFor(lang options.Language) locale {
	if lang == options.LanguageZh {
		return locales[options.LanguageZh]
	}
	return locales[options.LanguageEn]
}
