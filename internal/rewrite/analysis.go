package rewrite

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Analysis is the model's verdict on whether a text was machine-written.
type Analysis struct {
	IsAI       bool    `json:"isAI"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

func parseAnalysis(raw string) (Analysis, error) {
	content := extractJSON(raw)
	if !gjson.Valid(content) {
		return Analysis{}, fmt.Errorf("analysis is not valid JSON")
	}

	isAI := gjson.Get(content, "isAI")
	if isAI.Type != gjson.True && isAI.Type != gjson.False {
		return Analysis{}, fmt.Errorf("analysis missing boolean isAI")
	}
	confidence := gjson.Get(content, "confidence")
	if confidence.Type != gjson.Number {
		return Analysis{}, fmt.Errorf("analysis missing numeric confidence")
	}

	return Analysis{
		IsAI:       isAI.Bool(),
		Confidence: clamp(confidence.Float()),
		Reasoning:  strings.TrimSpace(gjson.Get(content, "reasoning").String()),
	}, nil
}

// extractJSON drops a markdown code fence and any chatter around the object.
func extractJSON(raw string) string {
	content := strings.TrimSpace(raw)

	if strings.HasPrefix(content, "```") {
		var lines []string
		in := false
		for _, line := range strings.Split(content, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				in = !in
				continue
			}
			if in {
				lines = append(lines, line)
			}
		}
		content = strings.TrimSpace(strings.Join(lines, "\n"))
	}

	if start, end := strings.Index(content, "{"), strings.LastIndex(content, "}"); start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
