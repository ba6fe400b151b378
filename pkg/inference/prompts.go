package inference

import (
	"fmt"
	"strings"
)

// Chat style backends receive the same instructions regardless of vendor.

// configSystemPrompt is the config key that replaces the default system prompt.
const configSystemPrompt = "system_prompt"

const (
	translateSystemPrompt = "You are a professional news translator. Translate faithfully, keep names of people and organisations unchanged, and reply with the translation only."
	summarizeSystemPrompt = "You are a news editor who writes concise, neutral summaries in plain English prose. Reply with the summary only."
)

func translatePrompt(req TranslationRequest) string {
	src := firstNonBlank(req.SourceName, req.SourceTag)
	dst := firstNonBlank(req.TargetName, req.TargetTag, "English")
	return fmt.Sprintf("Translate the following %s text to %s.\n\n%s", src, dst, req.Text)
}

// Bounds are token counts for seq2seq models; chat backends get them as word targets.
func summarizePrompt(req SummaryRequest) string {
	return fmt.Sprintf(
		"Summarize the following article in %d to %d words.\n\n%s",
		req.Bounds.MinLength, req.Bounds.MaxLength, req.Text,
	)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
